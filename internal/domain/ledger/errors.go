package ledger

import (
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// InvalidTransactionError rejects a ledger entry no trade or refuel could produce
type InvalidTransactionError struct {
	*shared.ValidationError
}

func invalidTransaction(field, format string, args ...interface{}) *InvalidTransactionError {
	return &InvalidTransactionError{
		ValidationError: shared.NewValidationError(field, fmt.Sprintf(format, args...)),
	}
}

// BalanceMismatchError means the recorded balances do not add up
type BalanceMismatchError struct {
	Before int
	Amount int
	After  int
}

// Expected is the balance the entry should have recorded
func (e *BalanceMismatchError) Expected() int {
	return e.Before + e.Amount
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("ledger balance mismatch: %d %+d should leave %d, recorded %d",
		e.Before, e.Amount, e.Expected(), e.After)
}
