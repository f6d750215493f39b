package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID identifies a ledger row; it is a UUID string
type TransactionID string

func NewTransactionID() TransactionID {
	return TransactionID(uuid.NewString())
}

// ParseTransactionID accepts stored ids only if they are UUIDs
func ParseTransactionID(raw string) (TransactionID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", fmt.Errorf("transaction id %q: %w", raw, err)
	}
	return TransactionID(raw), nil
}

func (t TransactionID) String() string { return string(t) }

func (t TransactionID) IsZero() bool { return t == "" }
