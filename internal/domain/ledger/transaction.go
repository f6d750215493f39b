package ledger

import (
	"fmt"
	"time"
)

// Transaction is one credit movement caused by a trade or a refuel.
// Transactions are immutable once created.
type Transaction struct {
	id              TransactionID
	sessionID       string
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	location        string
	goodID          string
	quantity        int
	amount          int // positive for income, negative for expenses
	balanceBefore   int
	balanceAfter    int
}

// TransactionParams groups the inputs of NewTransaction
type TransactionParams struct {
	SessionID     string
	Timestamp     time.Time
	Type          TransactionType
	Location      string
	GoodID        string
	Quantity      int
	Amount        int
	BalanceBefore int
	BalanceAfter  int
}

// NewTransaction creates a new transaction with validation
func NewTransaction(p TransactionParams) (*Transaction, error) {
	if p.SessionID == "" {
		return nil, invalidTransaction("session_id", "cannot be empty")
	}
	if !p.Type.IsValid() {
		return nil, invalidTransaction("transaction_type", "unknown type %q", p.Type)
	}

	category, err := p.Type.ToCategory()
	if err != nil {
		return nil, invalidTransaction("category", "%v", err)
	}

	t := &Transaction{
		id:              NewTransactionID(),
		sessionID:       p.SessionID,
		timestamp:       p.Timestamp,
		transactionType: p.Type,
		category:        category,
		location:        p.Location,
		goodID:          p.GoodID,
		quantity:        p.Quantity,
		amount:          p.Amount,
		balanceBefore:   p.BalanceBefore,
		balanceAfter:    p.BalanceAfter,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(id TransactionID, p TransactionParams, category Category) *Transaction {
	return &Transaction{
		id:              id,
		sessionID:       p.SessionID,
		timestamp:       p.Timestamp,
		transactionType: p.Type,
		category:        category,
		location:        p.Location,
		goodID:          p.GoodID,
		quantity:        p.Quantity,
		amount:          p.Amount,
		balanceBefore:   p.BalanceBefore,
		balanceAfter:    p.BalanceAfter,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return invalidTransaction("amount", "cannot be zero")
	}

	// Income must be positive, expenses negative
	if t.transactionType.IsIncome() != (t.amount > 0) {
		return invalidTransaction("amount", "%d has the wrong sign for %s", t.amount, t.transactionType)
	}

	if t.quantity <= 0 {
		return invalidTransaction("quantity", "must be positive, got %d", t.quantity)
	}

	if t.transactionType.IsTrade() && t.goodID == "" {
		return invalidTransaction("good_id", "%s must name a good", t.transactionType)
	}

	if t.balanceAfter != t.balanceBefore+t.amount {
		return &BalanceMismatchError{Before: t.balanceBefore, Amount: t.amount, After: t.balanceAfter}
	}

	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID { return t.id }
func (t *Transaction) SessionID() string { return t.sessionID }
func (t *Transaction) Timestamp() time.Time { return t.timestamp }
func (t *Transaction) TransactionType() TransactionType { return t.transactionType }
func (t *Transaction) Category() Category { return t.category }
func (t *Transaction) Location() string { return t.location }
func (t *Transaction) GoodID() string { return t.goodID }
func (t *Transaction) Quantity() int { return t.quantity }
func (t *Transaction) Amount() int { return t.amount }
func (t *Transaction) BalanceBefore() int { return t.balanceBefore }
func (t *Transaction) BalanceAfter() int { return t.balanceAfter }

// IsIncome returns true if the transaction represents income
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%d, balance=%d->%d]",
		t.id.String(), t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
