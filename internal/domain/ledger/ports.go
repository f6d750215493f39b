package ledger

import "context"

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	// Create persists a new transaction
	Create(ctx context.Context, transaction *Transaction) error

	// FindBySession retrieves the transactions of one game session, oldest first
	FindBySession(ctx context.Context, sessionID string, opts QueryOptions) ([]*Transaction, error)

	// CountBySession returns the number of transactions matching the criteria
	CountBySession(ctx context.Context, sessionID string, opts QueryOptions) (int, error)
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	TransactionType *TransactionType
	GoodID          *string

	Limit  int
	Offset int
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:  50,
		Offset: 0,
	}
}
