package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
)

// MockTransactionRepository is an in-memory TransactionRepository
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*ledger.Transaction

	// CreateErr, when set, is returned by Create
	CreateErr error
}

// NewMockTransactionRepository creates an empty repository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Create stores a transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if transaction == nil {
		return fmt.Errorf("transaction cannot be nil")
	}
	m.transactions = append(m.transactions, transaction)
	return nil
}

// FindBySession returns matching transactions in insert order
func (m *MockTransactionRepository) FindBySession(ctx context.Context, sessionID string, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.filter(sessionID, opts)
	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []*ledger.Transaction{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// CountBySession counts matching transactions
func (m *MockTransactionRepository) CountBySession(ctx context.Context, sessionID string, opts ledger.QueryOptions) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filter(sessionID, opts)), nil
}

// All returns every stored transaction
func (m *MockTransactionRepository) All() []*ledger.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*ledger.Transaction(nil), m.transactions...)
}

func (m *MockTransactionRepository) filter(sessionID string, opts ledger.QueryOptions) []*ledger.Transaction {
	out := make([]*ledger.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		if tx.SessionID() != sessionID {
			continue
		}
		if opts.TransactionType != nil && tx.TransactionType() != *opts.TransactionType {
			continue
		}
		if opts.GoodID != nil && tx.GoodID() != *opts.GoodID {
			continue
		}
		out = append(out, tx)
	}
	return out
}
