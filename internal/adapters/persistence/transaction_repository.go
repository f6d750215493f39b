package persistence

import (
	"context"
	"fmt"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db  *gorm.DB
	seq atomic.Int64
}

// NewGormTransactionRepository creates a new GORM transaction repository.
// Insert order is kept in a sequence column so entries recorded within the
// same clock tick still list in the order they happened.
func NewGormTransactionRepository(db *gorm.DB) (*GormTransactionRepository, error) {
	r := &GormTransactionRepository{db: db}

	var maxSeq *int64
	if err := db.Model(&TransactionModel{}).Select("MAX(sequence)").Scan(&maxSeq).Error; err != nil {
		return nil, fmt.Errorf("failed to read transaction sequence: %w", err)
	}
	if maxSeq != nil {
		r.seq.Store(*maxSeq)
	}

	return r, nil
}

// Create persists a new transaction
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *ledger.Transaction) error {
	model := r.transactionToModel(transaction)
	model.Sequence = r.seq.Add(1)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}

	return nil
}

// FindBySession retrieves transactions for a session, oldest first
func (r *GormTransactionRepository) FindBySession(ctx context.Context, sessionID string, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	query = r.applyFilters(query, opts)
	query = query.Order("sequence ASC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	result := query.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", result.Error)
	}

	transactions := make([]*ledger.Transaction, len(models))
	for i := range models {
		tx, err := r.modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		transactions[i] = tx
	}

	return transactions, nil
}

// CountBySession returns the count of transactions matching the criteria
func (r *GormTransactionRepository) CountBySession(ctx context.Context, sessionID string, opts ledger.QueryOptions) (int, error) {
	query := r.db.WithContext(ctx).Model(&TransactionModel{}).Where("session_id = ?", sessionID)
	query = r.applyFilters(query, opts)

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", result.Error)
	}

	return int(count), nil
}

// applyFilters applies query options to a GORM query
func (r *GormTransactionRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", opts.TransactionType.String())
	}
	if opts.GoodID != nil {
		query = query.Where("good_id = ?", *opts.GoodID)
	}
	return query
}

// modelToTransaction converts database model to domain entity
func (r *GormTransactionRepository) modelToTransaction(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt ledger row: %w", err)
	}

	transactionType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type in database: %w", err)
	}

	category := ledger.Category(model.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category in database: %s", model.Category)
	}

	return ledger.ReconstructTransaction(id, ledger.TransactionParams{
		SessionID:     model.SessionID,
		Timestamp:     model.Timestamp,
		Type:          transactionType,
		Location:      model.Location,
		GoodID:        model.GoodID,
		Quantity:      model.Quantity,
		Amount:        model.Amount,
		BalanceBefore: model.BalanceBefore,
		BalanceAfter:  model.BalanceAfter,
	}, category), nil
}

// transactionToModel converts domain entity to database model
func (r *GormTransactionRepository) transactionToModel(tx *ledger.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              tx.ID().String(),
		SessionID:       tx.SessionID(),
		Timestamp:       tx.Timestamp(),
		TransactionType: tx.TransactionType().String(),
		Category:        tx.Category().String(),
		Location:        tx.Location(),
		GoodID:          tx.GoodID(),
		Quantity:        tx.Quantity(),
		Amount:          tx.Amount(),
		BalanceBefore:   tx.BalanceBefore(),
		BalanceAfter:    tx.BalanceAfter(),
	}
}
