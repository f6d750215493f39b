package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// RecordTransactionCommand represents a command to record a credit movement
type RecordTransactionCommand struct {
	SessionID       string
	TransactionType string
	Location        string
	GoodID          string
	Quantity        int
	Amount          int // Positive for income, negative for expenses
	BalanceBefore   int
	BalanceAfter    int
	Timestamp       *time.Time // Optional: defaults to the handler clock
}

// RecordTransactionResponse represents the result of recording a transaction
type RecordTransactionResponse struct {
	TransactionID string
	Timestamp     time.Time
}

// RecordTransactionHandler handles the RecordTransaction command
type RecordTransactionHandler struct {
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

// NewRecordTransactionHandler creates a new RecordTransactionHandler
func NewRecordTransactionHandler(
	transactionRepo ledger.TransactionRepository,
	clock shared.Clock,
) *RecordTransactionHandler {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &RecordTransactionHandler{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Handle executes the RecordTransaction command
func (h *RecordTransactionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordTransactionCommand")
	}

	transactionType, err := ledger.ParseTransactionType(cmd.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type: %w", err)
	}

	timestamp := h.clock.Now()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	transaction, err := ledger.NewTransaction(ledger.TransactionParams{
		SessionID:     cmd.SessionID,
		Timestamp:     timestamp,
		Type:          transactionType,
		Location:      cmd.Location,
		GoodID:        cmd.GoodID,
		Quantity:      cmd.Quantity,
		Amount:        cmd.Amount,
		BalanceBefore: cmd.BalanceBefore,
		BalanceAfter:  cmd.BalanceAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := h.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	metrics.RecordTransaction(
		cmd.SessionID,
		transaction.TransactionType().String(),
		transaction.Category().String(),
		cmd.Amount,
		cmd.BalanceAfter,
	)

	return &RecordTransactionResponse{
		TransactionID: transaction.ID().String(),
		Timestamp:     transaction.Timestamp(),
	}, nil
}
