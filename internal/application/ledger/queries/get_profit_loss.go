package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
)

// GetProfitLossQuery represents a query for a session's profit & loss statement
type GetProfitLossQuery struct {
	SessionID string
}

// GetProfitLossResponse represents the profit & loss statement result
type GetProfitLossResponse struct {
	ledger.ProfitLoss
	SessionID string `json:"sessionId"`
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery")
	}

	// No limit - the statement covers the whole session
	transactions, err := h.transactionRepo.FindBySession(ctx, query.SessionID, ledger.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return &GetProfitLossResponse{
		ProfitLoss: ledger.Summarize(transactions),
		SessionID:  query.SessionID,
	}, nil
}
