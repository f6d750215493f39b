package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerCommands "github.com/andrescamacho/stellar-hauler/internal/application/ledger/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/internal/domain/market"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// SellGoodCommand sells one held unit of a good at the docked location
type SellGoodCommand struct {
	GoodID string
}

// SellGoodHandler executes SellGoodCommand and records the sale
type SellGoodHandler struct {
	game     Game
	recorder outcomeRecorder
}

// NewSellGoodHandler creates a new sell handler
func NewSellGoodHandler(g Game, m mediator.Mediator, publisher game.EventPublisher, clock shared.Clock) *SellGoodHandler {
	return &SellGoodHandler{
		game:     g,
		recorder: newOutcomeRecorder(m, publisher, clock),
	}
}

// Handle executes the sell command
func (h *SellGoodHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellGoodCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SellGoodCommand")
	}

	result, err := h.game.Sell(ctx, cmd.GoodID)
	if err != nil {
		return nil, err
	}

	if !result.Succeeded() {
		h.recorder.noOp("sell", result.Reason)
		return result, nil
	}

	h.recorder.recordLedger(ctx, &ledgerCommands.RecordTransactionCommand{
		SessionID:       h.game.SessionID(),
		TransactionType: ledger.TransactionTypeSellCargo.String(),
		Location:        result.Location,
		GoodID:          result.GoodID,
		Quantity:        result.Quantity,
		Amount:          result.Price,
		BalanceBefore:   result.CreditsBefore,
		BalanceAfter:    result.CreditsAfter,
	})
	metrics.RecordTrade(h.game.SessionID(), result.GoodID, market.SellToMarket.String(), result.Price, result.Quantity)
	h.recorder.stateChanged(h.game, "sell")

	return result, nil
}
