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

// BuyGoodCommand buys one unit of a good at the docked location.
//
// Business rules enforced by the controller:
//   - Player must be docked
//   - Credits must cover the buy price
//   - Cargo hold must have a free unit
type BuyGoodCommand struct {
	GoodID string
}

// BuyGoodHandler executes BuyGoodCommand and records the purchase
type BuyGoodHandler struct {
	game     Game
	recorder outcomeRecorder
}

// NewBuyGoodHandler creates a new buy handler
func NewBuyGoodHandler(g Game, m mediator.Mediator, publisher game.EventPublisher, clock shared.Clock) *BuyGoodHandler {
	return &BuyGoodHandler{
		game:     g,
		recorder: newOutcomeRecorder(m, publisher, clock),
	}
}

// Handle executes the buy command
func (h *BuyGoodHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyGoodCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyGoodCommand")
	}

	result, err := h.game.Buy(ctx, cmd.GoodID)
	if err != nil {
		return nil, err
	}

	if !result.Succeeded() {
		h.recorder.noOp("buy", result.Reason)
		return result, nil
	}

	h.recorder.recordLedger(ctx, &ledgerCommands.RecordTransactionCommand{
		SessionID:       h.game.SessionID(),
		TransactionType: ledger.TransactionTypePurchaseCargo.String(),
		Location:        result.Location,
		GoodID:          result.GoodID,
		Quantity:        result.Quantity,
		Amount:          -result.Price,
		BalanceBefore:   result.CreditsBefore,
		BalanceAfter:    result.CreditsAfter,
	})
	metrics.RecordTrade(h.game.SessionID(), result.GoodID, market.BuyFromMarket.String(), result.Price, result.Quantity)
	h.recorder.stateChanged(h.game, "buy")

	return result, nil
}
