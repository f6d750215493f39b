package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerCommands "github.com/andrescamacho/stellar-hauler/internal/application/ledger/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// RefuelCommand fills the tank at the docked location
type RefuelCommand struct{}

// RefuelHandler executes RefuelCommand and records the fuel purchase
type RefuelHandler struct {
	game     Game
	recorder outcomeRecorder
}

// NewRefuelHandler creates a new refuel handler
func NewRefuelHandler(g Game, m mediator.Mediator, publisher game.EventPublisher, clock shared.Clock) *RefuelHandler {
	return &RefuelHandler{
		game:     g,
		recorder: newOutcomeRecorder(m, publisher, clock),
	}
}

// Handle executes the refuel command
func (h *RefuelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*RefuelCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *RefuelCommand")
	}

	result, err := h.game.Refuel(ctx)
	if err != nil {
		return nil, err
	}

	if !result.Succeeded() {
		h.recorder.noOp("refuel", result.Reason)
		return result, nil
	}

	// A free refuel moves no credits, and the ledger only keeps credit movements
	if result.Cost > 0 {
		h.recorder.recordLedger(ctx, &ledgerCommands.RecordTransactionCommand{
			SessionID:       h.game.SessionID(),
			TransactionType: ledger.TransactionTypeRefuel.String(),
			Location:        result.Location,
			Quantity:        result.FuelAdded,
			Amount:          -result.Cost,
			BalanceBefore:   result.CreditsBefore,
			BalanceAfter:    result.CreditsAfter,
		})
	}
	h.recorder.stateChanged(h.game, "refuel")

	return result, nil
}
