package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerCommands "github.com/andrescamacho/stellar-hauler/internal/application/ledger/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/logging"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// outcomeRecorder carries the side effects shared by every trading command:
// ledger entries, metrics and the state_changed event.
type outcomeRecorder struct {
	mediator  mediator.Mediator
	publisher game.EventPublisher
	clock     shared.Clock
}

func newOutcomeRecorder(m mediator.Mediator, publisher game.EventPublisher, clock shared.Clock) outcomeRecorder {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return outcomeRecorder{mediator: m, publisher: publisher, clock: clock}
}

// recordLedger writes a ledger entry. A ledger failure never undoes the command;
// it is logged and the command still reports success.
func (r outcomeRecorder) recordLedger(ctx context.Context, cmd *ledgerCommands.RecordTransactionCommand) {
	if r.mediator == nil {
		return
	}
	now := r.clock.Now()
	cmd.Timestamp = &now
	if _, err := r.mediator.Send(ctx, cmd); err != nil {
		logging.LoggerFromContext(ctx).Log("WARNING", "Failed to record transaction", map[string]interface{}{
			"session": cmd.SessionID,
			"type":    cmd.TransactionType,
			"error":   err.Error(),
		})
	}
}

func (r outcomeRecorder) stateChanged(g Game, command string) {
	state := g.GetState()
	metrics.RecordShipState(state.SessionID, state.Credits, state.Fuel, state.CargoTotal)

	if r.publisher != nil {
		r.publisher.Publish(game.GameEvent{
			Type:      game.EventStateChanged,
			SessionID: g.SessionID(),
			Command:   command,
			At:        r.clock.Now(),
		})
	}
}

func (r outcomeRecorder) noOp(command string, reason error) {
	metrics.RecordNoOp(command, ReasonCode(reason))
}

// ReasonCode maps a precondition failure onto a short stable code, used as a
// metric label and in API responses.
func ReasonCode(err error) string {
	var (
		funds  *shared.InsufficientFundsError
		full   *shared.CargoFullError
		cargo  *shared.InsufficientCargoError
		fuel   *shared.InsufficientFuelError
		nav    *shared.InvalidNavStatusError
		valErr *shared.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &funds):
		return "insufficient_funds"
	case errors.As(err, &full):
		return "cargo_full"
	case errors.As(err, &cargo):
		return "insufficient_cargo"
	case errors.As(err, &fuel):
		return "insufficient_fuel"
	case errors.As(err, &nav):
		return "in_transit"
	case errors.As(err, &valErr):
		return "invalid_" + strings.ToLower(valErr.Field)
	default:
		return "other"
	}
}
