package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// TravelCommand jumps to another location
type TravelCommand struct {
	Destination string
}

// TravelHandler executes TravelCommand and arms the arrival timer
type TravelHandler struct {
	game      Game
	scheduler game.ArrivalScheduler
	recorder  outcomeRecorder
}

// NewTravelHandler creates a new travel handler. The scheduler may be nil, in
// which case arrival is only noticed lazily by the next command or query.
func NewTravelHandler(g Game, m mediator.Mediator, publisher game.EventPublisher, scheduler game.ArrivalScheduler, clock shared.Clock) *TravelHandler {
	return &TravelHandler{
		game:      g,
		scheduler: scheduler,
		recorder:  newOutcomeRecorder(m, publisher, clock),
	}
}

// Handle executes the travel command
func (h *TravelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TravelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TravelCommand")
	}

	result, err := h.game.TravelTo(ctx, cmd.Destination)
	if err != nil {
		return nil, err
	}

	if !result.Succeeded() {
		h.recorder.noOp("travel", result.Reason)
		return result, nil
	}

	metrics.RecordTravel(h.game.SessionID(), result.Origin, result.Destination, result.FuelCost)
	h.recorder.stateChanged(h.game, "travel")

	if h.scheduler != nil {
		h.scheduler.ScheduleArrival(h.game.SessionID(), result.ArrivesAt)
	}

	return result, nil
}
