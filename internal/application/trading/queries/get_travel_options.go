package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
)

// GetTravelOptionsQuery lists destinations and the refuel offer.
// An empty FromID means the location the player is docked at.
type GetTravelOptionsQuery struct {
	FromID string
}

// GetTravelOptionsHandler handles GetTravelOptionsQuery
type GetTravelOptionsHandler struct {
	source ViewSource
}

// NewGetTravelOptionsHandler creates a new GetTravelOptionsHandler
func NewGetTravelOptionsHandler(source ViewSource) *GetTravelOptionsHandler {
	return &GetTravelOptionsHandler{source: source}
}

// Handle executes the query; the response is a *game.TravelOptions
func (h *GetTravelOptionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTravelOptionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTravelOptionsQuery")
	}

	from := query.FromID
	if from == "" {
		from = h.source.GetState().DockedAt
	}

	options, err := h.source.GetTravelOptions(from)
	if err != nil {
		return nil, err
	}
	return options, nil
}
