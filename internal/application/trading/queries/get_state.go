package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
)

// GetStateQuery returns the live player state
type GetStateQuery struct{}

// GetStateHandler handles GetStateQuery
type GetStateHandler struct {
	source ViewSource
}

// NewGetStateHandler creates a new GetStateHandler
func NewGetStateHandler(source ViewSource) *GetStateHandler {
	return &GetStateHandler{source: source}
}

// Handle executes the query; the response is a game.StateView
func (h *GetStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStateQuery")
	}
	state := h.source.GetState()
	return &state, nil
}
