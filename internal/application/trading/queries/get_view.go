package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
)

// GetViewQuery returns the displayable frame, frozen while traveling
type GetViewQuery struct{}

// GetViewHandler handles GetViewQuery
type GetViewHandler struct {
	source ViewSource
}

// NewGetViewHandler creates a new GetViewHandler
func NewGetViewHandler(source ViewSource) *GetViewHandler {
	return &GetViewHandler{source: source}
}

// Handle executes the query; the response is a *game.View
func (h *GetViewHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetViewQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetViewQuery")
	}
	view, err := h.source.CurrentView()
	if err != nil {
		return nil, err
	}
	return view, nil
}
