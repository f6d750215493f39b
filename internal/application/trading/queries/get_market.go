package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
)

// GetMarketQuery prices the goods listed at a location.
// An empty LocationID means the location the player is docked at.
type GetMarketQuery struct {
	LocationID string
}

// GetMarketResponse is the market listing of one location
type GetMarketResponse struct {
	LocationID string             `json:"locationId"`
	Goods      []game.MarketEntry `json:"goods"`
}

// GetMarketHandler handles GetMarketQuery
type GetMarketHandler struct {
	source ViewSource
}

// NewGetMarketHandler creates a new GetMarketHandler
func NewGetMarketHandler(source ViewSource) *GetMarketHandler {
	return &GetMarketHandler{source: source}
}

// Handle executes the query
func (h *GetMarketHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetMarketQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMarketQuery")
	}

	locationID := query.LocationID
	if locationID == "" {
		locationID = h.source.GetState().DockedAt
	}

	goods, err := h.source.GetMarketView(locationID)
	if err != nil {
		return nil, err
	}

	return &GetMarketResponse{LocationID: locationID, Goods: goods}, nil
}
