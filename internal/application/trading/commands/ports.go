package commands

import (
	"context"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
)

// Game is the slice of the controller the trading commands drive
type Game interface {
	SessionID() string
	Buy(ctx context.Context, goodID string) (*game.TradeResult, error)
	Sell(ctx context.Context, goodID string) (*game.TradeResult, error)
	TravelTo(ctx context.Context, destination string) (*game.TravelResult, error)
	Refuel(ctx context.Context) (*game.RefuelResult, error)
	GetState() game.StateView
}
