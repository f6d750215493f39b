package queries

import "github.com/andrescamacho/stellar-hauler/internal/application/game"

// ViewSource is the read side of the controller
type ViewSource interface {
	GetState() game.StateView
	GetMarketView(locationID string) ([]game.MarketEntry, error)
	GetTravelOptions(fromID string) (*game.TravelOptions, error)
	CurrentView() (*game.View, error)
}
