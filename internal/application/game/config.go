package game

import (
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/domain/player"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// Settings configures a new game session
type Settings struct {
	Initial            player.InitialState
	RefuelPricePerUnit int
	TravelDuration     time.Duration
	Ship               ShipProfile
}

// DefaultSettings returns the classic starting position
func DefaultSettings() Settings {
	return Settings{
		Initial: player.InitialState{
			Credits:       10000,
			Fuel:          100,
			MaxFuel:       100,
			CargoCapacity: 50,
			Location:      "terra",
		},
		RefuelPricePerUnit: 2,
		TravelDuration:     time.Second,
		Ship: ShipProfile{
			Name:           "Stellar Hauler",
			Speed:          1,
			FuelEfficiency: 1,
		},
	}
}

// Option customizes a Controller
type Option func(*Controller)

// WithClock replaces the real clock, mainly for tests
func WithClock(clock shared.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSessionID sets the id used to tag ledger entries
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.sessionID = id
		}
	}
}
