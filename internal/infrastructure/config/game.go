package config

import "time"

// GameConfig holds the starting position and economy knobs of a session
type GameConfig struct {
	StartingCredits    int           `mapstructure:"starting_credits" validate:"min=0"`
	StartingFuel       int           `mapstructure:"starting_fuel" validate:"min=0,ltefield=MaxFuel"`
	MaxFuel            int           `mapstructure:"max_fuel" validate:"min=1"`
	CargoCapacity      int           `mapstructure:"cargo_capacity" validate:"min=1"`
	StartingLocation   string        `mapstructure:"starting_location" validate:"required,location_id"`
	RefuelPricePerUnit int           `mapstructure:"refuel_price_per_unit" validate:"min=0"`
	TravelDuration     time.Duration `mapstructure:"travel_duration"`

	// Universe YAML file; empty uses the built-in universe
	CatalogPath string `mapstructure:"catalog_path"`

	Ship ShipConfig `mapstructure:"ship"`
}

// ShipConfig describes the player's ship
type ShipConfig struct {
	Name           string `mapstructure:"name" validate:"required"`
	Speed          int    `mapstructure:"speed" validate:"min=1"`
	FuelEfficiency int    `mapstructure:"fuel_efficiency" validate:"min=1"`
}
