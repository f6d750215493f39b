package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Game defaults
	if cfg.Game.StartingCredits == 0 {
		cfg.Game.StartingCredits = 10000
	}
	if cfg.Game.MaxFuel == 0 {
		cfg.Game.MaxFuel = 100
	}
	if cfg.Game.StartingFuel == 0 {
		cfg.Game.StartingFuel = cfg.Game.MaxFuel
	}
	if cfg.Game.CargoCapacity == 0 {
		cfg.Game.CargoCapacity = 50
	}
	if cfg.Game.StartingLocation == "" {
		cfg.Game.StartingLocation = "terra"
	}
	if cfg.Game.RefuelPricePerUnit == 0 {
		cfg.Game.RefuelPricePerUnit = 2
	}
	if cfg.Game.TravelDuration == 0 {
		cfg.Game.TravelDuration = 1 * time.Second
	}
	if cfg.Game.Ship.Name == "" {
		cfg.Game.Ship.Name = "Stellar Hauler"
	}
	if cfg.Game.Ship.Speed == 0 {
		cfg.Game.Ship.Speed = 1
	}
	if cfg.Game.Ship.FuelEfficiency == 0 {
		cfg.Game.Ship.FuelEfficiency = 1
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 20
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 40
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = memoryPath
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "stellar"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "stellar_hauler"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}
