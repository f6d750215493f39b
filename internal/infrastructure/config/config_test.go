package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/config"
)

func TestDefault_MatchesClassicStart(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 10000, cfg.Game.StartingCredits)
	assert.Equal(t, 100, cfg.Game.StartingFuel)
	assert.Equal(t, 100, cfg.Game.MaxFuel)
	assert.Equal(t, 50, cfg.Game.CargoCapacity)
	assert.Equal(t, "terra", cfg.Game.StartingLocation)
	assert.Equal(t, 2, cfg.Game.RefuelPricePerUnit)
	assert.Equal(t, time.Second, cfg.Game.TravelDuration)
	assert.Equal(t, "Stellar Hauler", cfg.Game.Ship.Name)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "localhost:8080", cfg.Server.Address())

	require.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
game:
  starting_credits: 500
  starting_location: minerva
  travel_duration: 250ms
server:
  port: 9090
logging:
  format: json
`), 0o644))
	t.Setenv("SH_GAME_CARGO_CAPACITY", "20")
	t.Setenv("SH_SERVER_HOST", "0.0.0.0")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Game.StartingCredits)
	assert.Equal(t, "minerva", cfg.Game.StartingLocation)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.TravelDuration)
	assert.Equal(t, 20, cfg.Game.CargoCapacity)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 100, cfg.Game.MaxFuel, "unset values fall back to defaults")
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
game:
  starting_fuel: 150
  max_fuel: 100
logging:
  level: verbose
`), 0o644))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "StartingFuel")
	assert.Contains(t, err.Error(), "Level")
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := config.LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 10000, cfg.Game.StartingCredits)
}

func TestValidateConfig_ReportsLocationIDs(t *testing.T) {
	cfg := config.Default()
	cfg.Game.StartingLocation = "Terra Prime"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Game.StartingLocation")
	assert.Contains(t, err.Error(), "is not a location id")
}
