package cli

import (
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/config"
)

// loadConfig resolves configuration from --config, the environment and defaults.
// --verbose forces debug logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}
