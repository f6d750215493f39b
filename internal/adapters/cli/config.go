package cli

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Stellar Hauler configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SH_* prefix, DATABASE_URL)
2. Config file (config.yaml, or --config)
3. Default values

Example:
  stellar-hauler config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %v\n", err)
				fmt.Fprintln(cmd.OutOrStdout(), "Using default configuration.")
				cfg = config.Default()
			}
			displayConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func displayConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Stellar Hauler Configuration")
	fmt.Fprintln(out, "============================")

	fmt.Fprintln(out, "\nGame:")
	fmt.Fprintf(out, "  Ship:             %s\n", cfg.Game.Ship.Name)
	fmt.Fprintf(out, "  Start:            %s\n", cfg.Game.StartingLocation)
	fmt.Fprintf(out, "  Credits:          %d\n", cfg.Game.StartingCredits)
	fmt.Fprintf(out, "  Fuel:             %d/%d\n", cfg.Game.StartingFuel, cfg.Game.MaxFuel)
	fmt.Fprintf(out, "  Cargo Capacity:   %d\n", cfg.Game.CargoCapacity)
	fmt.Fprintf(out, "  Refuel Price:     %d cr/unit\n", cfg.Game.RefuelPricePerUnit)
	fmt.Fprintf(out, "  Travel Time:      %s\n", cfg.Game.TravelDuration)
	if cfg.Game.CatalogPath != "" {
		fmt.Fprintf(out, "  Universe:         %s\n", cfg.Game.CatalogPath)
	} else {
		fmt.Fprintf(out, "  Universe:         (built-in)\n")
	}

	fmt.Fprintln(out, "\nServer:")
	fmt.Fprintf(out, "  Address:          %s\n", cfg.Server.Address())
	fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.Server.ShutdownTimeout)
	fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
		cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
	}

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
	fmt.Fprintf(out, "  Path:             %s\n", cfg.Metrics.Path)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	// url.UserPassword would percent-encode the mask, so splice it in after encoding
	u.User = url.User(u.User.Username())
	userinfo := u.Scheme + "://" + u.User.String()
	return strings.Replace(u.String(), userinfo+"@", userinfo+":****@", 1)
}
