package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stellar-hauler",
		Short: "Stellar Hauler - buy low, fly far, sell high",
		Long: `Stellar Hauler is a single-player space trading game.

Dock at a location, trade goods one unit at a time, burn fuel to reach
the next market and refuel when the tank runs low. The game can be played
in the terminal or served over HTTP for other frontends.

Examples:
  stellar-hauler play
  stellar-hauler play --server http://localhost:8080
  stellar-hauler serve --port 8080
  stellar-hauler catalog show
  stellar-hauler quote --base 100 --supply high --demand low
  stellar-hauler ledger --server http://localhost:8080`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", getDefaultConfigPath(),
		"Path to config file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlayCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewQuoteCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// getDefaultConfigPath returns the config path from the environment, if any
func getDefaultConfigPath() string {
	return os.Getenv("STELLAR_HAULER_CONFIG")
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
