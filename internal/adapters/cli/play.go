package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/httpapi"
	"github.com/andrescamacho/stellar-hauler/internal/adapters/tui"
)

// NewPlayCommand creates the play command
func NewPlayCommand() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Open the trading console.

Without --server a fresh session runs in this process. With --server the
console drives a session hosted by 'stellar-hauler serve'.

Keys:
  ↑/↓  select a good     b  buy one unit     s  sell one unit
  1-9  travel            f  refuel           q  quit

Examples:
  stellar-hauler play
  stellar-hauler play --server http://localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if serverURL != "" {
				return tui.Run(ctx, tui.NewRemoteBackend(httpapi.NewClient(serverURL)))
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// The console owns the terminal
			if cfg.Logging.Output == "stdout" || cfg.Logging.Output == "stderr" {
				cfg.Logging.Output = "discard"
			}

			app, err := Bootstrap(ctx, cfg, BootstrapOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			return tui.Run(ctx, tui.NewLocalBackend(app.Mediator, app.SessionID))
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Base URL of a running server")

	return cmd
}
