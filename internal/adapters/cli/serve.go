package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/httpapi"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a game session over HTTP and WebSocket",
		Long: `Start one game session and expose it over HTTP.

Commands are POSTed to /api/buy, /api/sell, /api/travel and /api/refuel.
The current frame is available at /api/view and every change is pushed
to WebSocket clients connected to /ws.

Examples:
  stellar-hauler serve
  stellar-hauler serve --host 0.0.0.0 --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			app, err := Bootstrap(ctx, cfg, BootstrapOptions{Progress: out})
			if err != nil {
				return err
			}
			defer app.Close()

			metricsPath := ""
			if cfg.Metrics.Enabled {
				metricsPath = cfg.Metrics.Path
			}
			server, err := httpapi.NewServer(httpapi.Options{
				Mediator:    app.Mediator,
				Events:      app.Events,
				SessionID:   app.SessionID,
				RateLimit:   cfg.Server.RateLimit,
				MetricsPath: metricsPath,
				Logger:      app.Logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			fmt.Fprintf(out, "\nListening on http://%s (Ctrl+C to stop)\n", cfg.Server.Address())
			if err := server.ListenAndServe(ctx, cfg.Server.Address(), cfg.Server.ShutdownTimeout); err != nil {
				return err
			}
			fmt.Fprintln(out, "Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")

	return cmd
}
