package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/httpapi"
)

// NewLedgerCommand creates the ledger command
func NewLedgerCommand() *cobra.Command {
	var (
		serverURL string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show the transaction ledger of a served session",
		Long: `Show the most recent transactions and the profit & loss statement
of a session hosted by 'stellar-hauler serve'.

Transaction Types:
  PURCHASE_CARGO  - Good bought from a market
  SELL_CARGO      - Good sold to a market
  REFUEL          - Fuel bought at a station

Examples:
  stellar-hauler ledger
  stellar-hauler ledger --server http://localhost:9000 --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				serverURL = "http://" + cfg.Server.Address()
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			resp, err := httpapi.NewClient(serverURL).Ledger(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to fetch ledger: %w", err)
			}
			displayLedger(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Base URL of a running server (default: configured address)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transactions to list")

	return cmd
}

const rule = "─────────────────────────────────────────────────────────────────────────────"

func displayLedger(out io.Writer, resp *httpapi.LedgerResponse) {
	if len(resp.Transactions) == 0 {
		fmt.Fprintln(out, "No transactions found")
	} else {
		fmt.Fprintf(out, "\nTRANSACTIONS (Showing %d of %d total)\n", len(resp.Transactions), resp.Total)
		fmt.Fprintln(out, rule)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Timestamp\tType\tLocation\tGood\tAmount\tBalance")
		fmt.Fprintln(w, "─────────\t────\t────────\t────\t──────\t───────")
		for _, tx := range resp.Transactions {
			good := tx.GoodID
			if good == "" {
				good = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				tx.Timestamp.Format("2006-01-02 15:04:05"),
				tx.Type,
				tx.Location,
				good,
				formatAmount(tx.Amount),
				formatCredits(tx.BalanceAfter),
			)
		}
		w.Flush()
		fmt.Fprintln(out, rule)
	}

	if resp.ProfitLoss == nil {
		return
	}
	pl := resp.ProfitLoss
	fmt.Fprintf(out, "\nPROFIT & LOSS (%d transactions)\n", pl.Transactions)
	fmt.Fprintf(out, "  %-25s %s\n", "Trading revenue:", formatCredits(pl.TradingRevenue))
	fmt.Fprintf(out, "  %-25s %s\n", "Trading costs:", formatCredits(-pl.TradingCosts))
	fmt.Fprintf(out, "  %-25s %s\n", "Fuel costs:", formatCredits(-pl.FuelCosts))
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "NET PROFIT:                 %s\n", formatAmount(pl.Net))
}

// formatAmount renders a signed credit delta
func formatAmount(amount int) string {
	return fmt.Sprintf("%+d cr", amount)
}

func formatCredits(amount int) string {
	return fmt.Sprintf("%d cr", amount)
}
