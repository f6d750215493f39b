package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stellar-hauler/internal/domain/market"
)

// NewQuoteCommand creates the quote command
func NewQuoteCommand() *cobra.Command {
	var (
		basePrice int
		supply    string
		demand    string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a good for a supply and demand level",
		Long: `Print the buy and sell price a market would post for a good.

Levels are low, medium or high.

Examples:
  stellar-hauler quote --base 10 --supply high --demand low
  stellar-hauler quote --base 50 --supply low --demand high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if basePrice <= 0 {
				return fmt.Errorf("--base must be positive")
			}
			s, err := market.ParseLevel(supply)
			if err != nil {
				return fmt.Errorf("--supply: %w", err)
			}
			d, err := market.ParseLevel(demand)
			if err != nil {
				return fmt.Errorf("--demand: %w", err)
			}

			q := market.QuoteFor(basePrice, s, d)
			fmt.Fprintf(cmd.OutOrStdout(), "Base %d, supply %s, demand %s\n", basePrice, s, d)
			fmt.Fprintf(cmd.OutOrStdout(), "  Buy:  %d\n", q.BuyPrice)
			fmt.Fprintf(cmd.OutOrStdout(), "  Sell: %d\n", q.SellPrice)
			return nil
		},
	}

	cmd.Flags().IntVar(&basePrice, "base", 0, "Base price [required]")
	cmd.Flags().StringVar(&supply, "supply", "medium", "Supply level")
	cmd.Flags().StringVar(&demand, "demand", "medium", "Demand level")

	return cmd
}
