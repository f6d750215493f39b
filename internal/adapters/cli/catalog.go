package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect universe files",
		Long: `Inspect the universe: locations, their markets and the routes between them.

Without --file the built-in universe (or game.catalog_path from config) is used.

Examples:
  stellar-hauler catalog show
  stellar-hauler catalog validate --file universe.yaml
  stellar-hauler catalog export > universe.yaml
  stellar-hauler catalog hauls --credits 500`,
	}

	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogValidateCommand())
	cmd.AddCommand(newCatalogExportCommand())
	cmd.AddCommand(newCatalogHaulsCommand())

	return cmd
}

// resolveCatalog loads --file, or the configured universe when --file is empty.
// Asymmetric routes are reported on warnOut.
func resolveCatalog(file string, warnOut io.Writer) (*galaxy.Catalog, error) {
	if file == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		file = cfg.Game.CatalogPath
	}
	loader := catalog.NewLoader(func(message string, metadata map[string]interface{}) {
		fmt.Fprintf(warnOut, "⚠ %s: %v -> %v costs %v, back costs %v\n",
			message, metadata["from"], metadata["to"], metadata["fuel_cost"], metadata["reverse"])
	})
	return loader.Load(file)
}

func newCatalogShowCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print locations, prices and routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			universe, err := resolveCatalog(file, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), universe)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Universe YAML file")

	return cmd
}

func printCatalog(out io.Writer, universe *galaxy.Catalog) {
	for _, loc := range universe.AllLocations() {
		fmt.Fprintf(out, "%s (%s)\n", loc.Name(), loc.ID())
		if loc.Description() != "" {
			fmt.Fprintf(out, "  %s\n", loc.Description())
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  GOOD\tBASE\tSUPPLY\tDEMAND\tBUY\tSELL")
		for _, g := range loc.Goods() {
			fmt.Fprintf(w, "  %s\t%d\t%s\t%s\t%d\t%d\n",
				g.ID(), g.BasePrice(), g.Supply(), g.Demand(), g.BuyPrice(), g.SellPrice())
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Routes")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  FROM\tTO\tFUEL")
	for _, from := range universe.AllLocations() {
		destinations, _ := universe.Destinations(from.ID())
		for _, to := range destinations {
			cost, _ := universe.FuelCost(from.ID(), to.ID())
			fmt.Fprintf(w, "  %s\t%s\t%d\n", from.ID(), to.ID(), cost)
		}
	}
	w.Flush()
}

func newCatalogValidateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a universe file without starting a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file flag is required")
			}
			universe, err := resolveCatalog(file, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			routes := 0
			for _, loc := range universe.AllLocations() {
				destinations, _ := universe.Destinations(loc.ID())
				routes += len(destinations)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid: %d locations, %d routes\n",
				file, len(universe.AllLocations()), routes)
			if !universe.IsSymmetric() {
				fmt.Fprintln(cmd.OutOrStdout(), "  Some routes cost more one way than the other")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Universe YAML file [required]")

	return cmd
}

func newCatalogExportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the universe as YAML",
		Long: `Write the universe as YAML. Exporting the built-in universe is the
easiest way to start a custom one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			universe, err := resolveCatalog(file, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			data, err := catalog.Encode(universe)
			if err != nil {
				return fmt.Errorf("failed to encode universe: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Universe YAML file")

	return cmd
}

func newCatalogHaulsCommand() *cobra.Command {
	var (
		file     string
		credits  int
		capacity int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "hauls",
		Short: "Rank the most profitable single-good trips",
		Long: `Rank every buy-here, sell-there trip by profit.

Profit is units times margin, less the credits needed to buy back the fuel
the trip burns. Units are capped by both cargo space and credits.

Examples:
  stellar-hauler catalog hauls
  stellar-hauler catalog hauls --credits 200 --limit 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if file == "" {
				file = cfg.Game.CatalogPath
			}
			universe, err := resolveCatalog(file, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if credits < 0 {
				credits = cfg.Game.StartingCredits
			}
			if capacity <= 0 {
				capacity = cfg.Game.CargoCapacity
			}

			hauls, err := queries.FindHauls(universe, credits, capacity, cfg.Game.RefuelPricePerUnit)
			if err != nil {
				return err
			}
			if len(hauls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profitable hauls")
				return nil
			}
			if limit > 0 && limit < len(hauls) {
				hauls = hauls[:limit]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GOOD\tFROM\tTO\tBUY\tSELL\tMARGIN\tFUEL\tUNITS\tPROFIT")
			for _, h := range hauls {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
					h.GoodID, h.From, h.To, h.BuyPrice, h.SellPrice, h.Margin, h.FuelCost, h.Units, h.Profit)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Universe YAML file")
	cmd.Flags().IntVar(&credits, "credits", -1, "Credits available (default: starting credits)")
	cmd.Flags().IntVar(&capacity, "cargo", 0, "Cargo capacity (default: configured capacity)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of hauls to list")

	return cmd
}
