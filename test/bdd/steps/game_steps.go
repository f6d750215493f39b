package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/persistence"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/application/setup"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/catalog"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

const gameSessionID = "bdd-session"

// outcome is what the last command reported
type outcome struct {
	succeeded  bool
	reasonCode string
}

type gameContext struct {
	clock    *shared.MockClock
	mediator mediator.Mediator
	last     *outcome
	err      error
}

func (gc *gameContext) reset() {
	gc.clock = nil
	gc.mediator = nil
	gc.last = nil
	gc.err = nil
}

func (gc *gameContext) start(settings game.Settings) error {
	universe, err := catalog.NewLoader(nil).LoadDefault()
	if err != nil {
		return err
	}
	gc.clock = shared.NewMockClock(helpers.GameEpoch)
	controller, err := game.NewController(universe, settings,
		game.WithClock(gc.clock),
		game.WithSessionID(gameSessionID),
	)
	if err != nil {
		return err
	}
	repo, err := persistence.NewGormTransactionRepository(helpers.SharedTestDB)
	if err != nil {
		return err
	}

	m := mediator.NewMediator()
	if err := setup.NewHandlerRegistry(controller, repo, nil, nil, gc.clock).RegisterAll(m); err != nil {
		return err
	}
	gc.mediator = m
	return nil
}

// Given steps

func (gc *gameContext) aNewGame() error {
	return gc.start(game.DefaultSettings())
}

func (gc *gameContext) aNewGameWith(table *godog.Table) error {
	settings := game.DefaultSettings()
	for i, row := range table.Rows {
		if i == 0 {
			continue // header: setting | value
		}
		name, raw := row.Cells[0].Value, row.Cells[1].Value
		if name == "location" {
			settings.Initial.Location = raw
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		switch name {
		case "credits":
			settings.Initial.Credits = value
		case "fuel":
			settings.Initial.Fuel = value
		case "max_fuel":
			settings.Initial.MaxFuel = value
		case "cargo_capacity":
			settings.Initial.CargoCapacity = value
		case "refuel_price":
			settings.RefuelPricePerUnit = value
		case "travel_seconds":
			settings.TravelDuration = time.Duration(value) * time.Second
		default:
			return fmt.Errorf("unknown setting %q", name)
		}
	}
	return gc.start(settings)
}

// When steps

func (gc *gameContext) send(request mediator.Request) error {
	if gc.mediator == nil {
		return fmt.Errorf("no game started")
	}
	resp, err := gc.mediator.Send(context.Background(), request)
	if err != nil {
		gc.err = err
		gc.last = nil
		return nil
	}

	var result game.CommandResult
	switch r := resp.(type) {
	case *game.TradeResult:
		result = r.CommandResult
	case *game.TravelResult:
		result = r.CommandResult
	case *game.RefuelResult:
		result = r.CommandResult
	default:
		return fmt.Errorf("unexpected response type %T", resp)
	}
	gc.err = nil
	gc.last = &outcome{succeeded: result.Succeeded(), reasonCode: commands.ReasonCode(result.Reason)}
	return nil
}

func (gc *gameContext) iBuy(goodID string) error {
	return gc.send(&commands.BuyGoodCommand{GoodID: goodID})
}

func (gc *gameContext) iBuyUnits(units int, goodID string) error {
	for i := 0; i < units; i++ {
		if err := gc.iBuy(goodID); err != nil {
			return err
		}
		if gc.last == nil || !gc.last.succeeded {
			return fmt.Errorf("purchase %d of %d %s did not succeed", i+1, units, goodID)
		}
	}
	return nil
}

func (gc *gameContext) iSell(goodID string) error {
	return gc.send(&commands.SellGoodCommand{GoodID: goodID})
}

func (gc *gameContext) iSellUnits(units int, goodID string) error {
	for i := 0; i < units; i++ {
		if err := gc.iSell(goodID); err != nil {
			return err
		}
		if gc.last == nil || !gc.last.succeeded {
			return fmt.Errorf("sale %d of %d %s did not succeed", i+1, units, goodID)
		}
	}
	return nil
}

func (gc *gameContext) iTravelTo(destination string) error {
	return gc.send(&commands.TravelCommand{Destination: destination})
}

func (gc *gameContext) iRefuel() error {
	return gc.send(&commands.RefuelCommand{})
}

func (gc *gameContext) secondsPass(seconds int) error {
	gc.clock.Advance(time.Duration(seconds) * time.Second)
	return nil
}

// Then steps

func (gc *gameContext) theCommandShouldSucceed() error {
	if gc.err != nil {
		return fmt.Errorf("command failed: %w", gc.err)
	}
	if gc.last == nil {
		return fmt.Errorf("no command was sent")
	}
	if !gc.last.succeeded {
		return fmt.Errorf("expected success, got no-op %q", gc.last.reasonCode)
	}
	return nil
}

func (gc *gameContext) theCommandShouldBeANoOpBecauseOf(reason string) error {
	if gc.err != nil {
		return fmt.Errorf("command failed: %w", gc.err)
	}
	if gc.last == nil || gc.last.succeeded {
		return fmt.Errorf("expected a no-op, the command succeeded")
	}
	if gc.last.reasonCode != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, gc.last.reasonCode)
	}
	return nil
}

func (gc *gameContext) theCommandShouldBeRejected() error {
	if gc.err == nil {
		return fmt.Errorf("expected the command to be rejected")
	}
	return nil
}

func (gc *gameContext) state() (*game.StateView, error) {
	resp, err := gc.mediator.Send(context.Background(), &queries.GetStateQuery{})
	if err != nil {
		return nil, err
	}
	return resp.(*game.StateView), nil
}

func (gc *gameContext) iShouldHaveCredits(expected int) error {
	s, err := gc.state()
	if err != nil {
		return err
	}
	if s.Credits != expected {
		return fmt.Errorf("expected %d credits, got %d", expected, s.Credits)
	}
	return nil
}

func (gc *gameContext) myHoldShouldContain(expected int, goodID string) error {
	s, err := gc.state()
	if err != nil {
		return err
	}
	if got := s.Cargo[goodID]; got != expected {
		return fmt.Errorf("expected %d %s in the hold, got %d", expected, goodID, got)
	}
	return nil
}

func (gc *gameContext) myFuelShouldBe(expected int) error {
	s, err := gc.state()
	if err != nil {
		return err
	}
	if s.Fuel != expected {
		return fmt.Errorf("expected fuel %d, got %d", expected, s.Fuel)
	}
	return nil
}

func (gc *gameContext) iShouldBeDockedAt(location string) error {
	s, err := gc.state()
	if err != nil {
		return err
	}
	if s.NavStatus != navigation.NavStatusDocked || s.DockedAt != location {
		return fmt.Errorf("expected docked at %s, got %s at %q", location, s.NavStatus, s.DockedAt)
	}
	return nil
}

func (gc *gameContext) iShouldBeInTransitTo(destination string) error {
	s, err := gc.state()
	if err != nil {
		return err
	}
	if s.NavStatus != navigation.NavStatusTraveling || s.Voyage == nil || s.Voyage.Destination != destination {
		return fmt.Errorf("expected to be traveling to %s, got %s", destination, s.NavStatus)
	}
	return nil
}

func (gc *gameContext) theViewShouldShow(location string) error {
	resp, err := gc.mediator.Send(context.Background(), &queries.GetViewQuery{})
	if err != nil {
		return err
	}
	view := resp.(*game.View)
	if view.Location.ID != location {
		return fmt.Errorf("expected the view to show %s, got %s", location, view.Location.ID)
	}
	return nil
}

func (gc *gameContext) theLedgerShouldContain(table *godog.Table) error {
	resp, err := gc.mediator.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{SessionID: gameSessionID})
	if err != nil {
		return err
	}
	transactions := resp.(*ledgerQueries.GetTransactionsResponse).Transactions

	expected := table.Rows[1:] // header: type | good | amount
	if len(transactions) != len(expected) {
		return fmt.Errorf("expected %d transactions, got %d", len(expected), len(transactions))
	}
	for i, row := range expected {
		tx := transactions[i]
		amount, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("row %d: bad amount: %w", i+1, err)
		}
		good := row.Cells[1].Value
		if good == "-" {
			good = ""
		}
		if tx.Type != row.Cells[0].Value || tx.GoodID != good || tx.Amount != amount {
			return fmt.Errorf("transaction %d: expected %s %s %d, got %s %s %d",
				i+1, row.Cells[0].Value, good, amount, tx.Type, tx.GoodID, tx.Amount)
		}
	}
	return nil
}

func (gc *gameContext) theLedgerShouldBeEmpty() error {
	resp, err := gc.mediator.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{SessionID: gameSessionID})
	if err != nil {
		return err
	}
	if total := resp.(*ledgerQueries.GetTransactionsResponse).Total; total != 0 {
		return fmt.Errorf("expected an empty ledger, got %d transactions", total)
	}
	return nil
}

func (gc *gameContext) theNetProfitShouldBe(expected int) error {
	resp, err := gc.mediator.Send(context.Background(), &ledgerQueries.GetProfitLossQuery{SessionID: gameSessionID})
	if err != nil {
		return err
	}
	if net := resp.(*ledgerQueries.GetProfitLossResponse).Net; net != expected {
		return fmt.Errorf("expected net profit %d, got %d", expected, net)
	}
	return nil
}

func (gc *gameContext) theBestHaulShouldBe(goodID, from, to string, profit int) error {
	resp, err := gc.mediator.Send(context.Background(), &queries.FindHaulsQuery{Limit: 1})
	if err != nil {
		return err
	}
	hauls := resp.(*queries.FindHaulsResponse).Hauls
	if len(hauls) == 0 {
		return fmt.Errorf("expected a haul, got none")
	}
	h := hauls[0]
	if h.GoodID != goodID || h.From != from || h.To != to || h.Profit != profit {
		return fmt.Errorf("expected %s %s->%s for %d, got %s %s->%s for %d",
			goodID, from, to, profit, h.GoodID, h.From, h.To, h.Profit)
	}
	return nil
}

func InitializeGameScenario(ctx *godog.ScenarioContext) {
	gc := &gameContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		gc.reset()
		return ctx, helpers.TruncateAllTables()
	})

	// Given steps
	ctx.Step(`^a new game$`, gc.aNewGame)
	ctx.Step(`^a new game with:$`, gc.aNewGameWith)

	// When steps
	ctx.Step(`^I buy "([^"]*)"$`, gc.iBuy)
	ctx.Step(`^I buy (\d+) "([^"]*)"$`, gc.iBuyUnits)
	ctx.Step(`^I sell "([^"]*)"$`, gc.iSell)
	ctx.Step(`^I sell (\d+) "([^"]*)"$`, gc.iSellUnits)
	ctx.Step(`^I travel to "([^"]*)"$`, gc.iTravelTo)
	ctx.Step(`^I refuel$`, gc.iRefuel)
	ctx.Step(`^(\d+) seconds? pass(?:es)?$`, gc.secondsPass)

	// Then steps
	ctx.Step(`^the command should succeed$`, gc.theCommandShouldSucceed)
	ctx.Step(`^the command should be a no-op because of "([^"]*)"$`, gc.theCommandShouldBeANoOpBecauseOf)
	ctx.Step(`^the command should be rejected$`, gc.theCommandShouldBeRejected)
	ctx.Step(`^I should have (\d+) credits$`, gc.iShouldHaveCredits)
	ctx.Step(`^my hold should contain (\d+) "([^"]*)"$`, gc.myHoldShouldContain)
	ctx.Step(`^my fuel should be (\d+)$`, gc.myFuelShouldBe)
	ctx.Step(`^I should be docked at "([^"]*)"$`, gc.iShouldBeDockedAt)
	ctx.Step(`^I should be in transit to "([^"]*)"$`, gc.iShouldBeInTransitTo)
	ctx.Step(`^the view should show "([^"]*)"$`, gc.theViewShouldShow)
	ctx.Step(`^the ledger should contain:$`, gc.theLedgerShouldContain)
	ctx.Step(`^the ledger should be empty$`, gc.theLedgerShouldBeEmpty)
	ctx.Step(`^the net profit should be (-?\d+)$`, gc.theNetProfitShouldBe)
	ctx.Step(`^the best haul should be "([^"]*)" from "([^"]*)" to "([^"]*)" for (\d+) credits$`, gc.theBestHaulShouldBe)
}
