package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
	"github.com/andrescamacho/stellar-hauler/internal/domain/market"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/catalog"
)

type pricingContext struct {
	basePrice int
	supply    market.Level
	demand    market.Level
	quote     market.Quote
	universe  *galaxy.Catalog
	err       error
}

func (pc *pricingContext) reset() {
	pc.basePrice = 0
	pc.supply = ""
	pc.demand = ""
	pc.quote = market.Quote{}
	pc.universe = nil
	pc.err = nil
}

// Given steps

func (pc *pricingContext) aGoodWithBasePriceSupplyAndDemand(base int, supply, demand string) error {
	s, err := market.ParseLevel(supply)
	if err != nil {
		return err
	}
	d, err := market.ParseLevel(demand)
	if err != nil {
		return err
	}
	pc.basePrice, pc.supply, pc.demand = base, s, d
	return nil
}

func (pc *pricingContext) theStartingUniverse() error {
	universe, err := catalog.NewLoader(nil).LoadDefault()
	if err != nil {
		return err
	}
	pc.universe = universe
	return nil
}

// When steps

func (pc *pricingContext) theMarketQuotesIt() error {
	pc.quote = market.QuoteFor(pc.basePrice, pc.supply, pc.demand)
	return nil
}

func (pc *pricingContext) iParseTheLevel(raw string) error {
	_, pc.err = market.ParseLevel(raw)
	return nil
}

// Then steps

func (pc *pricingContext) theBuyPriceShouldBe(expected int) error {
	if pc.quote.BuyPrice != expected {
		return fmt.Errorf("expected buy price %d, got %d", expected, pc.quote.BuyPrice)
	}
	return nil
}

func (pc *pricingContext) theSellPriceShouldBe(expected int) error {
	if pc.quote.SellPrice != expected {
		return fmt.Errorf("expected sell price %d, got %d", expected, pc.quote.SellPrice)
	}
	return nil
}

func (pc *pricingContext) theMarketsShouldPost(table *godog.Table) error {
	if pc.universe == nil {
		return fmt.Errorf("no universe loaded")
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // header: location | good | buy | sell
		}
		locationID, goodID := row.Cells[0].Value, row.Cells[1].Value
		buy, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("row %d: bad buy price: %w", i, err)
		}
		sell, err := strconv.Atoi(row.Cells[3].Value)
		if err != nil {
			return fmt.Errorf("row %d: bad sell price: %w", i, err)
		}

		good, err := pc.universe.Good(locationID, goodID)
		if err != nil {
			return err
		}
		if good.BuyPrice() != buy || good.SellPrice() != sell {
			return fmt.Errorf("%s at %s: expected %d/%d, got %d/%d",
				goodID, locationID, buy, sell, good.BuyPrice(), good.SellPrice())
		}
	}
	return nil
}

func (pc *pricingContext) theLevelShouldBeRejected() error {
	if pc.err == nil {
		return fmt.Errorf("expected level to be rejected")
	}
	return nil
}

func InitializePricingScenario(ctx *godog.ScenarioContext) {
	pc := &pricingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a good with base price (\d+), supply "([^"]*)" and demand "([^"]*)"$`, pc.aGoodWithBasePriceSupplyAndDemand)
	ctx.Step(`^the starting universe$`, pc.theStartingUniverse)

	// When steps
	ctx.Step(`^the market quotes it$`, pc.theMarketQuotesIt)
	ctx.Step(`^I parse the level "([^"]*)"$`, pc.iParseTheLevel)

	// Then steps
	ctx.Step(`^the buy price should be (\d+)$`, pc.theBuyPriceShouldBe)
	ctx.Step(`^the sell price should be (\d+)$`, pc.theSellPriceShouldBe)
	ctx.Step(`^the markets should post:$`, pc.theMarketsShouldPost)
	ctx.Step(`^the level should be rejected$`, pc.theLevelShouldBeRejected)
}
