package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/application/setup"
	tradingCommands "github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

func newWiredMediator(t *testing.T, mutate func(*game.Settings)) (mediator.Mediator, *game.Controller, *helpers.MockTransactionRepository) {
	t.Helper()
	controller, clock := helpers.NewTestController(t, mutate)
	repo := helpers.NewMockTransactionRepository()
	m := mediator.NewMediator()
	m.Use(mediator.LoggingMiddleware())
	require.NoError(t, setup.NewHandlerRegistry(controller, repo, game.NewEventBus(0), nil, clock).RegisterAll(m))
	return m, controller, repo
}

func TestRegisterAll_TradingFlowWritesLedger(t *testing.T) {
	// Arrange
	m, _, repo := newWiredMediator(t, func(s *game.Settings) { s.TravelDuration = 0 })
	ctx := context.Background()

	// Act
	for _, req := range []mediator.Request{
		&tradingCommands.BuyGoodCommand{GoodID: "food"},
		&tradingCommands.BuyGoodCommand{GoodID: "food"},
		&tradingCommands.TravelCommand{Destination: "minerva"},
		&tradingCommands.SellGoodCommand{GoodID: "food"},
		&tradingCommands.SellGoodCommand{GoodID: "food"},
		&tradingCommands.RefuelCommand{},
	} {
		_, err := m.Send(ctx, req)
		require.NoError(t, err)
	}

	// Assert
	assert.Len(t, repo.All(), 5)

	resp, err := m.Send(ctx, &ledgerQueries.GetProfitLossQuery{SessionID: helpers.TestSessionID})
	require.NoError(t, err)
	pl := resp.(*ledgerQueries.GetProfitLossResponse)
	assert.Equal(t, 14, pl.TradingCosts)
	assert.Equal(t, 62, pl.TradingRevenue)
	assert.Equal(t, 30, pl.FuelCosts)
	assert.Equal(t, 18, pl.Net)

	stateResp, err := m.Send(ctx, &tradingQueries.GetStateQuery{})
	require.NoError(t, err)
	state := stateResp.(*game.StateView)
	assert.Equal(t, 10018, state.Credits)
	assert.Equal(t, 100, state.Fuel)
	assert.Equal(t, "minerva", state.CurrentLocation)
}

func TestRegisterAll_Queries(t *testing.T) {
	m, _, _ := newWiredMediator(t, nil)
	ctx := context.Background()

	marketResp, err := m.Send(ctx, &tradingQueries.GetMarketQuery{})
	require.NoError(t, err)
	market := marketResp.(*tradingQueries.GetMarketResponse)
	assert.Equal(t, "terra", market.LocationID)
	assert.Len(t, market.Goods, 3)

	travelResp, err := m.Send(ctx, &tradingQueries.GetTravelOptionsQuery{FromID: "luxuria"})
	require.NoError(t, err)
	travel := travelResp.(*game.TravelOptions)
	assert.Equal(t, "luxuria", travel.From)
	assert.Len(t, travel.Options, 2)

	viewResp, err := m.Send(ctx, &tradingQueries.GetViewQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Terra Prime", viewResp.(*game.View).Location.Name)

	_, err = m.Send(ctx, &tradingQueries.GetMarketQuery{LocationID: "atlantis"})
	assert.Error(t, err)
}

func TestRegisterAll_TravelFreezesViewUntilArrival(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	m := mediator.NewMediator()
	require.NoError(t, setup.NewHandlerRegistry(controller, helpers.NewMockTransactionRepository(), nil, nil, clock).RegisterAll(m))
	ctx := context.Background()

	_, err := m.Send(ctx, &tradingCommands.TravelCommand{Destination: "luxuria"})
	require.NoError(t, err)

	viewResp, err := m.Send(ctx, &tradingQueries.GetViewQuery{})
	require.NoError(t, err)
	assert.True(t, viewResp.(*game.View).Stale)

	clock.Advance(time.Second)
	viewResp, err = m.Send(ctx, &tradingQueries.GetViewQuery{})
	require.NoError(t, err)
	assert.Equal(t, "luxuria", viewResp.(*game.View).Location.ID)
}

func TestRegisterAll_TwiceFails(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	m := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(controller, helpers.NewMockTransactionRepository(), nil, nil, clock)
	require.NoError(t, registry.RegisterAll(m))

	assert.Error(t, registry.RegisterAll(m))
}
