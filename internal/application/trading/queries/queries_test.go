package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

func intPtr(v int) *int { return &v }

func TestGetMarketHandler_DefaultsToDockedLocation(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	handler := queries.NewGetMarketHandler(controller)

	resp, err := handler.Handle(context.Background(), &queries.GetMarketQuery{})

	require.NoError(t, err)
	market := resp.(*queries.GetMarketResponse)
	assert.Equal(t, "terra", market.LocationID)
	require.Len(t, market.Goods, 3)
	assert.Equal(t, "food", market.Goods[0].GoodID)
	assert.Equal(t, 7, market.Goods[0].BuyPrice)
	assert.Equal(t, 6, market.Goods[0].SellPrice)
}

func TestGetMarketHandler_UnknownLocation(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	handler := queries.NewGetMarketHandler(controller)

	_, err := handler.Handle(context.Background(), &queries.GetMarketQuery{LocationID: "atlantis"})

	var lookup *shared.LookupError
	assert.True(t, errors.As(err, &lookup))
}

func TestGetTravelOptionsHandler_ListsDestinationsInCatalogOrder(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	handler := queries.NewGetTravelOptionsHandler(controller)

	resp, err := handler.Handle(context.Background(), &queries.GetTravelOptionsQuery{})

	require.NoError(t, err)
	options := resp.(*game.TravelOptions)
	require.Len(t, options.Options, 2)
	assert.Equal(t, "minerva", options.Options[0].DestinationID)
	assert.Equal(t, 15, options.Options[0].FuelCost)
	assert.Equal(t, "luxuria", options.Options[1].DestinationID)
	assert.Equal(t, 12, options.Options[1].FuelCost)
}

func TestFindHaulsHandler_RanksByProfit(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	handler := queries.NewFindHaulsHandler(controller)

	resp, err := handler.Handle(context.Background(), &queries.FindHaulsQuery{})

	require.NoError(t, err)
	hauls := resp.(*queries.FindHaulsResponse).Hauls
	require.Len(t, hauls, 5)
	assert.Equal(t, queries.Haul{
		GoodID: "minerals", From: "minerva", To: "terra",
		BuyPrice: 22, SellPrice: 77, Margin: 55, FuelCost: 15,
		Units: 50, Profit: 2720,
	}, hauls[0])
	for i := 1; i < len(hauls); i++ {
		assert.GreaterOrEqual(t, hauls[i-1].Profit, hauls[i].Profit)
	}
}

func TestFindHaulsHandler_CreditsLimitUnits(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	handler := queries.NewFindHaulsHandler(controller)

	resp, err := handler.Handle(context.Background(), &queries.FindHaulsQuery{Credits: intPtr(100), Limit: 1})

	require.NoError(t, err)
	hauls := resp.(*queries.FindHaulsResponse).Hauls
	require.Len(t, hauls, 1)
	assert.Equal(t, "food", hauls[0].GoodID)
	assert.Equal(t, "terra", hauls[0].From)
	assert.Equal(t, "luxuria", hauls[0].To)
	assert.Equal(t, 14, hauls[0].Units)
	assert.Equal(t, 466, hauls[0].Profit)
}

func TestFindHauls_NothingAffordable(t *testing.T) {
	hauls, err := queries.FindHauls(helpers.NewTestCatalog(t), 0, 50, 2)

	require.NoError(t, err)
	assert.Empty(t, hauls)
}

func TestFindHaulsHandler_RejectsWrongRequest(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	handler := queries.NewFindHaulsHandler(controller)

	_, err := handler.Handle(context.Background(), &queries.GetViewQuery{})

	assert.Error(t, err)
}
