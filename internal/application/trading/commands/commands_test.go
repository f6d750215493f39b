package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerCommands "github.com/andrescamacho/stellar-hauler/internal/application/ledger/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

type recordingScheduler struct {
	sessions []string
	times    []time.Time
}

func (s *recordingScheduler) ScheduleArrival(sessionID string, at time.Time) {
	s.sessions = append(s.sessions, sessionID)
	s.times = append(s.times, at)
}

func ledgerCommandsSent(m *helpers.RecordingMediator) []*ledgerCommands.RecordTransactionCommand {
	var out []*ledgerCommands.RecordTransactionCommand
	for _, r := range m.Sent() {
		if cmd, ok := r.(*ledgerCommands.RecordTransactionCommand); ok {
			out = append(out, cmd)
		}
	}
	return out
}

func TestBuyGoodHandler_RecordsPurchase(t *testing.T) {
	// Arrange
	controller, clock := helpers.NewTestController(t, nil)
	med := helpers.NewRecordingMediator()
	bus := game.NewEventBus(4)
	events := bus.Subscribe()
	handler := commands.NewBuyGoodHandler(controller, med, bus, clock)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.BuyGoodCommand{GoodID: "food"})

	// Assert
	require.NoError(t, err)
	result := resp.(*game.TradeResult)
	assert.True(t, result.Succeeded())

	sent := ledgerCommandsSent(med)
	require.Len(t, sent, 1)
	assert.Equal(t, ledger.TransactionTypePurchaseCargo.String(), sent[0].TransactionType)
	assert.Equal(t, -7, sent[0].Amount)
	assert.Equal(t, 10000, sent[0].BalanceBefore)
	assert.Equal(t, 9993, sent[0].BalanceAfter)
	assert.Equal(t, "food", sent[0].GoodID)
	assert.Equal(t, helpers.TestSessionID, sent[0].SessionID)
	require.NotNil(t, sent[0].Timestamp)
	assert.True(t, clock.Now().Equal(*sent[0].Timestamp))

	ev := <-events
	assert.Equal(t, game.EventStateChanged, ev.Type)
	assert.Equal(t, "buy", ev.Command)
}

func TestBuyGoodHandler_NoOpRecordsNothing(t *testing.T) {
	controller, clock := helpers.NewTestController(t, func(s *game.Settings) { s.Initial.Credits = 1 })
	med := helpers.NewRecordingMediator()
	bus := game.NewEventBus(4)
	events := bus.Subscribe()
	handler := commands.NewBuyGoodHandler(controller, med, bus, clock)

	resp, err := handler.Handle(context.Background(), &commands.BuyGoodCommand{GoodID: "food"})

	require.NoError(t, err)
	assert.False(t, resp.(*game.TradeResult).Succeeded())
	assert.Empty(t, med.Sent())
	assert.Len(t, events, 0)
}

func TestBuyGoodHandler_LookupErrorPropagates(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	handler := commands.NewBuyGoodHandler(controller, nil, nil, clock)

	_, err := handler.Handle(context.Background(), &commands.BuyGoodCommand{GoodID: "spice"})

	var lookup *shared.LookupError
	assert.ErrorAs(t, err, &lookup)
}

func TestBuyGoodHandler_LedgerFailureKeepsTrade(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	med := helpers.NewRecordingMediator()
	med.SendErr = errors.New("disk full")
	handler := commands.NewBuyGoodHandler(controller, med, nil, clock)

	resp, err := handler.Handle(context.Background(), &commands.BuyGoodCommand{GoodID: "food"})

	require.NoError(t, err)
	assert.True(t, resp.(*game.TradeResult).Succeeded())
	assert.Equal(t, 9993, controller.GetState().Credits)
}

func TestBuyGoodHandler_WrongRequestType(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	handler := commands.NewBuyGoodHandler(controller, nil, nil, clock)

	_, err := handler.Handle(context.Background(), &commands.SellGoodCommand{GoodID: "food"})

	assert.Error(t, err)
}

func TestSellGoodHandler_RecordsSale(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	_, err := controller.Buy(context.Background(), "food")
	require.NoError(t, err)
	med := helpers.NewRecordingMediator()
	handler := commands.NewSellGoodHandler(controller, med, nil, clock)

	resp, err := handler.Handle(context.Background(), &commands.SellGoodCommand{GoodID: "food"})

	require.NoError(t, err)
	assert.True(t, resp.(*game.TradeResult).Succeeded())
	sent := ledgerCommandsSent(med)
	require.Len(t, sent, 1)
	assert.Equal(t, ledger.TransactionTypeSellCargo.String(), sent[0].TransactionType)
	assert.Equal(t, 6, sent[0].Amount)
	assert.Equal(t, 9993, sent[0].BalanceBefore)
	assert.Equal(t, 9999, sent[0].BalanceAfter)
}

func TestTravelHandler_SchedulesArrival(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	med := helpers.NewRecordingMediator()
	sched := &recordingScheduler{}
	handler := commands.NewTravelHandler(controller, med, nil, sched, clock)

	resp, err := handler.Handle(context.Background(), &commands.TravelCommand{Destination: "minerva"})

	require.NoError(t, err)
	result := resp.(*game.TravelResult)
	assert.True(t, result.Succeeded())
	require.Len(t, sched.sessions, 1)
	assert.Equal(t, helpers.TestSessionID, sched.sessions[0])
	assert.True(t, result.ArrivesAt.Equal(sched.times[0]))
	assert.Empty(t, med.Sent(), "travel moves no credits")
}

func TestTravelHandler_NoOpDoesNotSchedule(t *testing.T) {
	controller, clock := helpers.NewTestController(t, func(s *game.Settings) { s.Initial.Fuel = 1 })
	sched := &recordingScheduler{}
	handler := commands.NewTravelHandler(controller, nil, nil, sched, clock)

	resp, err := handler.Handle(context.Background(), &commands.TravelCommand{Destination: "minerva"})

	require.NoError(t, err)
	assert.False(t, resp.(*game.TravelResult).Succeeded())
	assert.Empty(t, sched.sessions)
}

func TestRefuelHandler_RecordsFuelCost(t *testing.T) {
	controller, clock := helpers.NewTestController(t, func(s *game.Settings) { s.Initial.Fuel = 70 })
	med := helpers.NewRecordingMediator()
	handler := commands.NewRefuelHandler(controller, med, nil, clock)

	resp, err := handler.Handle(context.Background(), &commands.RefuelCommand{})

	require.NoError(t, err)
	assert.True(t, resp.(*game.RefuelResult).Succeeded())
	sent := ledgerCommandsSent(med)
	require.Len(t, sent, 1)
	assert.Equal(t, ledger.TransactionTypeRefuel.String(), sent[0].TransactionType)
	assert.Equal(t, -60, sent[0].Amount)
	assert.Equal(t, 30, sent[0].Quantity)
	assert.Empty(t, sent[0].GoodID)
}

func TestRefuelHandler_FreeFuelSkipsLedger(t *testing.T) {
	controller, clock := helpers.NewTestController(t, func(s *game.Settings) {
		s.Initial.Fuel = 70
		s.RefuelPricePerUnit = 0
	})
	med := helpers.NewRecordingMediator()
	handler := commands.NewRefuelHandler(controller, med, nil, clock)

	resp, err := handler.Handle(context.Background(), &commands.RefuelCommand{})

	require.NoError(t, err)
	assert.True(t, resp.(*game.RefuelResult).Succeeded())
	assert.Empty(t, med.Sent())
}

func TestReasonCode(t *testing.T) {
	assert.Equal(t, "", commands.ReasonCode(nil))
	assert.Equal(t, "insufficient_funds", commands.ReasonCode(shared.NewInsufficientFundsError(10, 5)))
	assert.Equal(t, "cargo_full", commands.ReasonCode(shared.NewCargoFullError(1, 0)))
	assert.Equal(t, "insufficient_cargo", commands.ReasonCode(shared.NewInsufficientCargoError("food", 1, 0)))
	assert.Equal(t, "insufficient_fuel", commands.ReasonCode(shared.NewInsufficientFuelError(15, 10)))
	assert.Equal(t, "in_transit", commands.ReasonCode(shared.NewInvalidNavStatusError("traveling")))
	assert.Equal(t, "invalid_fuel", commands.ReasonCode(shared.NewValidationError("fuel", "tank is already full")))
	assert.Equal(t, "other", commands.ReasonCode(errors.New("???")))
}
