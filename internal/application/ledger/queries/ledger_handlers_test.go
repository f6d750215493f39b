package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerCommands "github.com/andrescamacho/stellar-hauler/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

func record(t *testing.T, h *ledgerCommands.RecordTransactionHandler, cmd *ledgerCommands.RecordTransactionCommand) {
	t.Helper()
	_, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
}

func TestRecordTransaction_UsesClockWhenNoTimestamp(t *testing.T) {
	repo := helpers.NewMockTransactionRepository()
	clock := shared.NewMockClock(helpers.GameEpoch)
	h := ledgerCommands.NewRecordTransactionHandler(repo, clock)

	resp, err := h.Handle(context.Background(), &ledgerCommands.RecordTransactionCommand{
		SessionID:       "s1",
		TransactionType: "PURCHASE_CARGO",
		Location:        "terra",
		GoodID:          "food",
		Quantity:        1,
		Amount:          -7,
		BalanceBefore:   10000,
		BalanceAfter:    9993,
	})

	require.NoError(t, err)
	out := resp.(*ledgerCommands.RecordTransactionResponse)
	assert.NotEmpty(t, out.TransactionID)
	assert.True(t, helpers.GameEpoch.Equal(out.Timestamp))
	assert.Len(t, repo.All(), 1)
}

func TestRecordTransaction_RejectsBrokenBalance(t *testing.T) {
	repo := helpers.NewMockTransactionRepository()
	h := ledgerCommands.NewRecordTransactionHandler(repo, nil)

	_, err := h.Handle(context.Background(), &ledgerCommands.RecordTransactionCommand{
		SessionID:       "s1",
		TransactionType: "SELL_CARGO",
		GoodID:          "food",
		Quantity:        1,
		Amount:          6,
		BalanceBefore:   100,
		BalanceAfter:    200,
	})

	assert.Error(t, err)
	assert.Empty(t, repo.All())
}

func TestRecordTransaction_UnknownType(t *testing.T) {
	h := ledgerCommands.NewRecordTransactionHandler(helpers.NewMockTransactionRepository(), nil)

	_, err := h.Handle(context.Background(), &ledgerCommands.RecordTransactionCommand{SessionID: "s1", TransactionType: "BRIBE"})

	assert.Error(t, err)
}

func TestLedgerQueries(t *testing.T) {
	// Arrange
	repo := helpers.NewMockTransactionRepository()
	rec := ledgerCommands.NewRecordTransactionHandler(repo, shared.NewMockClock(helpers.GameEpoch))
	at := helpers.GameEpoch.Add(time.Minute)

	record(t, rec, &ledgerCommands.RecordTransactionCommand{SessionID: "s1", TransactionType: "PURCHASE_CARGO", Location: "terra", GoodID: "food", Quantity: 1, Amount: -7, BalanceBefore: 1000, BalanceAfter: 993})
	record(t, rec, &ledgerCommands.RecordTransactionCommand{SessionID: "s1", TransactionType: "SELL_CARGO", Location: "minerva", GoodID: "food", Quantity: 1, Amount: 31, BalanceBefore: 993, BalanceAfter: 1024, Timestamp: &at})
	record(t, rec, &ledgerCommands.RecordTransactionCommand{SessionID: "s1", TransactionType: "REFUEL", Location: "minerva", Quantity: 15, Amount: -30, BalanceBefore: 1024, BalanceAfter: 994})
	record(t, rec, &ledgerCommands.RecordTransactionCommand{SessionID: "s2", TransactionType: "REFUEL", Location: "terra", Quantity: 1, Amount: -2, BalanceBefore: 10, BalanceAfter: 8})

	// Act
	listResp, err := ledgerQueries.NewGetTransactionsHandler(repo).Handle(context.Background(), &ledgerQueries.GetTransactionsQuery{SessionID: "s1", Limit: 2})
	require.NoError(t, err)
	plResp, err := ledgerQueries.NewGetProfitLossHandler(repo).Handle(context.Background(), &ledgerQueries.GetProfitLossQuery{SessionID: "s1"})
	require.NoError(t, err)

	// Assert
	list := listResp.(*ledgerQueries.GetTransactionsResponse)
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Transactions, 2)
	assert.Equal(t, "PURCHASE_CARGO", list.Transactions[0].Type)
	assert.Equal(t, "TRADING_COSTS", list.Transactions[0].Category)
	assert.True(t, at.Equal(list.Transactions[1].Timestamp))

	pl := plResp.(*ledgerQueries.GetProfitLossResponse)
	assert.Equal(t, 31, pl.TradingRevenue)
	assert.Equal(t, 7, pl.TradingCosts)
	assert.Equal(t, 30, pl.FuelCosts)
	assert.Equal(t, -6, pl.Net)
	assert.Equal(t, 3, pl.Transactions)
}

func TestGetTransactions_FilterByType(t *testing.T) {
	repo := helpers.NewMockTransactionRepository()
	rec := ledgerCommands.NewRecordTransactionHandler(repo, nil)
	record(t, rec, &ledgerCommands.RecordTransactionCommand{SessionID: "s1", TransactionType: "PURCHASE_CARGO", GoodID: "food", Quantity: 1, Amount: -7, BalanceBefore: 100, BalanceAfter: 93})
	record(t, rec, &ledgerCommands.RecordTransactionCommand{SessionID: "s1", TransactionType: "REFUEL", Quantity: 3, Amount: -6, BalanceBefore: 93, BalanceAfter: 87})

	refuel := "REFUEL"
	resp, err := ledgerQueries.NewGetTransactionsHandler(repo).Handle(context.Background(), &ledgerQueries.GetTransactionsQuery{SessionID: "s1", TransactionType: &refuel})

	require.NoError(t, err)
	out := resp.(*ledgerQueries.GetTransactionsResponse)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 3, out.Transactions[0].Quantity)

	bad := "BRIBE"
	_, err = ledgerQueries.NewGetTransactionsHandler(repo).Handle(context.Background(), &ledgerQueries.GetTransactionsQuery{SessionID: "s1", TransactionType: &bad})
	assert.Error(t, err)
}
