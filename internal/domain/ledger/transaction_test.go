package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
)

func purchase(amount, before int) ledger.TransactionParams {
	return ledger.TransactionParams{
		SessionID:     "session-1",
		Timestamp:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:          ledger.TransactionTypePurchaseCargo,
		Location:      "terra",
		GoodID:        "food",
		Quantity:      1,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  before + amount,
	}
}

func TestNewTransaction_Purchase(t *testing.T) {
	tx, err := ledger.NewTransaction(purchase(-7, 10000))

	require.NoError(t, err)
	assert.False(t, tx.ID().IsZero())
	assert.Equal(t, ledger.CategoryTradingCosts, tx.Category())
	assert.Equal(t, 9993, tx.BalanceAfter())
	assert.False(t, tx.IsIncome())
}

func TestNewTransaction_RejectsWrongSign(t *testing.T) {
	_, err := ledger.NewTransaction(purchase(7, 10000))

	var invalid *ledger.InvalidTransactionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "amount", invalid.Field)
	assert.Contains(t, err.Error(), "wrong sign for PURCHASE_CARGO")
}

func TestNewTransaction_RejectsBrokenBalance(t *testing.T) {
	params := purchase(-7, 10000)
	params.BalanceAfter = 10000

	_, err := ledger.NewTransaction(params)

	var mismatch *ledger.BalanceMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 9993, mismatch.Expected())
}

func TestNewTransaction_RefuelNeedsNoGood(t *testing.T) {
	tx, err := ledger.NewTransaction(ledger.TransactionParams{
		SessionID:     "session-1",
		Type:          ledger.TransactionTypeRefuel,
		Location:      "minerva",
		Quantity:      30,
		Amount:        -60,
		BalanceBefore: 100,
		BalanceAfter:  40,
	})

	require.NoError(t, err)
	assert.Equal(t, ledger.CategoryFuelCosts, tx.Category())
}

func TestSummarize(t *testing.T) {
	buy, err := ledger.NewTransaction(purchase(-7, 10000))
	require.NoError(t, err)

	sell, err := ledger.NewTransaction(ledger.TransactionParams{
		SessionID: "session-1", Type: ledger.TransactionTypeSellCargo, Location: "minerva", GoodID: "food",
		Quantity: 1, Amount: 31, BalanceBefore: 9993, BalanceAfter: 10024,
	})
	require.NoError(t, err)

	refuel, err := ledger.NewTransaction(ledger.TransactionParams{
		SessionID: "session-1", Type: ledger.TransactionTypeRefuel, Location: "minerva",
		Quantity: 15, Amount: -30, BalanceBefore: 10024, BalanceAfter: 9994,
	})
	require.NoError(t, err)

	pl := ledger.Summarize([]*ledger.Transaction{buy, sell, refuel})

	assert.Equal(t, 31, pl.TradingRevenue)
	assert.Equal(t, 7, pl.TradingCosts)
	assert.Equal(t, 30, pl.FuelCosts)
	assert.Equal(t, -6, pl.Net)
	assert.Equal(t, 3, pl.Transactions)
}
