package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/httpapi"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

func TestClient_PlaysAgainstServer(t *testing.T) {
	// Arrange
	ts := newTestServer(t, func(s *game.Settings) { s.TravelDuration = 0 }, nil)
	httpServer := httptest.NewServer(ts.server.Handler())
	defer httpServer.Close()
	client := httpapi.NewClient(httpServer.URL + "/")
	ctx := context.Background()

	// Act
	buy, err := client.Buy(ctx, "food")
	require.NoError(t, err)
	travel, err := client.Travel(ctx, "minerva")
	require.NoError(t, err)
	sell, err := client.Sell(ctx, "food")
	require.NoError(t, err)
	refuel, err := client.Refuel(ctx)
	require.NoError(t, err)
	view, err := client.View(ctx)
	require.NoError(t, err)
	ledger, err := client.Ledger(ctx, 10)
	require.NoError(t, err)

	// Assert
	assert.True(t, buy.Succeeded())
	assert.True(t, travel.Succeeded())
	assert.True(t, sell.Succeeded())
	assert.Equal(t, 31, sell.Price)
	assert.True(t, refuel.Succeeded())
	assert.Equal(t, "minerva", view.Location.ID)
	assert.Equal(t, 10000-7+31-30, view.State.Credits)
	assert.Equal(t, 3, ledger.Total)
	assert.Equal(t, 31-7-30, ledger.ProfitLoss.Net)
}

func TestClient_NoOpIsNotAnError(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	httpServer := httptest.NewServer(ts.server.Handler())
	defer httpServer.Close()
	client := httpapi.NewClient(httpServer.URL)

	resp, err := client.Refuel(context.Background())

	require.NoError(t, err)
	assert.False(t, resp.Succeeded())
	assert.Equal(t, "invalid_fuel", resp.ReasonCode)
}

func TestClient_UnknownGoodIsAPIError(t *testing.T) {
	ts := newTestServer(t, nil, nil)
	httpServer := httptest.NewServer(ts.server.Handler())
	defer httpServer.Close()
	client := httpapi.NewClient(httpServer.URL)

	_, err := client.Buy(context.Background(), "spice")

	var apiErr *httpapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestClient_RetriesRateLimitedRequests(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"outcome":"success","location":"terra","goodId":"food","price":7}`))
	}))
	defer httpServer.Close()

	clock := shared.NewMockClock(helpers.GameEpoch)
	client := httpapi.NewClient(httpServer.URL, httpapi.WithClientClock(clock), httpapi.WithRetries(3, time.Second))

	// Act
	resp, err := client.Buy(context.Background(), "food")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Price)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, helpers.GameEpoch.Add(6*time.Second), clock.Now(), "Retry-After is honoured")
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer httpServer.Close()

	clock := shared.NewMockClock(helpers.GameEpoch)
	client := httpapi.NewClient(httpServer.URL, httpapi.WithClientClock(clock), httpapi.WithRetries(2, time.Millisecond))

	_, err := client.View(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(3), calls.Load())
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	clock := shared.NewMockClock(helpers.GameEpoch)
	cb := httpapi.NewCircuitBreaker(2, 10*time.Second, clock)
	boom := errors.New("connection refused")

	assert.Equal(t, boom, cb.Call(func() error { return boom }))
	assert.Equal(t, httpapi.CircuitClosed, cb.State())
	assert.Equal(t, boom, cb.Call(func() error { return boom }))
	assert.Equal(t, httpapi.CircuitOpen, cb.State())

	ran := false
	err := cb.Call(func() error { ran = true; return nil })
	assert.ErrorIs(t, err, httpapi.ErrCircuitOpen)
	assert.False(t, ran)

	clock.Advance(10 * time.Second)
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, httpapi.CircuitClosed, cb.State())
	assert.Zero(t, cb.Failures())
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	cb := httpapi.NewCircuitBreaker(1, time.Minute, shared.NewMockClock(helpers.GameEpoch))

	err := cb.Call(func() error { return &httpapi.APIError{Status: http.StatusNotFound} })

	require.Error(t, err)
	assert.Equal(t, httpapi.CircuitClosed, cb.State())

	_ = cb.Call(func() error { return &httpapi.APIError{Status: http.StatusInternalServerError} })
	assert.Equal(t, httpapi.CircuitOpen, cb.State())
}
