package shared_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

func TestFuel_ConsumeNeverClamps(t *testing.T) {
	fuel, err := shared.NewFuel(20, 100)
	require.NoError(t, err)

	after, err := fuel.Consume(15)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Current)
	assert.Equal(t, 20, fuel.Current, "fuel is immutable")

	_, err = after.Consume(6)
	var fuelErr *shared.InsufficientFuelError
	require.True(t, errors.As(err, &fuelErr))
	assert.Equal(t, 6, fuelErr.Required)
	assert.Equal(t, 5, fuelErr.Available)
}

func TestFuel_Levels(t *testing.T) {
	fuel, err := shared.NewFuel(70, 100)
	require.NoError(t, err)

	assert.Equal(t, 30, fuel.Missing())
	assert.InDelta(t, 70.0, fuel.Percentage(), 0.001)
	assert.False(t, fuel.IsFull())
	assert.True(t, fuel.Clamp(500).IsFull())
	assert.Equal(t, 0, fuel.Clamp(-3).Current)

	_, err = fuel.WithLevel(101)
	var invalid *shared.InvalidFuelError
	assert.True(t, errors.As(err, &invalid))
}

func TestCargo_AddRemove(t *testing.T) {
	cargo, err := shared.NewCargo(5)
	require.NoError(t, err)

	require.NoError(t, cargo.Add("minerals", 2))
	require.NoError(t, cargo.Add("food", 3))
	assert.True(t, cargo.IsFull())
	assert.Equal(t, []string{"food", "minerals"}, cargo.Symbols())

	var full *shared.CargoFullError
	require.True(t, errors.As(cargo.Add("food", 1), &full))
	assert.Equal(t, 0, full.Free)

	require.NoError(t, cargo.Remove("food", 3))
	assert.False(t, cargo.HasItem("food", 1))
	assert.Equal(t, map[string]int{"minerals": 2}, cargo.Snapshot())
	assert.Equal(t, 3, cargo.AvailableCapacity())
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)

	clock.Advance(time.Second)
	clock.Sleep(time.Second)

	assert.Equal(t, start.Add(2*time.Second), clock.Now())
}
