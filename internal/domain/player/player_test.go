package player_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/domain/player"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

func newState(t *testing.T) *player.State {
	t.Helper()
	state, err := player.NewState(player.InitialState{
		Credits:       10000,
		Fuel:          100,
		MaxFuel:       100,
		CargoCapacity: 50,
		Location:      "terra",
	})
	require.NoError(t, err)
	return state
}

func TestNewState_StartingValues(t *testing.T) {
	state := newState(t)

	assert.Equal(t, 10000, state.Credits())
	assert.Equal(t, 100, state.Fuel())
	assert.Equal(t, 100, state.MaxFuel())
	assert.Equal(t, 0, state.CargoTotal())
	assert.Equal(t, 50, state.CargoCapacity())
	assert.Equal(t, "terra", state.CurrentLocation())
	assert.Empty(t, state.Cargo())
}

func TestNewState_RejectsInvalidStart(t *testing.T) {
	tests := []struct {
		name string
		init player.InitialState
	}{
		{"negative credits", player.InitialState{Credits: -1, Fuel: 10, MaxFuel: 10, CargoCapacity: 5, Location: "terra"}},
		{"fuel above max", player.InitialState{Credits: 0, Fuel: 11, MaxFuel: 10, CargoCapacity: 5, Location: "terra"}},
		{"zero capacity", player.InitialState{Credits: 0, Fuel: 10, MaxFuel: 10, CargoCapacity: 0, Location: "terra"}},
		{"no location", player.InitialState{Credits: 0, Fuel: 10, MaxFuel: 10, CargoCapacity: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := player.NewState(tt.init)
			assert.Error(t, err)
		})
	}
}

func TestState_Credits(t *testing.T) {
	state := newState(t)

	require.NoError(t, state.AddCredits(50))
	assert.Equal(t, 10050, state.Credits())

	var validationErr *shared.ValidationError
	assert.True(t, errors.As(state.AddCredits(-1), &validationErr))

	err := state.RemoveCredits(20000)
	var fundsErr *shared.InsufficientFundsError
	require.True(t, errors.As(err, &fundsErr))
	assert.Equal(t, 20000, fundsErr.Required)
	assert.Equal(t, 10050, state.Credits(), "failed debit must not change credits")

	require.NoError(t, state.RemoveCredits(10050))
	assert.Equal(t, 0, state.Credits())
}

func TestState_Cargo(t *testing.T) {
	state := newState(t)

	require.NoError(t, state.AddCargo("food", 3))
	require.NoError(t, state.AddCargo("minerals", 47))
	assert.Equal(t, 50, state.CargoTotal())
	assert.False(t, state.HasCargoSpace())

	var fullErr *shared.CargoFullError
	assert.True(t, errors.As(state.AddCargo("food", 1), &fullErr))
	assert.Equal(t, 3, state.CargoQuantity("food"))

	var cargoErr *shared.InsufficientCargoError
	assert.True(t, errors.As(state.RemoveCargo("food", 4), &cargoErr))

	require.NoError(t, state.RemoveCargo("food", 3))
	_, present := state.Cargo()["food"]
	assert.False(t, present, "zero-quantity entries are removed")
	assert.Equal(t, 0, state.CargoQuantity("food"))
}

func TestState_Fuel(t *testing.T) {
	state := newState(t)

	require.NoError(t, state.SetFuel(70))
	assert.Equal(t, 70, state.Fuel())
	assert.Equal(t, 30, state.FuelMissing())

	var invalidFuel *shared.InvalidFuelError
	assert.True(t, errors.As(state.SetFuel(101), &invalidFuel))
	assert.True(t, errors.As(state.SetFuel(-1), &invalidFuel))
	assert.Equal(t, 70, state.Fuel())

	assert.Equal(t, 100, state.ClampFuel(150))
	assert.Equal(t, 0, state.ClampFuel(-5))

	var noFuel *shared.InsufficientFuelError
	assert.True(t, errors.As(state.BurnFuel(1), &noFuel))
}

func TestState_SnapshotIsDetached(t *testing.T) {
	state := newState(t)
	require.NoError(t, state.AddCargo("food", 2))

	snap := state.Snapshot()
	snap.Cargo["food"] = 99

	assert.Equal(t, 2, state.CargoQuantity("food"))
	assert.Equal(t, 2, snap.CargoTotal)
	assert.Equal(t, "terra", snap.CurrentLocation)
}
