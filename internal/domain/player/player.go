package player

import (
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// InitialState holds the values a new game starts from
type InitialState struct {
	Credits       int
	Fuel          int
	MaxFuel       int
	CargoCapacity int
	Location      string
}

// State is the player's mutable record: credits, fuel, cargo hold and position.
//
// It carries no business rules, only primitives that keep the invariants:
// credits never negative, fuel within [0, MaxFuel], cargo total within capacity
// and no zero-quantity cargo entries. Callers are expected to check
// preconditions first; the primitives fail rather than clamp.
type State struct {
	credits  int
	fuel     *shared.Fuel
	cargo    *shared.Cargo
	location string
}

// NewState creates the player state for a new session
func NewState(init InitialState) (*State, error) {
	if init.Credits < 0 {
		return nil, shared.NewValidationError("credits", "starting credits cannot be negative")
	}
	if init.Location == "" {
		return nil, shared.NewValidationError("location", "starting location cannot be empty")
	}

	fuel, err := shared.NewFuel(init.Fuel, init.MaxFuel)
	if err != nil {
		return nil, fmt.Errorf("starting fuel: %w", err)
	}

	cargo, err := shared.NewCargo(init.CargoCapacity)
	if err != nil {
		return nil, fmt.Errorf("starting cargo: %w", err)
	}

	return &State{
		credits:  init.Credits,
		fuel:     fuel,
		cargo:    cargo,
		location: init.Location,
	}, nil
}

// Queries

func (s *State) Credits() int { return s.credits }
func (s *State) Fuel() int { return s.fuel.Current }
func (s *State) MaxFuel() int { return s.fuel.Capacity }
func (s *State) CargoTotal() int { return s.cargo.Units() }
func (s *State) CargoCapacity() int { return s.cargo.Capacity() }
func (s *State) CargoQuantity(good string) int { return s.cargo.GetItemUnits(good) }
func (s *State) CurrentLocation() string { return s.location }
func (s *State) Cargo() map[string]int { return s.cargo.Snapshot() }
func (s *State) HasCargoSpace() bool { return !s.cargo.IsFull() }
func (s *State) FuelMissing() int { return s.fuel.Missing() }
func (s *State) CanAfford(amount int) bool { return amount <= s.credits }
func (s *State) HasFuelFor(required int) bool { return s.fuel.CanTravel(required) }

// Mutators

// AddCredits credits the player; delta must be non-negative
func (s *State) AddCredits(delta int) error {
	if delta < 0 {
		return shared.NewValidationError("delta", fmt.Sprintf("cannot add negative credits %d", delta))
	}
	s.credits += delta
	return nil
}

// RemoveCredits debits the player
func (s *State) RemoveCredits(amount int) error {
	if amount < 0 {
		return shared.NewValidationError("amount", fmt.Sprintf("cannot remove negative credits %d", amount))
	}
	if amount > s.credits {
		return shared.NewInsufficientFundsError(amount, s.credits)
	}
	s.credits -= amount
	return nil
}

// AddCargo loads qty units of a good
func (s *State) AddCargo(good string, qty int) error {
	return s.cargo.Add(good, qty)
}

// RemoveCargo unloads qty units of a good
func (s *State) RemoveCargo(good string, qty int) error {
	return s.cargo.Remove(good, qty)
}

// SetFuel sets the tank to an exact level
func (s *State) SetFuel(value int) error {
	fuel, err := s.fuel.WithLevel(value)
	if err != nil {
		return err
	}
	s.fuel = fuel
	return nil
}

// ClampFuel sets the tank to value bounded to [0, MaxFuel] and returns the level applied
func (s *State) ClampFuel(value int) int {
	s.fuel = s.fuel.Clamp(value)
	return s.fuel.Current
}

// BurnFuel consumes fuel for a jump
func (s *State) BurnFuel(amount int) error {
	fuel, err := s.fuel.Consume(amount)
	if err != nil {
		return err
	}
	s.fuel = fuel
	return nil
}

// SetLocation moves the player; the caller guarantees the id is in the catalog
func (s *State) SetLocation(id string) error {
	if id == "" {
		return shared.NewValidationError("location", "location cannot be empty")
	}
	s.location = id
	return nil
}

// Snapshot is a detached copy of the state
type Snapshot struct {
	Credits         int            `json:"credits"`
	Fuel            int            `json:"fuel"`
	MaxFuel         int            `json:"maxFuel"`
	Cargo           map[string]int `json:"cargo"`
	CargoTotal      int            `json:"cargoTotal"`
	CargoCapacity   int            `json:"cargoCapacity"`
	CurrentLocation string         `json:"currentLocationId"`
}

// Snapshot copies the state for rendering layers
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Credits:         s.credits,
		Fuel:            s.fuel.Current,
		MaxFuel:         s.fuel.Capacity,
		Cargo:           s.cargo.Snapshot(),
		CargoTotal:      s.cargo.Units(),
		CargoCapacity:   s.cargo.Capacity(),
		CurrentLocation: s.location,
	}
}
