package navigation

import (
	"fmt"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// NavState tracks whether the player is docked or traveling.
//
// State machine:
//
//	DOCKED(at) --Depart--> TRAVELING(from, to) --Settle(now >= arrival)--> DOCKED(to)
//
// Traveling lasts one travel duration measured on the injected clock.
type NavState struct {
	status         NavStatus
	dockedAt       string
	voyage         *Voyage
	clock          shared.Clock
	travelDuration time.Duration
}

// NewNavState creates a nav state docked at the given location
func NewNavState(dockedAt string, clock shared.Clock, travelDuration time.Duration) (*NavState, error) {
	if dockedAt == "" {
		return nil, shared.NewValidationError("location", "docking location cannot be empty")
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if travelDuration < 0 {
		return nil, shared.NewValidationError("travel_duration", "travel duration cannot be negative")
	}

	return &NavState{
		status:         NavStatusDocked,
		dockedAt:       dockedAt,
		clock:          clock,
		travelDuration: travelDuration,
	}, nil
}

func (n *NavState) Status() NavStatus {
	return n.status
}

func (n *NavState) IsDocked() bool {
	return n.status == NavStatusDocked
}

// DockedAt returns the location the player is docked at, or the voyage origin while traveling.
// This is the location whose market and routes remain on display.
func (n *NavState) DockedAt() string {
	return n.dockedAt
}

func (n *NavState) TravelDuration() time.Duration {
	return n.travelDuration
}

// Voyage returns a copy of the current voyage, or nil when docked
func (n *NavState) Voyage() *Voyage {
	if n.voyage == nil {
		return nil
	}
	v := *n.voyage
	return &v
}

// EnsureDocked settles a finished voyage and fails if the player is still traveling
func (n *NavState) EnsureDocked() error {
	n.Settle()
	if n.status != NavStatusDocked {
		return shared.NewInvalidNavStatusError(
			fmt.Sprintf("in transit to %s until %s", n.voyage.Destination, n.voyage.ArrivesAt.Format(time.RFC3339Nano)))
	}
	return nil
}

// Depart starts a voyage from the docked location
func (n *NavState) Depart(destination string, fuelCost int) (*Voyage, error) {
	if err := n.EnsureDocked(); err != nil {
		return nil, err
	}
	if destination == n.dockedAt {
		return nil, shared.NewValidationError("destination", fmt.Sprintf("already docked at %s", destination))
	}

	now := n.clock.Now()
	n.voyage = &Voyage{
		Origin:      n.dockedAt,
		Destination: destination,
		FuelCost:    fuelCost,
		DepartedAt:  now,
		ArrivesAt:   now.Add(n.travelDuration),
	}
	n.status = NavStatusTraveling

	return n.Voyage(), nil
}

// Settle completes the voyage if its arrival time has passed.
// Returns the completed voyage, or nil when nothing changed.
func (n *NavState) Settle() *Voyage {
	if n.status != NavStatusTraveling || n.voyage == nil {
		return nil
	}
	if !n.voyage.HasArrived(n.clock.Now()) {
		return nil
	}

	done := *n.voyage
	n.status = NavStatusDocked
	n.dockedAt = done.Destination
	n.voyage = nil
	return &done
}
