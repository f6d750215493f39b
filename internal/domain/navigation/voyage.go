package navigation

import (
	"fmt"
	"time"
)

// Voyage is an in-flight jump between two locations
type Voyage struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	FuelCost    int       `json:"fuelCost"`
	DepartedAt  time.Time `json:"departedAt"`
	ArrivesAt   time.Time `json:"arrivesAt"`
}

// HasArrived reports whether the voyage is over at the given instant
func (v Voyage) HasArrived(now time.Time) bool {
	return !now.Before(v.ArrivesAt)
}

// Remaining returns the time left until arrival, never negative
func (v Voyage) Remaining(now time.Time) time.Duration {
	if v.HasArrived(now) {
		return 0
	}
	return v.ArrivesAt.Sub(now)
}

func (v Voyage) String() string {
	return fmt.Sprintf("Voyage(%s->%s, arrives %s)", v.Origin, v.Destination, v.ArrivesAt.Format(time.RFC3339Nano))
}
