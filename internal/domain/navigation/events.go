package navigation

import "time"

// ArrivedEvent is published when a voyage completes and the player docks.
type ArrivedEvent struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	ArrivedAt   time.Time `json:"arrivedAt"`
}

// ArrivalFrom builds the event for a completed voyage
func ArrivalFrom(v *Voyage) ArrivedEvent {
	return ArrivedEvent{
		Origin:      v.Origin,
		Destination: v.Destination,
		ArrivedAt:   v.ArrivesAt,
	}
}
