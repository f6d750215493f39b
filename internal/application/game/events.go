package game

import (
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
)

// EventType names what a GameEvent announces
type EventType string

const (
	// EventStateChanged follows every successful command
	EventStateChanged EventType = "state_changed"
	// EventArrived follows the end of a voyage
	EventArrived EventType = "arrived"
)

// GameEvent is pushed to rendering layers so they know to re-read the view
type GameEvent struct {
	Type      EventType                `json:"type"`
	SessionID string                   `json:"sessionId"`
	Command   string                   `json:"command,omitempty"`
	Arrived   *navigation.ArrivedEvent `json:"arrived,omitempty"`
	At        time.Time                `json:"at"`
}

// EventPublisher delivers game events to subscribers
type EventPublisher interface {
	Publish(event GameEvent)
}

// EventSubscriber hands out event channels
type EventSubscriber interface {
	Subscribe() <-chan GameEvent
	Unsubscribe(ch <-chan GameEvent)
}

// ArrivalScheduler settles a voyage once its arrival time has passed
type ArrivalScheduler interface {
	ScheduleArrival(sessionID string, at time.Time)
}
