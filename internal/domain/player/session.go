package player

import (
	"context"
	"fmt"
	"time"
)

// Session records who started a game and from which position
type Session struct {
	ID               string
	ShipName         string
	StartingCredits  int
	StartingLocation string
	StartedAt        time.Time
	LastActive       *time.Time
}

// NewSession creates a session record
func NewSession(id, shipName string, init InitialState, startedAt time.Time) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}
	return &Session{
		ID:               id,
		ShipName:         shipName,
		StartingCredits:  init.Credits,
		StartingLocation: init.Location,
		StartedAt:        startedAt,
	}, nil
}

// SessionRepository defines session persistence operations
type SessionRepository interface {
	Add(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
}
