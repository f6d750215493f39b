package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/logging"
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// Settler is the part of the controller the scheduler drives
type Settler interface {
	Settle() *navigation.Voyage
}

type timer interface {
	Stop() bool
}

// AfterFunc matches time.AfterFunc; tests swap it for a manual trigger
type AfterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// ArrivalScheduler pushes arrival to subscribers at the moment a voyage ends.
// Uses time.AfterFunc, so nothing runs between events. Commands and queries
// settle lazily as well, so a missed timer only delays the push.
type ArrivalScheduler struct {
	settler   Settler
	clock     shared.Clock
	publisher game.EventPublisher
	logger    logging.GameLogger
	afterFunc AfterFunc

	mu      sync.Mutex
	timers  map[string]timer // key: session id
	stopped bool
}

// Compile-time interface check
var _ game.ArrivalScheduler = (*ArrivalScheduler)(nil)

// NewArrivalScheduler creates a scheduler. publisher and logger are optional.
func NewArrivalScheduler(settler Settler, clock shared.Clock, publisher game.EventPublisher, logger logging.GameLogger) *ArrivalScheduler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}
	return &ArrivalScheduler{
		settler:   settler,
		clock:     clock,
		publisher: publisher,
		logger:    logger,
		afterFunc: realAfterFunc,
		timers:    make(map[string]timer),
	}
}

// WithAfterFunc replaces the timer factory
func (s *ArrivalScheduler) WithAfterFunc(f AfterFunc) *ArrivalScheduler {
	s.afterFunc = f
	return s
}

// ScheduleArrival arms a timer for a session, replacing any pending one
func (s *ArrivalScheduler) ScheduleArrival(sessionID string, at time.Time) {
	delay := at.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0 // Already past, execute immediately
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if existing, ok := s.timers[sessionID]; ok {
		existing.Stop()
	}

	s.timers[sessionID] = s.afterFunc(delay, func() {
		s.handleArrival(sessionID)
	})

	s.logger.Log("DEBUG", "Scheduled arrival", map[string]interface{}{
		"session": sessionID,
		"delay":   delay.String(),
	})
}

// handleArrival settles the controller and announces the arrival
func (s *ArrivalScheduler) handleArrival(sessionID string) {
	s.mu.Lock()
	delete(s.timers, sessionID)
	stopped := s.stopped
	s.mu.Unlock()

	if stopped {
		return
	}

	voyage := s.settler.Settle()
	if voyage == nil {
		// a command or query already settled it
		return
	}

	arrived := navigation.ArrivalFrom(voyage)
	metrics.RecordArrival(sessionID, arrived.Destination)
	s.logger.Log("INFO", "Arrived", map[string]interface{}{
		"session":     sessionID,
		"origin":      arrived.Origin,
		"destination": arrived.Destination,
	})

	if s.publisher != nil {
		s.publisher.Publish(game.GameEvent{
			Type:      game.EventArrived,
			SessionID: sessionID,
			Arrived:   &arrived,
			At:        s.clock.Now(),
		})
	}
}

// PendingCount returns the number of armed timers
func (s *ArrivalScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer; later schedules are ignored
func (s *ArrivalScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
	s.stopped = true
}
