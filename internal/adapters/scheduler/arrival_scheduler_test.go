package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

// manualTimers collects scheduled callbacks so tests fire them explicitly
type manualTimers struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{fn: f}
	m.delays = append(m.delays, d)
	m.pending = append(m.pending, t)
	return t
}

func (m *manualTimers) fireAll() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, t := range pending {
		if !t.stopped {
			t.fn()
		}
	}
}

func TestArrivalScheduler_PublishesArrival(t *testing.T) {
	// Arrange
	controller, clock := helpers.NewTestController(t, nil)
	bus := game.NewEventBus(4)
	events := bus.Subscribe()
	timers := &manualTimers{}
	s := NewArrivalScheduler(controller, clock, bus, nil).WithAfterFunc(timers.afterFunc)

	result, err := controller.TravelTo(context.Background(), "minerva")
	require.NoError(t, err)
	require.True(t, result.Succeeded())

	// Act
	s.ScheduleArrival(controller.SessionID(), result.ArrivesAt)
	require.Equal(t, 1, s.PendingCount())
	assert.Equal(t, time.Second, timers.delays[0])

	clock.Advance(time.Second)
	timers.fireAll()

	// Assert
	select {
	case ev := <-events:
		assert.Equal(t, game.EventArrived, ev.Type)
		require.NotNil(t, ev.Arrived)
		assert.Equal(t, "terra", ev.Arrived.Origin)
		assert.Equal(t, "minerva", ev.Arrived.Destination)
	default:
		t.Fatal("expected an arrived event")
	}
	assert.Equal(t, navigation.NavStatusDocked, controller.GetState().NavStatus)
	assert.Equal(t, 0, s.PendingCount())
}

func TestArrivalScheduler_AlreadySettledIsSilent(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	bus := game.NewEventBus(4)
	events := bus.Subscribe()
	timers := &manualTimers{}
	s := NewArrivalScheduler(controller, clock, bus, nil).WithAfterFunc(timers.afterFunc)

	result, err := controller.TravelTo(context.Background(), "minerva")
	require.NoError(t, err)
	s.ScheduleArrival(controller.SessionID(), result.ArrivesAt)

	// a query after arrival settles first
	clock.Advance(2 * time.Second)
	_ = controller.GetState()
	timers.fireAll()

	assert.Len(t, events, 0)
}

func TestArrivalScheduler_PastArrivalHasZeroDelay(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	timers := &manualTimers{}
	s := NewArrivalScheduler(controller, clock, nil, nil).WithAfterFunc(timers.afterFunc)

	s.ScheduleArrival("x", clock.Now().Add(-time.Minute))

	require.Len(t, timers.delays, 1)
	assert.Equal(t, time.Duration(0), timers.delays[0])
}

func TestArrivalScheduler_RescheduleReplacesTimer(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	timers := &manualTimers{}
	s := NewArrivalScheduler(controller, clock, nil, nil).WithAfterFunc(timers.afterFunc)

	s.ScheduleArrival("x", clock.Now().Add(time.Second))
	s.ScheduleArrival("x", clock.Now().Add(2*time.Second))

	assert.Equal(t, 1, s.PendingCount())
	assert.True(t, timers.pending[0].stopped)
	assert.False(t, timers.pending[1].stopped)
}

func TestArrivalScheduler_StopCancelsAndIgnoresLater(t *testing.T) {
	controller, clock := helpers.NewTestController(t, nil)
	timers := &manualTimers{}
	s := NewArrivalScheduler(controller, clock, nil, nil).WithAfterFunc(timers.afterFunc)

	s.ScheduleArrival("x", clock.Now().Add(time.Second))
	s.Stop()
	s.ScheduleArrival("y", clock.Now().Add(time.Second))

	assert.Equal(t, 0, s.PendingCount())
	assert.Len(t, timers.pending, 1)
	assert.True(t, timers.pending[0].stopped)
}

func TestArrivalScheduler_RealTimer(t *testing.T) {
	controller, _ := helpers.NewTestController(t, nil)
	s := NewArrivalScheduler(controller, nil, nil, nil)
	t.Cleanup(s.Stop)

	done := make(chan struct{})
	s.afterFunc = func(d time.Duration, f func()) timer {
		return realAfterFunc(d, func() {
			f()
			close(done)
		})
	}

	s.ScheduleArrival("x", time.Now())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	assert.Equal(t, 0, s.PendingCount())
}
