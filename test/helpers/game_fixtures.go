package helpers

import (
	"testing"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/catalog"
)

// TestSessionID tags ledger entries written by fixtures
const TestSessionID = "test-session"

// GameEpoch is the MockClock start used by fixtures
var GameEpoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// NewTestCatalog loads the embedded three-location universe
func NewTestCatalog(t testing.TB) *galaxy.Catalog {
	t.Helper()
	c, err := catalog.NewLoader(nil).LoadDefault()
	if err != nil {
		t.Fatalf("failed to load default catalog: %v", err)
	}
	return c
}

// NewTestController starts a controller on the default universe with a mock clock.
// mutate may adjust the default settings before construction.
func NewTestController(t testing.TB, mutate func(*game.Settings)) (*game.Controller, *shared.MockClock) {
	t.Helper()
	settings := game.DefaultSettings()
	if mutate != nil {
		mutate(&settings)
	}

	clock := shared.NewMockClock(GameEpoch)
	c, err := game.NewController(NewTestCatalog(t), settings,
		game.WithClock(clock),
		game.WithSessionID(TestSessionID),
	)
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	return c, clock
}
