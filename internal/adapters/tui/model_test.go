package tui_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/tui"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/application/setup"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
)

func newLocalModel(t *testing.T, mutate func(*game.Settings)) tea.Model {
	t.Helper()
	model, _ := newLocalGame(t, mutate, nil)
	return model
}

// newLocalGame wires a console over an in-process game and returns the
// controller behind it. wrap, when set, decorates the local backend.
func newLocalGame(t *testing.T, mutate func(*game.Settings), wrap func(tui.Backend) tui.Backend) (tea.Model, *game.Controller) {
	t.Helper()
	controller, clock := helpers.NewTestController(t, mutate)
	m := mediator.NewMediator()
	require.NoError(t, setup.NewHandlerRegistry(controller, helpers.NewMockTransactionRepository(), nil, nil, clock).RegisterAll(m))

	var backend tui.Backend = tui.NewLocalBackend(m, helpers.TestSessionID)
	if wrap != nil {
		backend = wrap(backend)
	}
	model := tui.NewModel(context.Background(), backend)
	next, _ := model.Update(model.Init()())
	return next, controller
}

func press(t *testing.T, model tea.Model, keys string) (tea.Model, tea.Cmd) {
	t.Helper()
	return model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

// run executes a command and feeds its message back into the model
func run(t *testing.T, model tea.Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return model.Update(cmd())
}

func TestModel_RendersDockedFrame(t *testing.T) {
	model := newLocalModel(t, nil)

	out := model.View()

	assert.Contains(t, out, "STELLAR HAULER")
	assert.Contains(t, out, "Terra Prime")
	assert.Contains(t, out, "10000")
	assert.Contains(t, out, "100/100")
	assert.Contains(t, out, "Minerva Station")
	assert.Contains(t, out, "Tank full")
	assert.Contains(t, out, "Food")
}

func TestModel_BuyUpdatesFrame(t *testing.T) {
	// Arrange
	model := newLocalModel(t, nil)

	// Act
	model, cmd := press(t, model, "b")
	model, cmd = run(t, model, cmd)
	model, _ = run(t, model, cmd)

	// Assert
	out := model.View()
	assert.Contains(t, out, "Bought 1 food for 7 cr")
	assert.Contains(t, out, "9993")
	assert.Contains(t, out, "food×1")
	assert.Contains(t, out, "-7 cr")
}

func TestModel_BuyAndSellReachTheGame(t *testing.T) {
	model, controller := newLocalGame(t, nil, nil)

	model, cmd := press(t, model, "b")
	model, cmd = run(t, model, cmd)
	model, _ = run(t, model, cmd)

	state := controller.GetState()
	assert.Equal(t, 9993, state.Credits)
	assert.Equal(t, 1, state.Cargo["food"])
	assert.NotContains(t, model.View(), "Error:")

	model, cmd = press(t, model, "s")
	model, cmd = run(t, model, cmd)
	model, _ = run(t, model, cmd)

	state = controller.GetState()
	assert.Zero(t, state.Cargo["food"])
	assert.Contains(t, model.View(), "Sold 1 food")
}

func TestModel_BuyFollowsTheCursor(t *testing.T) {
	model, controller := newLocalGame(t, nil, nil)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := press(t, model, "b")
	model, cmd = run(t, model, cmd)
	_, _ = run(t, model, cmd)

	state := controller.GetState()
	assert.Equal(t, 1, state.Cargo["minerals"], "the second row was bought")
	assert.Zero(t, state.Cargo["food"])
}

func TestModel_NoOpShowsReason(t *testing.T) {
	model := newLocalModel(t, nil)

	model, cmd := press(t, model, "s")
	model, cmd = run(t, model, cmd)
	model, _ = run(t, model, cmd)

	assert.Contains(t, model.View(), "insufficient cargo")
}

func TestModel_TravelFreezesFrameAndWaitsForArrival(t *testing.T) {
	model := newLocalModel(t, nil)

	model, cmd := press(t, model, "1")
	model, cmd = run(t, model, cmd)
	model, arrival := run(t, model, cmd)

	out := model.View()
	assert.Contains(t, out, "Departed for minerva")
	assert.Contains(t, out, "Terra Prime", "frame stays on the origin while traveling")
	assert.Contains(t, out, "in transit to minerva")
	assert.Contains(t, out, "85/100")
	assert.NotNil(t, arrival, "a re-poll is scheduled for the arrival")
}

func TestModel_UnknownRoute(t *testing.T) {
	model := newLocalModel(t, nil)

	model, cmd := press(t, model, "9")

	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "No route 9")
}

func TestModel_Quit(t *testing.T) {
	model := newLocalModel(t, nil)

	_, cmd := press(t, model, "q")

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

type failingBackend struct {
	tui.Backend
}

func (failingBackend) View(ctx context.Context) (*game.View, error) {
	return nil, errors.New("connection refused")
}

func (failingBackend) ProfitLoss(ctx context.Context) (ledger.ProfitLoss, error) {
	return ledger.ProfitLoss{}, nil
}

func TestModel_ShowsBackendErrors(t *testing.T) {
	model := tui.NewModel(context.Background(), failingBackend{})

	next, _ := model.Update(model.Init()())

	assert.Contains(t, next.View(), "connection refused")
	assert.Contains(t, next.View(), "Press r to retry")
}

type brokenTradeBackend struct {
	tui.Backend
}

func (brokenTradeBackend) Buy(ctx context.Context, goodID string) (tui.Outcome, error) {
	return tui.Outcome{}, errors.New("ledger unavailable")
}

func TestModel_CommandErrorSurvivesRefresh(t *testing.T) {
	model, _ := newLocalGame(t, nil, func(b tui.Backend) tui.Backend { return brokenTradeBackend{b} })

	model, cmd := press(t, model, "b")
	model, cmd = run(t, model, cmd)
	model, _ = run(t, model, cmd)

	out := model.View()
	assert.Contains(t, out, "Error: ledger unavailable", "the refreshed frame still reports the failure")
	assert.Contains(t, out, "Terra Prime")

	// the next command replaces it
	model, cmd = press(t, model, "s")
	model, cmd = run(t, model, cmd)
	model, _ = run(t, model, cmd)

	out = model.View()
	assert.NotContains(t, out, "ledger unavailable")
	assert.Contains(t, out, "insufficient cargo")
}
