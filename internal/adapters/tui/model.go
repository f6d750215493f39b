package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
)

// arrivalGrace pads the re-poll so a remote server has settled the voyage
const arrivalGrace = 50 * time.Millisecond

type viewMsg struct {
	view *game.View
	pl   ledger.ProfitLoss
	err  error
}

type outcomeMsg struct {
	outcome Outcome
	err     error
}

type arrivalMsg struct{}

// Model is the bubbletea model of the trading console
type Model struct {
	ctx     context.Context
	backend Backend
	keys    keyMap
	help    help.Model
	market  table.Model

	view     *game.View
	pl       ledger.ProfitLoss
	goodIDs  []string // raw ids behind the market rows, same order
	status   string
	statusOK bool
	err      error // last fetch failure
	cmdErr   error // last command failure, kept until the next command
	busy     bool
	width    int
}

// NewModel creates the console over a backend
func NewModel(ctx context.Context, backend Backend) Model {
	market := table.New(
		table.WithColumns(marketColumns()),
		table.WithFocused(true),
		table.WithHeight(6),
	)
	market.SetStyles(tableStyles())

	return Model{
		ctx:     ctx,
		backend: backend,
		keys:    defaultKeyMap(),
		help:    help.New(),
		market:  market,
	}
}

// Run starts the console in the alternate screen and blocks until the player quits
func Run(ctx context.Context, backend Backend) error {
	p := tea.NewProgram(NewModel(ctx, backend), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case viewMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.pl = msg.pl
		m.market.SetRows(marketRows(msg.view.Market))
		m.goodIDs = make([]string, 0, len(msg.view.Market))
		for _, e := range msg.view.Market {
			m.goodIDs = append(m.goodIDs, e.GoodID)
		}
		if v := msg.view.State.Voyage; msg.view.State.NavStatus == navigation.NavStatusTraveling && v != nil {
			return m, waitForArrival(v.ArrivesAt)
		}
		return m, nil

	case outcomeMsg:
		m.busy = false
		if msg.err != nil {
			m.cmdErr = msg.err
			m.status = ""
			return m, m.fetch()
		}
		m.cmdErr = nil
		m.status = msg.outcome.Message
		m.statusOK = msg.outcome.Success
		if at := msg.outcome.ArrivesAt; !at.IsZero() {
			m.status += fmt.Sprintf(", arriving %s", at.Local().Format("15:04:05"))
		}
		return m, m.fetch()

	case arrivalMsg:
		return m, m.fetch()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.market, cmd = m.market.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Reload) {
		return m, m.fetch()
	}
	if m.busy || m.view == nil {
		var cmd tea.Cmd
		m.market, cmd = m.market.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Buy):
		good := m.selectedGood()
		if good == "" {
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) (Outcome, error) { return m.backend.Buy(ctx, good) })

	case key.Matches(msg, m.keys.Sell):
		good := m.selectedGood()
		if good == "" {
			return m, nil
		}
		return m.dispatch(func(ctx context.Context) (Outcome, error) { return m.backend.Sell(ctx, good) })

	case key.Matches(msg, m.keys.Travel):
		n, _ := strconv.Atoi(msg.String())
		options := m.view.Travel.Options
		if n < 1 || n > len(options) {
			m.status = fmt.Sprintf("No route %d", n)
			m.statusOK = false
			m.cmdErr = nil
			return m, nil
		}
		dest := options[n-1].DestinationID
		return m.dispatch(func(ctx context.Context) (Outcome, error) { return m.backend.Travel(ctx, dest) })

	case key.Matches(msg, m.keys.Refuel):
		return m.dispatch(m.backend.Refuel)
	}

	var cmd tea.Cmd
	m.market, cmd = m.market.Update(msg)
	return m, cmd
}

func (m Model) dispatch(run func(ctx context.Context) (Outcome, error)) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	return m, func() tea.Msg {
		out, err := run(ctx)
		return outcomeMsg{outcome: out, err: err}
	}
}

func (m Model) fetch() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		view, err := backend.View(ctx)
		if err != nil {
			return viewMsg{err: err}
		}
		pl, err := backend.ProfitLoss(ctx)
		if err != nil {
			return viewMsg{err: err}
		}
		return viewMsg{view: view, pl: pl}
	}
}

func (m Model) selectedGood() string {
	i := m.market.Cursor()
	if i < 0 || i >= len(m.goodIDs) {
		return ""
	}
	return m.goodIDs[i]
}

// waitForArrival re-reads the view once the voyage should be over
func waitForArrival(at time.Time) tea.Cmd {
	d := time.Until(at) + arrivalGrace
	if d < arrivalGrace {
		d = arrivalGrace
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return arrivalMsg{} })
}
