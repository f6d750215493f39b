package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
)

const defaultWidth = 72

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	noOpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func marketColumns() []table.Column {
	return []table.Column{
		{Title: "Good", Width: 12},
		{Title: "Supply", Width: 7},
		{Title: "Demand", Width: 7},
		{Title: "Buy", Width: 6},
		{Title: "Sell", Width: 6},
		{Title: "Held", Width: 5},
	}
}

func marketRows(entries []game.MarketEntry) []table.Row {
	title := cases.Title(language.English)
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			title.String(e.GoodID),
			e.Supply,
			e.Demand,
			strconv.Itoa(e.BuyPrice),
			strconv.Itoa(e.SellPrice),
			strconv.Itoa(e.PlayerQuantity),
		})
	}
	return rows
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("205")).
		Bold(false)
	return s
}

func (m Model) View() string {
	if m.view == nil {
		if m.err != nil {
			return errorStyle.Render("Error: "+m.err.Error()) + "\n\nPress r to retry, q to quit.\n"
		}
		return "Loading...\n"
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("STELLAR HAULER") + "  " + labelStyle.Render(m.view.State.Ship.Name) + "\n\n")
	b.WriteString(renderStatusBar(m.view.State) + "\n\n")
	b.WriteString(renderLocation(m.view, width) + "\n\n")
	b.WriteString(m.market.View() + "\n\n")
	b.WriteString(renderTravel(m.view) + "\n")
	b.WriteString(renderProfitLoss(m.pl.Net, m.pl.Transactions) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.cmdErr != nil:
		b.WriteString(errorStyle.Render("Error: "+m.cmdErr.Error()) + "\n")
	case m.status != "" && m.statusOK:
		b.WriteString(successStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString(noOpStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func renderStatusBar(s game.StateView) string {
	field := func(label, value string) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(value)
	}
	return strings.Join([]string{
		field("Credits", strconv.Itoa(s.Credits)),
		field("Fuel", fmt.Sprintf("%d/%d", s.Fuel, s.MaxFuel)),
		field("Cargo", fmt.Sprintf("%d/%d", s.CargoTotal, s.CargoCapacity)),
		field("Hold", renderManifest(s.Cargo)),
	}, "   ")
}

func renderManifest(cargo map[string]int) string {
	if len(cargo) == 0 {
		return "empty"
	}
	goods := make([]string, 0, len(cargo))
	for good := range cargo {
		goods = append(goods, good)
	}
	sort.Strings(goods)
	parts := make([]string, 0, len(goods))
	for _, good := range goods {
		parts = append(parts, fmt.Sprintf("%s×%d", good, cargo[good]))
	}
	return strings.Join(parts, " ")
}

func renderLocation(v *game.View, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Location.Name))
	if v.State.NavStatus == navigation.NavStatusTraveling {
		b.WriteString("  " + noOpStyle.Render("in transit to "+v.State.CurrentLocation))
	}
	if v.Location.Description != "" {
		b.WriteString("\n" + wordwrap.String(v.Location.Description, width-4))
	}
	return panelStyle.Render(b.String())
}

func renderTravel(v *game.View) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Routes") + "\n")
	for i, opt := range v.Travel.Options {
		line := fmt.Sprintf("  %d) %-12s %3d fuel", i+1, opt.Name, opt.FuelCost)
		if !opt.AffordableFuel {
			line = disabledStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	refuel := v.Travel.Refuel
	switch {
	case !refuel.Available:
		b.WriteString(labelStyle.Render("  Tank full") + "\n")
	case refuel.Affordable:
		b.WriteString(fmt.Sprintf("  f) Refuel for %d cr\n", refuel.Cost))
	default:
		b.WriteString(disabledStyle.Render(fmt.Sprintf("  f) Refuel for %d cr", refuel.Cost)) + "\n")
	}
	return b.String()
}

func renderProfitLoss(net, transactions int) string {
	style := successStyle
	if net < 0 {
		style = errorStyle
	}
	return labelStyle.Render("P&L ") + style.Render(fmt.Sprintf("%+d cr", net)) +
		labelStyle.Render(fmt.Sprintf(" over %d transactions", transactions))
}
