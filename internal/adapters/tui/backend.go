package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/httpapi"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
)

// Outcome is what the console shows after a command
type Outcome struct {
	Success bool
	Message string

	// Set after a departure; the console re-reads the view at that instant
	ArrivesAt time.Time
}

// Backend is the game as the console sees it: either the in-process
// mediator or a remote server.
type Backend interface {
	View(ctx context.Context) (*game.View, error)
	ProfitLoss(ctx context.Context) (ledger.ProfitLoss, error)
	Buy(ctx context.Context, goodID string) (Outcome, error)
	Sell(ctx context.Context, goodID string) (Outcome, error)
	Travel(ctx context.Context, destinationID string) (Outcome, error)
	Refuel(ctx context.Context) (Outcome, error)
}

// LocalBackend drives an in-process game through the mediator
type LocalBackend struct {
	mediator  mediator.Mediator
	sessionID string
}

// NewLocalBackend creates a backend over a wired mediator
func NewLocalBackend(m mediator.Mediator, sessionID string) *LocalBackend {
	return &LocalBackend{mediator: m, sessionID: sessionID}
}

func (b *LocalBackend) View(ctx context.Context) (*game.View, error) {
	resp, err := b.mediator.Send(ctx, &queries.GetViewQuery{})
	if err != nil {
		return nil, err
	}
	view, ok := resp.(*game.View)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return view, nil
}

func (b *LocalBackend) ProfitLoss(ctx context.Context) (ledger.ProfitLoss, error) {
	resp, err := b.mediator.Send(ctx, &ledgerQueries.GetProfitLossQuery{SessionID: b.sessionID})
	if err != nil {
		return ledger.ProfitLoss{}, err
	}
	pl, ok := resp.(*ledgerQueries.GetProfitLossResponse)
	if !ok {
		return ledger.ProfitLoss{}, fmt.Errorf("unexpected response type %T", resp)
	}
	return pl.ProfitLoss, nil
}

func (b *LocalBackend) Buy(ctx context.Context, goodID string) (Outcome, error) {
	return b.trade(ctx, &commands.BuyGoodCommand{GoodID: goodID}, "Bought")
}

func (b *LocalBackend) Sell(ctx context.Context, goodID string) (Outcome, error) {
	return b.trade(ctx, &commands.SellGoodCommand{GoodID: goodID}, "Sold")
}

func (b *LocalBackend) trade(ctx context.Context, cmd mediator.Request, verb string) (Outcome, error) {
	resp, err := b.mediator.Send(ctx, cmd)
	if err != nil {
		return Outcome{}, err
	}
	result, ok := resp.(*game.TradeResult)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected response type %T", resp)
	}
	if !result.Succeeded() {
		return Outcome{Message: result.ReasonText()}, nil
	}
	return Outcome{Success: true, Message: fmt.Sprintf("%s 1 %s for %d cr", verb, result.GoodID, result.Price)}, nil
}

func (b *LocalBackend) Travel(ctx context.Context, destinationID string) (Outcome, error) {
	resp, err := b.mediator.Send(ctx, &commands.TravelCommand{Destination: destinationID})
	if err != nil {
		return Outcome{}, err
	}
	result, ok := resp.(*game.TravelResult)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected response type %T", resp)
	}
	if !result.Succeeded() {
		return Outcome{Message: result.ReasonText()}, nil
	}
	return Outcome{
		Success:   true,
		Message:   fmt.Sprintf("Departed for %s, burned %d fuel", result.Destination, result.FuelCost),
		ArrivesAt: result.ArrivesAt,
	}, nil
}

func (b *LocalBackend) Refuel(ctx context.Context) (Outcome, error) {
	resp, err := b.mediator.Send(ctx, &commands.RefuelCommand{})
	if err != nil {
		return Outcome{}, err
	}
	result, ok := resp.(*game.RefuelResult)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected response type %T", resp)
	}
	if !result.Succeeded() {
		return Outcome{Message: result.ReasonText()}, nil
	}
	return Outcome{Success: true, Message: fmt.Sprintf("Refueled %d units for %d cr", result.FuelAdded, result.Cost)}, nil
}

// RemoteBackend plays against a running server
type RemoteBackend struct {
	client *httpapi.Client
}

// NewRemoteBackend creates a backend over the HTTP client
func NewRemoteBackend(client *httpapi.Client) *RemoteBackend {
	return &RemoteBackend{client: client}
}

func (b *RemoteBackend) View(ctx context.Context) (*game.View, error) {
	return b.client.View(ctx)
}

func (b *RemoteBackend) ProfitLoss(ctx context.Context) (ledger.ProfitLoss, error) {
	resp, err := b.client.Ledger(ctx, 1)
	if err != nil {
		return ledger.ProfitLoss{}, err
	}
	if resp.ProfitLoss == nil {
		return ledger.ProfitLoss{}, nil
	}
	return resp.ProfitLoss.ProfitLoss, nil
}

func (b *RemoteBackend) Buy(ctx context.Context, goodID string) (Outcome, error) {
	resp, err := b.client.Buy(ctx, goodID)
	if err != nil {
		return Outcome{}, err
	}
	if !resp.Succeeded() {
		return Outcome{Message: resp.Reason}, nil
	}
	return Outcome{Success: true, Message: fmt.Sprintf("Bought 1 %s for %d cr", resp.GoodID, resp.Price)}, nil
}

func (b *RemoteBackend) Sell(ctx context.Context, goodID string) (Outcome, error) {
	resp, err := b.client.Sell(ctx, goodID)
	if err != nil {
		return Outcome{}, err
	}
	if !resp.Succeeded() {
		return Outcome{Message: resp.Reason}, nil
	}
	return Outcome{Success: true, Message: fmt.Sprintf("Sold 1 %s for %d cr", resp.GoodID, resp.Price)}, nil
}

func (b *RemoteBackend) Travel(ctx context.Context, destinationID string) (Outcome, error) {
	resp, err := b.client.Travel(ctx, destinationID)
	if err != nil {
		return Outcome{}, err
	}
	if !resp.Succeeded() {
		return Outcome{Message: resp.Reason}, nil
	}
	out := Outcome{
		Success: true,
		Message: fmt.Sprintf("Departed for %s, burned %d fuel", resp.Destination, resp.FuelCost),
	}
	if resp.ArrivesAt != nil {
		out.ArrivesAt = *resp.ArrivesAt
	}
	return out, nil
}

func (b *RemoteBackend) Refuel(ctx context.Context) (Outcome, error) {
	resp, err := b.client.Refuel(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if !resp.Succeeded() {
		return Outcome{Message: resp.Reason}, nil
	}
	return Outcome{Success: true, Message: fmt.Sprintf("Refueled %d units for %d cr", resp.FuelAdded, resp.Cost)}, nil
}
