package httpapi

import (
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
)

// Request DTOs

type TradeRequest struct {
	GoodID string `json:"goodId" validate:"required"`
}

type TravelRequest struct {
	DestinationID string `json:"destinationId" validate:"required"`
}

// CommandOutcome is shared by every command response. A no-op is still a 200:
// the reason tells the player why nothing happened.
type CommandOutcome struct {
	Outcome    game.Outcome `json:"outcome"`
	Reason     string       `json:"reason,omitempty"`
	ReasonCode string       `json:"reasonCode,omitempty"`
}

// Succeeded reports whether the command changed the game state
func (o CommandOutcome) Succeeded() bool {
	return o.Outcome == game.OutcomeSuccess
}

func outcomeOf(r game.CommandResult) CommandOutcome {
	return CommandOutcome{
		Outcome:    r.Outcome,
		Reason:     r.ReasonText(),
		ReasonCode: commands.ReasonCode(r.Reason),
	}
}

type TradeResponse struct {
	CommandOutcome
	Location      string `json:"location"`
	GoodID        string `json:"goodId"`
	Price         int    `json:"price"`
	Quantity      int    `json:"quantity"`
	CreditsBefore int    `json:"creditsBefore"`
	CreditsAfter  int    `json:"creditsAfter"`
	CargoQuantity int    `json:"cargoQuantity"`
}

func tradeResponse(r *game.TradeResult) TradeResponse {
	return TradeResponse{
		CommandOutcome: outcomeOf(r.CommandResult),
		Location:       r.Location,
		GoodID:         r.GoodID,
		Price:          r.Price,
		Quantity:       r.Quantity,
		CreditsBefore:  r.CreditsBefore,
		CreditsAfter:   r.CreditsAfter,
		CargoQuantity:  r.CargoQuantity,
	}
}

type TravelResponse struct {
	CommandOutcome
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	FuelCost      int        `json:"fuelCost"`
	FuelBefore    int        `json:"fuelBefore"`
	FuelRemaining int        `json:"fuelRemaining"`
	ArrivesAt     *time.Time `json:"arrivesAt,omitempty"`
}

func travelResponse(r *game.TravelResult) TravelResponse {
	resp := TravelResponse{
		CommandOutcome: outcomeOf(r.CommandResult),
		Origin:         r.Origin,
		Destination:    r.Destination,
		FuelCost:       r.FuelCost,
		FuelBefore:     r.FuelBefore,
		FuelRemaining:  r.FuelRemaining,
	}
	if !r.ArrivesAt.IsZero() {
		at := r.ArrivesAt
		resp.ArrivesAt = &at
	}
	return resp
}

type RefuelResponse struct {
	CommandOutcome
	Location      string `json:"location"`
	FuelAdded     int    `json:"fuelAdded"`
	Cost          int    `json:"cost"`
	CreditsBefore int    `json:"creditsBefore"`
	CreditsAfter  int    `json:"creditsAfter"`
}

func refuelResponse(r *game.RefuelResult) RefuelResponse {
	return RefuelResponse{
		CommandOutcome: outcomeOf(r.CommandResult),
		Location:       r.Location,
		FuelAdded:      r.FuelAdded,
		Cost:           r.Cost,
		CreditsBefore:  r.CreditsBefore,
		CreditsAfter:   r.CreditsAfter,
	}
}

// LedgerResponse bundles the transaction history with the session's P&L
type LedgerResponse struct {
	Transactions []*ledgerQueries.TransactionDTO      `json:"transactions"`
	Total        int                                  `json:"total"`
	ProfitLoss   *ledgerQueries.GetProfitLossResponse `json:"profitLoss"`
}

// ErrorResponse is written for every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
