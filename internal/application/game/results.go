package game

import (
	"time"
)

// Outcome tells a rendering layer whether a command changed anything
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeNoOp    Outcome = "no_op"
)

// CommandResult reports what a command did. Failed preconditions are carried in
// Reason and never returned as errors.
type CommandResult struct {
	Outcome Outcome
	Reason  error
}

func success() CommandResult {
	return CommandResult{Outcome: OutcomeSuccess}
}

func noOp(reason error) CommandResult {
	return CommandResult{Outcome: OutcomeNoOp, Reason: reason}
}

// Succeeded reports whether the command mutated state
func (r CommandResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// ReasonText returns the no-op reason as text, empty on success
func (r CommandResult) ReasonText() string {
	if r.Reason == nil {
		return ""
	}
	return r.Reason.Error()
}

// TradeResult is returned by Buy and Sell
type TradeResult struct {
	CommandResult
	Location      string
	GoodID        string
	Price         int
	Quantity      int
	CreditsBefore int
	CreditsAfter  int
	CargoQuantity int
}

// TravelResult is returned by TravelTo
type TravelResult struct {
	CommandResult
	Origin        string
	Destination   string
	FuelCost      int
	FuelBefore    int
	FuelRemaining int
	ArrivesAt     time.Time
}

// RefuelResult is returned by Refuel
type RefuelResult struct {
	CommandResult
	Location      string
	FuelAdded     int
	Cost          int
	CreditsBefore int
	CreditsAfter  int
}
