package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Trade-related errors

type TradeError struct {
	*DomainError
}

func NewTradeError(message string) *TradeError {
	return &TradeError{DomainError: &DomainError{Message: message}}
}

type InsufficientFundsError struct {
	*TradeError
	Required  int
	Available int
}

func NewInsufficientFundsError(required, available int) *InsufficientFundsError {
	return &InsufficientFundsError{
		TradeError: NewTradeError(fmt.Sprintf("insufficient funds: need %d, have %d", required, available)),
		Required:   required,
		Available:  available,
	}
}

type CargoFullError struct {
	*TradeError
	Requested int
	Free      int
}

func NewCargoFullError(requested, free int) *CargoFullError {
	return &CargoFullError{
		TradeError: NewTradeError(fmt.Sprintf("cargo hold full: requested %d, free %d", requested, free)),
		Requested:  requested,
		Free:       free,
	}
}

type InsufficientCargoError struct {
	*TradeError
	Good      string
	Requested int
	Held      int
}

func NewInsufficientCargoError(good string, requested, held int) *InsufficientCargoError {
	return &InsufficientCargoError{
		TradeError: NewTradeError(fmt.Sprintf("insufficient cargo: need %d %s, hold %d", requested, good, held)),
		Good:       good,
		Requested:  requested,
		Held:       held,
	}
}

// Ship-related errors

type ShipError struct {
	*DomainError
}

func NewShipError(message string) *ShipError {
	return &ShipError{DomainError: &DomainError{Message: message}}
}

type InvalidNavStatusError struct {
	*ShipError
}

func NewInvalidNavStatusError(message string) *InvalidNavStatusError {
	return &InvalidNavStatusError{ShipError: NewShipError(message)}
}

type InsufficientFuelError struct {
	*ShipError
	Required  int
	Available int
}

func NewInsufficientFuelError(required, available int) *InsufficientFuelError {
	return &InsufficientFuelError{
		ShipError: NewShipError(fmt.Sprintf("insufficient fuel: need %d, have %d", required, available)),
		Required:  required,
		Available: available,
	}
}

// InvalidFuelError reports a fuel level that would have to be clamped to fit the tank.
type InvalidFuelError struct {
	*ShipError
	Requested int
	Capacity  int
}

func NewInvalidFuelError(requested, capacity int) *InvalidFuelError {
	return &InvalidFuelError{
		ShipError: NewShipError(fmt.Sprintf("invalid fuel level %d: must be within [0, %d]", requested, capacity)),
		Requested: requested,
		Capacity:  capacity,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// LookupError is raised for identifiers that are not part of the catalog.
// It indicates a data or wiring bug rather than a player mistake.
type LookupError struct {
	Kind string
	ID   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.ID)
}

func NewLookupError(kind, id string) *LookupError {
	return &LookupError{Kind: kind, ID: id}
}
