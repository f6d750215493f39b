package market

import "errors"

// Domain errors for market data

var (
	// ErrInvalidGoodSymbol is returned when a good identifier is empty
	ErrInvalidGoodSymbol = errors.New("invalid good symbol")

	// ErrInvalidPrice is returned when a base price is not positive
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidLevel is returned when a supply or demand value is not low, medium or high
	ErrInvalidLevel = errors.New("invalid supply/demand level")
)
