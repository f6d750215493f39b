package market

import "fmt"

// TradeGood is a commodity as listed at one location (immutable value object).
// The same good carries different attributes at different locations.
type TradeGood struct {
	id        string
	basePrice int
	supply    Level
	demand    Level
}

// NewTradeGood creates a new TradeGood with validation
func NewTradeGood(id string, basePrice int, supply, demand Level) (*TradeGood, error) {
	if id == "" {
		return nil, ErrInvalidGoodSymbol
	}
	if basePrice <= 0 {
		return nil, fmt.Errorf("%w: %s base price %d must be positive", ErrInvalidPrice, id, basePrice)
	}
	if !supply.IsValid() {
		return nil, fmt.Errorf("%w: %s supply %q", ErrInvalidLevel, id, supply)
	}
	if !demand.IsValid() {
		return nil, fmt.Errorf("%w: %s demand %q", ErrInvalidLevel, id, demand)
	}

	return &TradeGood{
		id:        id,
		basePrice: basePrice,
		supply:    supply,
		demand:    demand,
	}, nil
}

func (g *TradeGood) ID() string { return g.id }
func (g *TradeGood) BasePrice() int { return g.basePrice }
func (g *TradeGood) Supply() Level { return g.supply }
func (g *TradeGood) Demand() Level { return g.demand }

// BuyPrice is what the player pays for one unit
func (g *TradeGood) BuyPrice() int {
	return Price(g.basePrice, g.supply, g.demand, BuyFromMarket)
}

// SellPrice is what the player receives for one unit
func (g *TradeGood) SellPrice() int {
	return Price(g.basePrice, g.supply, g.demand, SellToMarket)
}

func (g *TradeGood) String() string {
	return fmt.Sprintf("TradeGood(%s, base=%d, supply=%s, demand=%s)", g.id, g.basePrice, g.supply, g.demand)
}
