package market

import "math"

// TradeDirection tells the price model which side of the trade the player is on.
type TradeDirection int

const (
	// BuyFromMarket is the player paying the market
	BuyFromMarket TradeDirection = iota
	// SellToMarket is the market paying the player
	SellToMarket
)

func (d TradeDirection) String() string {
	switch d {
	case BuyFromMarket:
		return "buy"
	case SellToMarket:
		return "sell"
	}
	return "unknown"
}

// Price computes the unit price of a good.
//
// The multiplier starts at 1.0 and picks up one factor per non-medium axis.
// Buying: supply high 0.8, supply low 1.3, then demand high 1.2, demand low 0.9.
// Selling: demand high 1.4, demand low 0.7, then supply high 0.8, supply low 1.1.
// The product is rounded half up. Factor order matters for float rounding and
// must not be rearranged.
func Price(basePrice int, supply, demand Level, direction TradeDirection) int {
	if basePrice <= 0 {
		return 0
	}

	multiplier := 1.0
	switch direction {
	case BuyFromMarket:
		multiplier *= buySupplyFactor(supply)
		multiplier *= buyDemandFactor(demand)
	case SellToMarket:
		multiplier *= sellDemandFactor(demand)
		multiplier *= sellSupplyFactor(supply)
	}

	return roundHalfUp(float64(basePrice) * multiplier)
}

// Quote is the pair of prices a market posts for one good
type Quote struct {
	BuyPrice  int `json:"buyPrice"`
	SellPrice int `json:"sellPrice"`
}

// QuoteFor prices both directions at once
func QuoteFor(basePrice int, supply, demand Level) Quote {
	return Quote{
		BuyPrice:  Price(basePrice, supply, demand, BuyFromMarket),
		SellPrice: Price(basePrice, supply, demand, SellToMarket),
	}
}

func buySupplyFactor(supply Level) float64 {
	switch supply {
	case LevelHigh:
		return 0.8
	case LevelLow:
		return 1.3
	}
	return 1.0
}

func buyDemandFactor(demand Level) float64 {
	switch demand {
	case LevelHigh:
		return 1.2
	case LevelLow:
		return 0.9
	}
	return 1.0
}

func sellDemandFactor(demand Level) float64 {
	switch demand {
	case LevelHigh:
		return 1.4
	case LevelLow:
		return 0.7
	}
	return 1.0
}

func sellSupplyFactor(supply Level) float64 {
	switch supply {
	case LevelHigh:
		return 0.8
	case LevelLow:
		return 1.1
	}
	return 1.0
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
