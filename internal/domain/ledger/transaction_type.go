package ledger

import "fmt"

// TransactionType names what moved the credits. The values are stored as-is.
type TransactionType string

const (
	TransactionTypePurchaseCargo TransactionType = "PURCHASE_CARGO"
	TransactionTypeSellCargo     TransactionType = "SELL_CARGO"
	TransactionTypeRefuel        TransactionType = "REFUEL"
)

// Category groups transaction types into profit/loss lines
type Category string

const (
	CategoryTradingRevenue Category = "TRADING_REVENUE"
	CategoryTradingCosts   Category = "TRADING_COSTS"
	CategoryFuelCosts      Category = "FUEL_COSTS"
)

// ParseTransactionType accepts only the three stored values
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if _, err := t.ToCategory(); err != nil {
		return "", err
	}
	return t, nil
}

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	_, err := t.ToCategory()
	return err == nil
}

// IsIncome: only selling cargo credits the player
func (t TransactionType) IsIncome() bool {
	return t == TransactionTypeSellCargo
}

// IsTrade is true for the types that must carry a good id
func (t TransactionType) IsTrade() bool {
	return t == TransactionTypePurchaseCargo || t == TransactionTypeSellCargo
}

func (t TransactionType) ToCategory() (Category, error) {
	switch t {
	case TransactionTypePurchaseCargo:
		return CategoryTradingCosts, nil
	case TransactionTypeSellCargo:
		return CategoryTradingRevenue, nil
	case TransactionTypeRefuel:
		return CategoryFuelCosts, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", string(t))
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryTradingRevenue, CategoryTradingCosts, CategoryFuelCosts:
		return true
	}
	return false
}
