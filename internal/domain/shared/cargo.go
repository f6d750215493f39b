package shared

import (
	"fmt"
	"sort"
)

// Cargo represents the ship's hold: units per good symbol, bounded by capacity.
// Goods with zero units are never stored.
type Cargo struct {
	capacity int
	units    int
	items    map[string]int
}

// NewCargo creates an empty cargo hold with validation
func NewCargo(capacity int) (*Cargo, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cargo capacity must be positive")
	}

	return &Cargo{
		capacity: capacity,
		items:    make(map[string]int),
	}, nil
}

// Capacity returns the maximum number of units the hold accepts
func (c *Cargo) Capacity() int {
	return c.capacity
}

// Units returns the total units currently held
func (c *Cargo) Units() int {
	return c.units
}

// GetItemUnits gets units of specific good in cargo (0 if not present)
func (c *Cargo) GetItemUnits(symbol string) int {
	return c.items[symbol]
}

// HasItem checks if cargo contains at least minUnits of specific item
func (c *Cargo) HasItem(symbol string, minUnits int) bool {
	return c.GetItemUnits(symbol) >= minUnits
}

// Add loads units of a good
func (c *Cargo) Add(symbol string, units int) error {
	if symbol == "" {
		return fmt.Errorf("cargo symbol cannot be empty")
	}
	if units <= 0 {
		return fmt.Errorf("cargo units must be positive")
	}
	if c.units+units > c.capacity {
		return NewCargoFullError(units, c.AvailableCapacity())
	}

	c.items[symbol] += units
	c.units += units
	return nil
}

// Remove unloads units of a good, dropping the entry when it reaches zero
func (c *Cargo) Remove(symbol string, units int) error {
	if units <= 0 {
		return fmt.Errorf("cargo units must be positive")
	}
	held := c.items[symbol]
	if units > held {
		return NewInsufficientCargoError(symbol, units, held)
	}

	if held == units {
		delete(c.items, symbol)
	} else {
		c.items[symbol] = held - units
	}
	c.units -= units
	return nil
}

// Snapshot returns a copy of the manifest
func (c *Cargo) Snapshot() map[string]int {
	out := make(map[string]int, len(c.items))
	for symbol, units := range c.items {
		out[symbol] = units
	}
	return out
}

// Symbols returns the held goods in lexical order
func (c *Cargo) Symbols() []string {
	symbols := make([]string, 0, len(c.items))
	for symbol := range c.items {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// AvailableCapacity calculates available cargo space
func (c *Cargo) AvailableCapacity() int {
	return c.capacity - c.units
}

// IsEmpty checks if cargo hold is empty
func (c *Cargo) IsEmpty() bool {
	return c.units == 0
}

// IsFull checks if cargo hold is full
func (c *Cargo) IsFull() bool {
	return c.units >= c.capacity
}

func (c *Cargo) String() string {
	return fmt.Sprintf("Cargo(%d/%d)", c.units, c.capacity)
}
