package shared

import "fmt"

// Fuel represents an immutable fuel state
type Fuel struct {
	Current  int
	Capacity int
}

// NewFuel creates a new fuel value object with validation
func NewFuel(current, capacity int) (*Fuel, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("fuel capacity must be positive")
	}
	if current < 0 || current > capacity {
		return nil, NewInvalidFuelError(current, capacity)
	}

	return &Fuel{
		Current:  current,
		Capacity: capacity,
	}, nil
}

// Percentage returns fuel as percentage of capacity
func (f *Fuel) Percentage() float64 {
	if f.Capacity == 0 {
		return 0.0
	}
	return float64(f.Current) / float64(f.Capacity) * 100.0
}

// Consume returns new Fuel with amount burned. Unlike the tank gauge, a burn
// never clamps: asking for more than is in the tank is an error.
func (f *Fuel) Consume(amount int) (*Fuel, error) {
	if amount < 0 {
		return nil, fmt.Errorf("fuel amount cannot be negative")
	}
	if amount > f.Current {
		return nil, NewInsufficientFuelError(amount, f.Current)
	}
	return &Fuel{
		Current:  f.Current - amount,
		Capacity: f.Capacity,
	}, nil
}

// WithLevel returns new Fuel at exactly the given level
func (f *Fuel) WithLevel(level int) (*Fuel, error) {
	return NewFuel(level, f.Capacity)
}

// Clamp returns new Fuel at the given level bounded to [0, Capacity]
func (f *Fuel) Clamp(level int) *Fuel {
	if level < 0 {
		level = 0
	}
	if level > f.Capacity {
		level = f.Capacity
	}
	return &Fuel{Current: level, Capacity: f.Capacity}
}

// Missing returns the units needed to fill the tank
func (f *Fuel) Missing() int {
	return f.Capacity - f.Current
}

// CanTravel checks if the tank holds at least the required units
func (f *Fuel) CanTravel(required int) bool {
	return f.Current >= required
}

// IsFull checks if fuel is at capacity
func (f *Fuel) IsFull() bool {
	return f.Current == f.Capacity
}

func (f *Fuel) String() string {
	return fmt.Sprintf("Fuel(%d/%d)", f.Current, f.Capacity)
}
