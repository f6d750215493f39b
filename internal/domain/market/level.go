package market

import (
	"fmt"
	"strings"
)

// Level is the qualitative supply or demand tag attached to a good at a location.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Levels lists every valid level in ascending order
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

// ParseLevel normalizes and validates a level string
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	if !level.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// IsValid reports whether the level is one of low, medium or high
func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

func (l Level) String() string {
	return string(l)
}
