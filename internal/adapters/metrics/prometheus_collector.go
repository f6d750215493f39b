package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "stellar_hauler"
	// Subsystem for game metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGameCollector is the singleton game metrics collector
	// Set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameMetricsRecorder
)

// GameMetricsRecorder defines the interface for recording game events.
// Application handlers record through the package-level functions below.
type GameMetricsRecorder interface {
	RecordTransaction(sessionID string, transactionType string, category string, amount int, creditsBalance int)
	RecordTrade(sessionID string, goodID string, direction string, price int, quantity int)
	RecordTravel(sessionID string, origin string, destination string, fuelCost int)
	RecordArrival(sessionID string, destination string)
	RecordNoOp(command string, reason string)
	RecordShipState(sessionID string, credits int, fuel int, cargoUnits int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and the global collector
func Reset() {
	Registry = nil
	globalGameCollector = nil
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameMetricsRecorder) {
	globalGameCollector = collector
}

// RecordTransaction records a ledger entry globally
func RecordTransaction(sessionID string, transactionType string, category string, amount int, creditsBalance int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordTransaction(sessionID, transactionType, category, amount, creditsBalance)
	}
}

// RecordTrade records a completed buy or sell globally
func RecordTrade(sessionID string, goodID string, direction string, price int, quantity int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordTrade(sessionID, goodID, direction, price, quantity)
	}
}

// RecordTravel records a departure globally
func RecordTravel(sessionID string, origin string, destination string, fuelCost int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordTravel(sessionID, origin, destination, fuelCost)
	}
}

// RecordArrival records a completed voyage globally
func RecordArrival(sessionID string, destination string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordArrival(sessionID, destination)
	}
}

// RecordNoOp records a rejected command globally
func RecordNoOp(command string, reason string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordNoOp(command, reason)
	}
}

// RecordShipState publishes the current ship gauges globally
func RecordShipState(sessionID string, credits int, fuel int, cargoUnits int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordShipState(sessionID, credits, fuel, cargoUnits)
	}
}
