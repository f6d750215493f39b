package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GameMetricsCollector handles credits, trades, travel and rejected commands
type GameMetricsCollector struct {
	// Ship gauges
	creditsBalance *prometheus.GaugeVec
	fuelLevel      *prometheus.GaugeVec
	cargoUnits     *prometheus.GaugeVec

	// Ledger metrics
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	// Trade metrics
	tradesTotal    *prometheus.CounterVec
	tradedUnits    *prometheus.CounterVec
	tradeUnitPrice *prometheus.HistogramVec

	// Travel metrics
	departuresTotal *prometheus.CounterVec
	arrivalsTotal   *prometheus.CounterVec
	fuelBurned      *prometheus.CounterVec

	noOpsTotal *prometheus.CounterVec
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		creditsBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "credits_balance",
				Help:      "Current credits balance per session",
			},
			[]string{"session"},
		),

		fuelLevel: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_level",
				Help:      "Current fuel units per session",
			},
			[]string{"session"},
		),

		cargoUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cargo_units",
				Help:      "Units currently held per session",
			},
			[]string{"session"},
		),

		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of ledger entries by type and category",
			},
			[]string{"session", "type", "category"},
		),

		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Absolute ledger entry amount distribution",
				Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"session", "type", "category"},
		),

		tradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trades_total",
				Help:      "Completed buys and sells by good",
			},
			[]string{"session", "good", "direction"},
		),

		tradedUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "traded_units_total",
				Help:      "Units bought or sold by good",
			},
			[]string{"session", "good", "direction"},
		),

		tradeUnitPrice: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_unit_price",
				Help:      "Unit price paid or received per trade",
				Buckets:   []float64{5, 10, 20, 30, 40, 60, 80, 100},
			},
			[]string{"good", "direction"},
		),

		departuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "departures_total",
				Help:      "Voyages started by route",
			},
			[]string{"session", "origin", "destination"},
		),

		arrivalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "arrivals_total",
				Help:      "Voyages completed by destination",
			},
			[]string{"session", "destination"},
		),

		fuelBurned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_burned_total",
				Help:      "Fuel units spent travelling",
			},
			[]string{"session"},
		),

		noOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "noop_commands_total",
				Help:      "Commands rejected without changing state",
			},
			[]string{"command", "reason"},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.creditsBalance,
		c.fuelLevel,
		c.cargoUnits,
		c.transactionsTotal,
		c.transactionAmount,
		c.tradesTotal,
		c.tradedUnits,
		c.tradeUnitPrice,
		c.departuresTotal,
		c.arrivalsTotal,
		c.fuelBurned,
		c.noOpsTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordTransaction counts a ledger entry and updates the balance gauge
func (c *GameMetricsCollector) RecordTransaction(sessionID string, transactionType string, category string, amount int, creditsBalance int) {
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	c.transactionsTotal.WithLabelValues(sessionID, transactionType, category).Inc()
	c.transactionAmount.WithLabelValues(sessionID, transactionType, category).Observe(float64(abs))
	c.creditsBalance.WithLabelValues(sessionID).Set(float64(creditsBalance))
}

// RecordTrade records one buy or sell
func (c *GameMetricsCollector) RecordTrade(sessionID string, goodID string, direction string, price int, quantity int) {
	c.tradesTotal.WithLabelValues(sessionID, goodID, direction).Inc()
	c.tradedUnits.WithLabelValues(sessionID, goodID, direction).Add(float64(quantity))
	c.tradeUnitPrice.WithLabelValues(goodID, direction).Observe(float64(price))
}

// RecordTravel records a departure and the fuel it burned
func (c *GameMetricsCollector) RecordTravel(sessionID string, origin string, destination string, fuelCost int) {
	c.departuresTotal.WithLabelValues(sessionID, origin, destination).Inc()
	c.fuelBurned.WithLabelValues(sessionID).Add(float64(fuelCost))
}

// RecordArrival records a completed voyage
func (c *GameMetricsCollector) RecordArrival(sessionID string, destination string) {
	c.arrivalsTotal.WithLabelValues(sessionID, destination).Inc()
}

// RecordNoOp records a command that was rejected
func (c *GameMetricsCollector) RecordNoOp(command string, reason string) {
	c.noOpsTotal.WithLabelValues(command, reason).Inc()
}

// RecordShipState sets the ship gauges
func (c *GameMetricsCollector) RecordShipState(sessionID string, credits int, fuel int, cargoUnits int) {
	c.creditsBalance.WithLabelValues(sessionID).Set(float64(credits))
	c.fuelLevel.WithLabelValues(sessionID).Set(float64(fuel))
	c.cargoUnits.WithLabelValues(sessionID).Set(float64(cargoUnits))
}
