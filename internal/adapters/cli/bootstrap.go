package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/adapters/persistence"
	"github.com/andrescamacho/stellar-hauler/internal/adapters/scheduler"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/logging"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/application/setup"
	tradingCommands "github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
	"github.com/andrescamacho/stellar-hauler/internal/domain/player"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/catalog"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/config"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/database"
	infraLogging "github.com/andrescamacho/stellar-hauler/internal/infrastructure/logging"
	"github.com/andrescamacho/stellar-hauler/pkg/utils"
)

// App is a fully wired game session
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	GameLogger logging.GameLogger
	Controller *game.Controller
	Mediator   mediator.Mediator
	Events     *game.EventBus
	SessionID  string

	db        *gorm.DB
	scheduler *scheduler.ArrivalScheduler
	logCloser io.Closer
}

// BootstrapOptions tweaks wiring; the zero value is production
type BootstrapOptions struct {
	Clock shared.Clock

	// Progress receives the numbered startup steps; nil keeps quiet
	Progress io.Writer
}

// Bootstrap wires config, storage, the controller and the mediator into a playable session
func Bootstrap(ctx context.Context, cfg *config.Config, opts BootstrapOptions) (*App, error) {
	clock := opts.Clock
	if clock == nil {
		clock = shared.NewRealClock()
	}
	step := func(format string, args ...interface{}) {
		if opts.Progress != nil {
			fmt.Fprintf(opts.Progress, format+"\n", args...)
		}
	}

	app := &App{Config: cfg}

	// 1. Logging
	step("1. Configuring logging (%s, %s)...", cfg.Logging.Level, cfg.Logging.Format)
	logger, closer, err := infraLogging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	app.Logger = logger
	app.logCloser = closer
	app.GameLogger = infraLogging.NewGameLogger(logger)
	step("   ✓ Logging to %s", cfg.Logging.Output)

	// 2. Universe
	step("2. Loading universe...")
	universe, err := loadCatalog(cfg.Game.CatalogPath, app.GameLogger)
	if err != nil {
		app.Close()
		return nil, err
	}
	step("   ✓ %d locations", len(universe.AllLocations()))

	// 3. Ledger database
	step("3. Opening ledger database (%s)...", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db
	if err := database.AutoMigrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	transactionRepo, err := persistence.NewGormTransactionRepository(db)
	if err != nil {
		app.Close()
		return nil, err
	}
	sessionRepo := persistence.NewGormSessionRepository(db)
	step("   ✓ Ledger ready")

	// 4. Controller and session record
	step("4. Starting session...")
	settings := SettingsFromConfig(cfg.Game)
	sessionID := utils.GenerateSessionID(settings.Ship.Name)
	controller, err := game.NewController(universe, settings, game.WithClock(clock), game.WithSessionID(sessionID))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	session, err := player.NewSession(sessionID, settings.Ship.Name, settings.Initial, clock.Now())
	if err != nil {
		app.Close()
		return nil, err
	}
	if err := sessionRepo.Add(ctx, session); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to record session: %w", err)
	}
	app.Controller = controller
	app.SessionID = sessionID
	step("   ✓ Session %s at %s", sessionID, settings.Initial.Location)

	// 5. Events and arrival scheduling
	step("5. Scheduling arrivals...")
	app.Events = game.NewEventBus(64)
	app.scheduler = scheduler.NewArrivalScheduler(controller, clock, app.Events, app.GameLogger)

	// 6. Metrics
	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		step("6. Registering metrics...")
		metrics.InitRegistry()
		gameMetrics := metrics.NewGameMetricsCollector()
		if err := gameMetrics.Register(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register game metrics: %w", err)
		}
		metrics.SetGlobalGameCollector(gameMetrics)
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		step("   ✓ Exposed at %s", cfg.Metrics.Path)
	}

	// 7. Mediator
	step("7. Registering handlers...")
	m := mediator.NewMediator()
	m.Use(withGameLogger(app.GameLogger))
	m.Use(mediator.LoggingMiddleware())
	if commandMetrics != nil {
		m.Use(metrics.PrometheusMiddleware(commandMetrics))
	}
	m.Use(sessionActivity(sessionRepo, sessionID, clock))

	registry := setup.NewHandlerRegistry(controller, transactionRepo, app.Events, app.scheduler, clock)
	if err := registry.RegisterAll(m); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	app.Mediator = m
	step("✓ Ready")

	return app, nil
}

// Close stops pending arrivals and releases the database and log file
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil && a.Logger != nil {
			a.Logger.Warn("failed to close database", "error", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// SettingsFromConfig maps the game section onto controller settings
func SettingsFromConfig(cfg config.GameConfig) game.Settings {
	return game.Settings{
		Initial: player.InitialState{
			Credits:       cfg.StartingCredits,
			Fuel:          cfg.StartingFuel,
			MaxFuel:       cfg.MaxFuel,
			CargoCapacity: cfg.CargoCapacity,
			Location:      cfg.StartingLocation,
		},
		RefuelPricePerUnit: cfg.RefuelPricePerUnit,
		TravelDuration:     cfg.TravelDuration,
		Ship: game.ShipProfile{
			Name:           cfg.Ship.Name,
			Speed:          cfg.Ship.Speed,
			FuelEfficiency: cfg.Ship.FuelEfficiency,
		},
	}
}

func loadCatalog(path string, logger logging.GameLogger) (*galaxy.Catalog, error) {
	loader := catalog.NewLoader(func(message string, metadata map[string]interface{}) {
		logger.Log("WARNING", message, metadata)
	})
	if path == "" {
		return loader.LoadDefault()
	}
	universe, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load universe from %s: %w", path, err)
	}
	return universe, nil
}

// withGameLogger puts the session logger on every request context
func withGameLogger(logger logging.GameLogger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return next(logging.WithLogger(ctx, logger), request)
	}
}

// sessionActivity stamps the session's last activity after each player command
func sessionActivity(repo player.SessionRepository, sessionID string, clock shared.Clock) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		if err != nil || !isPlayerCommand(request) {
			return response, err
		}
		if touchErr := repo.Touch(ctx, sessionID, clock.Now()); touchErr != nil {
			logging.LoggerFromContext(ctx).Log("WARNING", "Failed to record session activity", map[string]interface{}{
				"session_id": sessionID,
				"error":      touchErr.Error(),
			})
		}
		return response, nil
	}
}

func isPlayerCommand(request mediator.Request) bool {
	switch request.(type) {
	case *tradingCommands.BuyGoodCommand, *tradingCommands.SellGoodCommand,
		*tradingCommands.TravelCommand, *tradingCommands.RefuelCommand:
		return true
	}
	return false
}
