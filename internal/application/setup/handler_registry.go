package setup

import (
	"reflect"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	ledgerCommands "github.com/andrescamacho/stellar-hauler/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/stellar-hauler/internal/application/ledger/queries"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	tradingCommands "github.com/andrescamacho/stellar-hauler/internal/application/trading/commands"
	tradingQueries "github.com/andrescamacho/stellar-hauler/internal/application/trading/queries"
	"github.com/andrescamacho/stellar-hauler/internal/domain/ledger"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	controller      *game.Controller
	transactionRepo ledger.TransactionRepository
	publisher       game.EventPublisher
	scheduler       game.ArrivalScheduler
	clock           shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// publisher and scheduler are optional.
func NewHandlerRegistry(
	controller *game.Controller,
	transactionRepo ledger.TransactionRepository,
	publisher game.EventPublisher,
	scheduler game.ArrivalScheduler,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		controller:      controller,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		scheduler:       scheduler,
		clock:           clock,
	}
}

// RegisterAll registers every handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterLedgerHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterTradingHandlers(m); err != nil {
		return err
	}
	return r.RegisterQueryHandlers(m)
}

// RegisterLedgerHandlers registers all ledger command and query handlers with the mediator
//
// This method registers:
//   - RecordTransactionCommand → RecordTransactionHandler
//   - GetTransactionsQuery → GetTransactionsHandler
//   - GetProfitLossQuery → GetProfitLossHandler
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&ledgerCommands.RecordTransactionCommand{}),
		ledgerCommands.NewRecordTransactionHandler(r.transactionRepo, r.clock),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&ledgerQueries.GetTransactionsQuery{}),
		ledgerQueries.NewGetTransactionsHandler(r.transactionRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&ledgerQueries.GetProfitLossQuery{}),
		ledgerQueries.NewGetProfitLossHandler(r.transactionRepo),
	)
}

// RegisterTradingHandlers registers the four game commands
func (r *HandlerRegistry) RegisterTradingHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*tradingCommands.BuyGoodCommand](m,
		tradingCommands.NewBuyGoodHandler(r.controller, m, r.publisher, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*tradingCommands.SellGoodCommand](m,
		tradingCommands.NewSellGoodHandler(r.controller, m, r.publisher, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*tradingCommands.TravelCommand](m,
		tradingCommands.NewTravelHandler(r.controller, m, r.publisher, r.scheduler, r.clock)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*tradingCommands.RefuelCommand](m,
		tradingCommands.NewRefuelHandler(r.controller, m, r.publisher, r.clock))
}

// RegisterQueryHandlers registers the rendering-layer queries
func (r *HandlerRegistry) RegisterQueryHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*tradingQueries.GetStateQuery](m,
		tradingQueries.NewGetStateHandler(r.controller)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*tradingQueries.GetMarketQuery](m,
		tradingQueries.NewGetMarketHandler(r.controller)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*tradingQueries.GetTravelOptionsQuery](m,
		tradingQueries.NewGetTravelOptionsHandler(r.controller)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*tradingQueries.GetViewQuery](m,
		tradingQueries.NewGetViewHandler(r.controller)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*tradingQueries.FindHaulsQuery](m,
		tradingQueries.NewFindHaulsHandler(r.controller))
}
