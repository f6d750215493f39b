package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/application/logging"
	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
	"github.com/andrescamacho/stellar-hauler/internal/domain/player"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
	"github.com/andrescamacho/stellar-hauler/pkg/utils"
)

// Controller owns one player's session and applies the four game commands to it.
//
// Every command and query takes the controller mutex, so HTTP handlers, the
// websocket hub and the arrival timer can share one instance. Arrival is
// settled lazily against the clock at the start of each call.
type Controller struct {
	mu sync.Mutex

	catalog     *galaxy.Catalog
	state       *player.State
	nav         *navigation.NavState
	clock       shared.Clock
	refuelPrice int
	ship        ShipProfile
	sessionID   string

	// frame captured at departure, served until arrival
	frozen *frame
}

type frame struct {
	location LocationView
	market   []MarketEntry
	travel   TravelOptions
}

// NewController starts a session docked at the configured starting location
func NewController(catalog *galaxy.Catalog, settings Settings, opts ...Option) (*Controller, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if !catalog.HasLocation(settings.Initial.Location) {
		return nil, shared.NewLookupError("location", settings.Initial.Location)
	}
	if settings.RefuelPricePerUnit < 0 {
		return nil, shared.NewValidationError("refuel_price_per_unit", "cannot be negative")
	}

	state, err := player.NewState(settings.Initial)
	if err != nil {
		return nil, fmt.Errorf("failed to create player state: %w", err)
	}

	c := &Controller{
		catalog:     catalog,
		state:       state,
		clock:       shared.NewRealClock(),
		refuelPrice: settings.RefuelPricePerUnit,
		ship:        settings.Ship,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = utils.GenerateSessionID(settings.Ship.Name)
	}

	nav, err := navigation.NewNavState(settings.Initial.Location, c.clock, settings.TravelDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create nav state: %w", err)
	}
	c.nav = nav

	return c, nil
}

// SessionID identifies this game session
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Catalog returns the read-only universe the session plays in
func (c *Controller) Catalog() *galaxy.Catalog {
	return c.catalog
}

// TravelDuration is how long a jump keeps the player traveling
func (c *Controller) TravelDuration() time.Duration {
	return c.nav.TravelDuration()
}

// RefuelPricePerUnit is the credit cost of one fuel unit
func (c *Controller) RefuelPricePerUnit() int {
	return c.refuelPrice
}

// Settle docks the player if the current voyage has arrived.
// Returns the completed voyage, or nil when nothing changed.
func (c *Controller) Settle() *navigation.Voyage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settleLocked()
}

func (c *Controller) settleLocked() *navigation.Voyage {
	done := c.nav.Settle()
	if done != nil {
		c.frozen = nil
	}
	return done
}

// Buy purchases one unit of a good at the current location
func (c *Controller) Buy(ctx context.Context, goodID string) (*TradeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()

	location := c.state.CurrentLocation()
	result := &TradeResult{
		Location:      location,
		GoodID:        goodID,
		Quantity:      1,
		CreditsBefore: c.state.Credits(),
	}

	if err := c.nav.EnsureDocked(); err != nil {
		return c.tradeNoOp(ctx, "buy", result, err), nil
	}

	good, err := c.catalog.Good(location, goodID)
	if err != nil {
		return nil, err
	}
	result.Price = good.BuyPrice()

	if !c.state.CanAfford(result.Price) {
		return c.tradeNoOp(ctx, "buy", result, shared.NewInsufficientFundsError(result.Price, c.state.Credits())), nil
	}
	if !c.state.HasCargoSpace() {
		return c.tradeNoOp(ctx, "buy", result, shared.NewCargoFullError(1, 0)), nil
	}

	if err := c.state.RemoveCredits(result.Price); err != nil {
		return c.tradeNoOp(ctx, "buy", result, err), nil
	}
	if err := c.state.AddCargo(goodID, 1); err != nil {
		// refund; preconditions were checked so this only guards the invariant
		_ = c.state.AddCredits(result.Price)
		return c.tradeNoOp(ctx, "buy", result, err), nil
	}

	result.CommandResult = success()
	result.CreditsAfter = c.state.Credits()
	result.CargoQuantity = c.state.CargoQuantity(goodID)

	logging.LoggerFromContext(ctx).Log("INFO", "Bought cargo", map[string]interface{}{
		"session":  c.sessionID,
		"location": location,
		"good":     goodID,
		"price":    result.Price,
		"credits":  result.CreditsAfter,
	})
	return result, nil
}

// Sell sells one unit of a good at the current location
func (c *Controller) Sell(ctx context.Context, goodID string) (*TradeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()

	location := c.state.CurrentLocation()
	result := &TradeResult{
		Location:      location,
		GoodID:        goodID,
		Quantity:      1,
		CreditsBefore: c.state.Credits(),
		CargoQuantity: c.state.CargoQuantity(goodID),
	}

	if err := c.nav.EnsureDocked(); err != nil {
		return c.tradeNoOp(ctx, "sell", result, err), nil
	}

	good, err := c.catalog.Good(location, goodID)
	if err != nil {
		return nil, err
	}
	result.Price = good.SellPrice()

	held := c.state.CargoQuantity(goodID)
	if held <= 0 {
		return c.tradeNoOp(ctx, "sell", result, shared.NewInsufficientCargoError(goodID, 1, held)), nil
	}

	if err := c.state.RemoveCargo(goodID, 1); err != nil {
		return c.tradeNoOp(ctx, "sell", result, err), nil
	}
	if err := c.state.AddCredits(result.Price); err != nil {
		_ = c.state.AddCargo(goodID, 1)
		return c.tradeNoOp(ctx, "sell", result, err), nil
	}

	result.CommandResult = success()
	result.CreditsAfter = c.state.Credits()
	result.CargoQuantity = c.state.CargoQuantity(goodID)

	logging.LoggerFromContext(ctx).Log("INFO", "Sold cargo", map[string]interface{}{
		"session":  c.sessionID,
		"location": location,
		"good":     goodID,
		"price":    result.Price,
		"credits":  result.CreditsAfter,
	})
	return result, nil
}

func (c *Controller) tradeNoOp(ctx context.Context, action string, result *TradeResult, reason error) *TradeResult {
	result.CommandResult = noOp(reason)
	result.CreditsAfter = c.state.Credits()
	logging.LoggerFromContext(ctx).Log("DEBUG", "Trade skipped", map[string]interface{}{
		"session": c.sessionID,
		"action":  action,
		"good":    result.GoodID,
		"reason":  reason.Error(),
	})
	return result
}

// TravelTo jumps to another location. Fuel and location change immediately;
// the displayed market and routes stay on the origin until arrival.
func (c *Controller) TravelTo(ctx context.Context, destination string) (*TravelResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()

	result := &TravelResult{
		Origin:      c.nav.DockedAt(),
		Destination: destination,
		FuelBefore:  c.state.Fuel(),
	}

	if err := c.nav.EnsureDocked(); err != nil {
		return c.travelNoOp(ctx, result, err), nil
	}
	if !c.catalog.HasLocation(destination) {
		return nil, shared.NewLookupError("location", destination)
	}
	if destination == result.Origin {
		return c.travelNoOp(ctx, result, shared.NewValidationError("destination", fmt.Sprintf("already docked at %s", destination))), nil
	}

	cost, err := c.catalog.FuelCost(result.Origin, destination)
	if err != nil {
		return nil, err
	}
	result.FuelCost = cost

	if !c.state.HasFuelFor(cost) {
		return c.travelNoOp(ctx, result, shared.NewInsufficientFuelError(cost, c.state.Fuel())), nil
	}

	// capture what the origin looked like before anything moves
	pre, err := c.frameLocked(result.Origin)
	if err != nil {
		return nil, err
	}

	voyage, err := c.nav.Depart(destination, cost)
	if err != nil {
		return c.travelNoOp(ctx, result, err), nil
	}
	if err := c.state.SetFuel(c.state.Fuel() - cost); err != nil {
		return nil, fmt.Errorf("fuel invariant broken after precondition check: %w", err)
	}
	if err := c.state.SetLocation(destination); err != nil {
		return nil, err
	}
	c.frozen = pre

	result.CommandResult = success()
	result.FuelRemaining = c.state.Fuel()
	result.ArrivesAt = voyage.ArrivesAt

	logging.LoggerFromContext(ctx).Log("INFO", "Departed", map[string]interface{}{
		"session":     c.sessionID,
		"origin":      result.Origin,
		"destination": destination,
		"fuel_cost":   cost,
		"fuel":        result.FuelRemaining,
		"arrives_at":  voyage.ArrivesAt.Format(time.RFC3339Nano),
	})

	// a zero travel duration has already arrived
	c.settleLocked()

	return result, nil
}

func (c *Controller) travelNoOp(ctx context.Context, result *TravelResult, reason error) *TravelResult {
	result.CommandResult = noOp(reason)
	result.FuelRemaining = c.state.Fuel()
	logging.LoggerFromContext(ctx).Log("DEBUG", "Travel skipped", map[string]interface{}{
		"session":     c.sessionID,
		"destination": result.Destination,
		"reason":      reason.Error(),
	})
	return result
}

// Refuel fills the tank at the fixed per-unit price
func (c *Controller) Refuel(ctx context.Context) (*RefuelResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()

	missing := c.state.FuelMissing()
	result := &RefuelResult{
		Location:      c.state.CurrentLocation(),
		Cost:          missing * c.refuelPrice,
		CreditsBefore: c.state.Credits(),
	}

	if err := c.nav.EnsureDocked(); err != nil {
		return c.refuelNoOp(ctx, result, err), nil
	}
	if missing == 0 {
		return c.refuelNoOp(ctx, result, shared.NewValidationError("fuel", "tank is already full")), nil
	}
	if !c.state.CanAfford(result.Cost) {
		return c.refuelNoOp(ctx, result, shared.NewInsufficientFundsError(result.Cost, c.state.Credits())), nil
	}

	if err := c.state.RemoveCredits(result.Cost); err != nil {
		return c.refuelNoOp(ctx, result, err), nil
	}
	if err := c.state.SetFuel(c.state.MaxFuel()); err != nil {
		_ = c.state.AddCredits(result.Cost)
		return c.refuelNoOp(ctx, result, err), nil
	}

	result.CommandResult = success()
	result.FuelAdded = missing
	result.CreditsAfter = c.state.Credits()

	logging.LoggerFromContext(ctx).Log("INFO", "Refueled", map[string]interface{}{
		"session":    c.sessionID,
		"location":   result.Location,
		"fuel_added": missing,
		"cost":       result.Cost,
		"credits":    result.CreditsAfter,
	})
	return result, nil
}

func (c *Controller) refuelNoOp(ctx context.Context, result *RefuelResult, reason error) *RefuelResult {
	result.CommandResult = noOp(reason)
	result.CreditsAfter = c.state.Credits()
	logging.LoggerFromContext(ctx).Log("DEBUG", "Refuel skipped", map[string]interface{}{
		"session": c.sessionID,
		"reason":  reason.Error(),
	})
	return result
}

// GetState returns the live player state
func (c *Controller) GetState() StateView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()
	return c.stateLocked()
}

func (c *Controller) stateLocked() StateView {
	return StateView{
		Snapshot:  c.state.Snapshot(),
		NavStatus: c.nav.Status(),
		DockedAt:  c.nav.DockedAt(),
		Voyage:    c.nav.Voyage(),
		Ship:      c.ship,
		SessionID: c.sessionID,
	}
}

// GetMarketView prices every good listed at a location against the live state.
// Buy and sell flags are only set for the location the player is docked at.
func (c *Controller) GetMarketView(locationID string) ([]MarketEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()
	return c.marketLocked(locationID)
}

func (c *Controller) marketLocked(locationID string) ([]MarketEntry, error) {
	goods, err := c.catalog.GoodsAt(locationID)
	if err != nil {
		return nil, err
	}

	here := c.nav.IsDocked() && c.state.CurrentLocation() == locationID
	entries := make([]MarketEntry, 0, len(goods))
	for _, good := range goods {
		buy := good.BuyPrice()
		held := c.state.CargoQuantity(good.ID())
		entries = append(entries, MarketEntry{
			GoodID:         good.ID(),
			BasePrice:      good.BasePrice(),
			Supply:         good.Supply().String(),
			Demand:         good.Demand().String(),
			BuyPrice:       buy,
			SellPrice:      good.SellPrice(),
			PlayerQuantity: held,
			CanBuy:         here && c.state.CanAfford(buy) && c.state.HasCargoSpace(),
			CanSell:        here && held > 0,
		})
	}
	return entries, nil
}

// GetTravelOptions lists destinations from a location and the refuel offer
func (c *Controller) GetTravelOptions(fromID string) (*TravelOptions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()
	return c.travelLocked(fromID)
}

func (c *Controller) travelLocked(fromID string) (*TravelOptions, error) {
	destinations, err := c.catalog.Destinations(fromID)
	if err != nil {
		return nil, err
	}

	options := make([]TravelOption, 0, len(destinations))
	for _, dest := range destinations {
		cost, err := c.catalog.FuelCost(fromID, dest.ID())
		if err != nil {
			return nil, err
		}
		options = append(options, TravelOption{
			DestinationID:  dest.ID(),
			Name:           dest.Name(),
			FuelCost:       cost,
			AffordableFuel: c.state.HasFuelFor(cost),
		})
	}

	refuelCost := c.state.FuelMissing() * c.refuelPrice
	return &TravelOptions{
		From:    fromID,
		Options: options,
		Refuel: RefuelOption{
			Cost:       refuelCost,
			Affordable: c.state.CanAfford(refuelCost),
			Available:  c.state.FuelMissing() > 0,
		},
	}, nil
}

func (c *Controller) frameLocked(locationID string) (*frame, error) {
	loc, err := c.catalog.Location(locationID)
	if err != nil {
		return nil, err
	}
	market, err := c.marketLocked(locationID)
	if err != nil {
		return nil, err
	}
	travel, err := c.travelLocked(locationID)
	if err != nil {
		return nil, err
	}
	return &frame{
		location: LocationView{ID: loc.ID(), Name: loc.Name(), Description: loc.Description()},
		market:   market,
		travel:   *travel,
	}, nil
}

// CurrentView returns the displayable frame. While traveling it serves the
// market and routes captured at departure; after arrival it is live again.
func (c *Controller) CurrentView() (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()

	view := &View{State: c.stateLocked()}

	if !c.nav.IsDocked() && c.frozen != nil {
		view.Location = c.frozen.location
		view.Market = append([]MarketEntry(nil), c.frozen.market...)
		view.Travel = c.frozen.travel
		view.Travel.Options = append([]TravelOption(nil), c.frozen.travel.Options...)
		view.Stale = true
		// nothing on a captured frame is actionable until arrival
		for i := range view.Market {
			view.Market[i].CanBuy = false
			view.Market[i].CanSell = false
		}
		for i := range view.Travel.Options {
			view.Travel.Options[i].AffordableFuel = false
		}
		view.Travel.Refuel.Affordable = false
		return view, nil
	}

	live, err := c.frameLocked(c.nav.DockedAt())
	if err != nil {
		return nil, err
	}
	view.Location = live.location
	view.Market = live.market
	view.Travel = live.travel
	return view, nil
}
