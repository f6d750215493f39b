package galaxy

import (
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/domain/market"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// Route is a directed travel edge with its fuel cost
type Route struct {
	From     string
	To       string
	FuelCost int
}

// Catalog is the read-only universe: locations, their markets and the travel graph.
// It is built once at startup and never mutated, so it is safe to share.
type Catalog struct {
	locations []*Location
	byID      map[string]*Location
	fuelCosts map[string]map[string]int
}

// NewCatalog validates and indexes the universe. Every ordered pair of distinct
// locations must have a route.
func NewCatalog(locations []*Location, routes []Route) (*Catalog, error) {
	if len(locations) == 0 {
		return nil, shared.NewValidationError("locations", "catalog needs at least one location")
	}

	c := &Catalog{
		locations: make([]*Location, 0, len(locations)),
		byID:      make(map[string]*Location, len(locations)),
		fuelCosts: make(map[string]map[string]int, len(locations)),
	}

	for _, loc := range locations {
		if loc == nil {
			return nil, shared.NewValidationError("locations", "nil location")
		}
		if _, dup := c.byID[loc.ID()]; dup {
			return nil, shared.NewValidationError("locations", fmt.Sprintf("duplicate location %s", loc.ID()))
		}
		c.locations = append(c.locations, loc)
		c.byID[loc.ID()] = loc
		c.fuelCosts[loc.ID()] = make(map[string]int)
	}

	for _, r := range routes {
		if !c.HasLocation(r.From) {
			return nil, shared.NewLookupError("location", r.From)
		}
		if !c.HasLocation(r.To) {
			return nil, shared.NewLookupError("location", r.To)
		}
		if r.From == r.To {
			return nil, shared.NewValidationError("routes", fmt.Sprintf("route %s->%s loops back", r.From, r.To))
		}
		if r.FuelCost <= 0 {
			return nil, shared.NewValidationError("routes", fmt.Sprintf("route %s->%s fuel cost %d must be positive", r.From, r.To, r.FuelCost))
		}
		if _, dup := c.fuelCosts[r.From][r.To]; dup {
			return nil, shared.NewValidationError("routes", fmt.Sprintf("route %s->%s defined twice", r.From, r.To))
		}
		c.fuelCosts[r.From][r.To] = r.FuelCost
	}

	for _, from := range c.locations {
		for _, to := range c.locations {
			if from.ID() == to.ID() {
				continue
			}
			if _, ok := c.fuelCosts[from.ID()][to.ID()]; !ok {
				return nil, shared.NewLookupError("route", routeKey(from.ID(), to.ID()))
			}
		}
	}

	return c, nil
}

// AllLocations returns every location in catalog order
func (c *Catalog) AllLocations() []*Location {
	out := make([]*Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// HasLocation reports whether id names a catalog location
func (c *Catalog) HasLocation(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Location looks up a location by id
func (c *Catalog) Location(id string) (*Location, error) {
	loc, ok := c.byID[id]
	if !ok {
		return nil, shared.NewLookupError("location", id)
	}
	return loc, nil
}

// GoodsAt returns the market listing of a location
func (c *Catalog) GoodsAt(locationID string) ([]*market.TradeGood, error) {
	loc, err := c.Location(locationID)
	if err != nil {
		return nil, err
	}
	return loc.Goods(), nil
}

// Good returns the attributes of one good as listed at one location
func (c *Catalog) Good(locationID, goodID string) (*market.TradeGood, error) {
	loc, err := c.Location(locationID)
	if err != nil {
		return nil, err
	}
	good, ok := loc.Good(goodID)
	if !ok {
		return nil, shared.NewLookupError("good", locationID+"/"+goodID)
	}
	return good, nil
}

// FuelCost returns the fuel burned flying from one location to another
func (c *Catalog) FuelCost(from, to string) (int, error) {
	if !c.HasLocation(from) {
		return 0, shared.NewLookupError("location", from)
	}
	if !c.HasLocation(to) {
		return 0, shared.NewLookupError("location", to)
	}
	cost, ok := c.fuelCosts[from][to]
	if !ok {
		return 0, shared.NewLookupError("route", routeKey(from, to))
	}
	return cost, nil
}

// Destinations lists every location reachable from the given one, in catalog order
func (c *Catalog) Destinations(from string) ([]*Location, error) {
	if !c.HasLocation(from) {
		return nil, shared.NewLookupError("location", from)
	}
	out := make([]*Location, 0, len(c.locations)-1)
	for _, loc := range c.locations {
		if loc.ID() != from {
			out = append(out, loc)
		}
	}
	return out, nil
}

// AsymmetricRoutes returns the routes whose reverse edge has a different cost.
// Each mismatched pair is reported once, from the earlier catalog location.
func (c *Catalog) AsymmetricRoutes() []Route {
	var out []Route
	for i, from := range c.locations {
		for _, to := range c.locations[i+1:] {
			there := c.fuelCosts[from.ID()][to.ID()]
			back := c.fuelCosts[to.ID()][from.ID()]
			if there != back {
				out = append(out, Route{From: from.ID(), To: to.ID(), FuelCost: there})
			}
		}
	}
	return out
}

// IsSymmetric reports whether every route costs the same in both directions
func (c *Catalog) IsSymmetric() bool {
	return len(c.AsymmetricRoutes()) == 0
}

func routeKey(from, to string) string {
	return from + "->" + to
}
