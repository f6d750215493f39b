package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
	"github.com/andrescamacho/stellar-hauler/internal/domain/market"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/config"
)

//go:embed universe.yaml
var defaultUniverse []byte

// Document is the YAML layout of a universe file
type Document struct {
	Locations []LocationDoc `yaml:"locations" validate:"required,min=1,dive"`
	Routes    []RouteDoc    `yaml:"routes" validate:"dive"`
}

type LocationDoc struct {
	ID          string    `yaml:"id" validate:"required,location_id"`
	Name        string    `yaml:"name" validate:"required"`
	Description string    `yaml:"description"`
	Goods       []GoodDoc `yaml:"goods" validate:"dive"`
}

type GoodDoc struct {
	ID        string `yaml:"id" validate:"required"`
	BasePrice int    `yaml:"basePrice" validate:"gt=0"`
	Supply    string `yaml:"supply" validate:"required,oneof=low medium high"`
	Demand    string `yaml:"demand" validate:"required,oneof=low medium high"`
}

type RouteDoc struct {
	From     string `yaml:"from" validate:"required,location_id"`
	To       string `yaml:"to" validate:"required,location_id,nefield=From"`
	FuelCost int    `yaml:"fuelCost" validate:"gt=0"`
}

// Warner receives non-fatal findings such as asymmetric routes
type Warner func(message string, metadata map[string]interface{})

// Loader turns universe documents into a galaxy.Catalog
type Loader struct {
	validate *config.Validator
	warn     Warner
}

// NewLoader creates a loader; warn may be nil
func NewLoader(warn Warner) *Loader {
	if warn == nil {
		warn = func(string, map[string]interface{}) {}
	}
	return &Loader{
		validate: config.NewValidator(),
		warn:     warn,
	}
}

// LoadDefault builds the embedded starting universe
func (l *Loader) LoadDefault() (*galaxy.Catalog, error) {
	return l.Parse(defaultUniverse)
}

// Load builds the catalog at path, or the embedded universe when path is empty
func (l *Loader) Load(path string) (*galaxy.Catalog, error) {
	if path == "" {
		return l.LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file %s: %w", path, err)
	}
	catalog, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("universe file %s: %w", path, err)
	}
	return catalog, nil
}

// Parse decodes, validates and indexes a universe document
func (l *Loader) Parse(data []byte) (*galaxy.Catalog, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if err := l.validate.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid universe: %w", err)
	}

	catalog, err := doc.Build()
	if err != nil {
		return nil, err
	}

	for _, r := range catalog.AsymmetricRoutes() {
		back, _ := catalog.FuelCost(r.To, r.From)
		l.warn("Asymmetric route in universe", map[string]interface{}{
			"from":      r.From,
			"to":        r.To,
			"fuel_cost": r.FuelCost,
			"reverse":   back,
		})
	}

	return catalog, nil
}

// Decode parses YAML strictly; unknown keys are rejected
func Decode(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse universe yaml: %w", err)
	}
	return &doc, nil
}

// Build converts the document into domain objects
func (d *Document) Build() (*galaxy.Catalog, error) {
	locations := make([]*galaxy.Location, 0, len(d.Locations))
	for _, ld := range d.Locations {
		goods := make([]*market.TradeGood, 0, len(ld.Goods))
		for _, gd := range ld.Goods {
			good, err := gd.toDomain()
			if err != nil {
				return nil, fmt.Errorf("location %s: %w", ld.ID, err)
			}
			goods = append(goods, good)
		}

		loc, err := galaxy.NewLocation(ld.ID, ld.Name, ld.Description, goods)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	routes := make([]galaxy.Route, 0, len(d.Routes))
	for _, rd := range d.Routes {
		routes = append(routes, galaxy.Route{From: rd.From, To: rd.To, FuelCost: rd.FuelCost})
	}

	return galaxy.NewCatalog(locations, routes)
}

func (g GoodDoc) toDomain() (*market.TradeGood, error) {
	supply, err := market.ParseLevel(g.Supply)
	if err != nil {
		return nil, err
	}
	demand, err := market.ParseLevel(g.Demand)
	if err != nil {
		return nil, err
	}
	return market.NewTradeGood(g.ID, g.BasePrice, supply, demand)
}

// Encode renders a catalog back to YAML
func Encode(c *galaxy.Catalog) ([]byte, error) {
	doc := Document{}
	for _, loc := range c.AllLocations() {
		ld := LocationDoc{ID: loc.ID(), Name: loc.Name(), Description: loc.Description()}
		for _, g := range loc.Goods() {
			ld.Goods = append(ld.Goods, GoodDoc{
				ID:        g.ID(),
				BasePrice: g.BasePrice(),
				Supply:    g.Supply().String(),
				Demand:    g.Demand().String(),
			})
		}
		doc.Locations = append(doc.Locations, ld)
	}
	for _, from := range c.AllLocations() {
		dests, err := c.Destinations(from.ID())
		if err != nil {
			return nil, err
		}
		for _, to := range dests {
			cost, err := c.FuelCost(from.ID(), to.ID())
			if err != nil {
				return nil, err
			}
			doc.Routes = append(doc.Routes, RouteDoc{From: from.ID(), To: to.ID(), FuelCost: cost})
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode universe: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
