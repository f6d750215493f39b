package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/domain/galaxy"
)

const defaultHaulLimit = 5

// FindHaulsQuery ranks single-good round trips across the universe.
// Credits and CargoCapacity default to the player's current values.
type FindHaulsQuery struct {
	Credits       *int
	CargoCapacity *int
	Limit         int
}

// Haul is one buy-here, sell-there opportunity
type Haul struct {
	GoodID    string `json:"goodId"`
	From      string `json:"from"`
	To        string `json:"to"`
	BuyPrice  int    `json:"buyPrice"`
	SellPrice int    `json:"sellPrice"`
	Margin    int    `json:"margin"`
	FuelCost  int    `json:"fuelCost"`
	Units     int    `json:"units"`

	// Units times margin, less the credits to buy back the fuel burned
	Profit int `json:"profit"`
}

// FindHaulsResponse lists the best hauls first
type FindHaulsResponse struct {
	Hauls []Haul `json:"hauls"`
}

// HaulSource is what haul planning reads from the controller
type HaulSource interface {
	Catalog() *galaxy.Catalog
	RefuelPricePerUnit() int
	GetState() game.StateView
}

// FindHaulsHandler handles FindHaulsQuery
type FindHaulsHandler struct {
	source HaulSource
}

// NewFindHaulsHandler creates a new FindHaulsHandler
func NewFindHaulsHandler(source HaulSource) *FindHaulsHandler {
	return &FindHaulsHandler{source: source}
}

// Handle executes the query
func (h *FindHaulsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*FindHaulsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindHaulsQuery")
	}

	state := h.source.GetState()
	credits := state.Credits
	if query.Credits != nil {
		credits = *query.Credits
	}
	capacity := state.CargoCapacity
	if query.CargoCapacity != nil {
		capacity = *query.CargoCapacity
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultHaulLimit
	}

	hauls, err := FindHauls(h.source.Catalog(), credits, capacity, h.source.RefuelPricePerUnit())
	if err != nil {
		return nil, err
	}
	return &FindHaulsResponse{Hauls: hauls[:min(limit, len(hauls))]}, nil
}

// FindHauls lists every profitable haul, most profitable first
func FindHauls(catalog *galaxy.Catalog, credits, cargoCapacity, refuelPrice int) ([]Haul, error) {
	var hauls []Haul
	for _, from := range catalog.AllLocations() {
		destinations, err := catalog.Destinations(from.ID())
		if err != nil {
			return nil, err
		}
		for _, good := range from.Goods() {
			buy := good.BuyPrice()
			if buy <= 0 {
				continue
			}
			units := min(cargoCapacity, credits/buy)
			for _, to := range destinations {
				there, ok := to.Good(good.ID())
				if !ok {
					continue
				}
				margin := there.SellPrice() - buy
				if margin <= 0 {
					continue
				}
				fuel, err := catalog.FuelCost(from.ID(), to.ID())
				if err != nil {
					return nil, err
				}
				profit := units*margin - fuel*refuelPrice
				if profit <= 0 {
					continue
				}
				hauls = append(hauls, Haul{
					GoodID:    good.ID(),
					From:      from.ID(),
					To:        to.ID(),
					BuyPrice:  buy,
					SellPrice: there.SellPrice(),
					Margin:    margin,
					FuelCost:  fuel,
					Units:     units,
					Profit:    profit,
				})
			}
		}
	}

	sort.SliceStable(hauls, func(i, j int) bool {
		if hauls[i].Profit != hauls[j].Profit {
			return hauls[i].Profit > hauls[j].Profit
		}
		return hauls[i].Margin > hauls[j].Margin
	})
	return hauls, nil
}
