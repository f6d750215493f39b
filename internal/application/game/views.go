package game

import (
	"github.com/andrescamacho/stellar-hauler/internal/domain/navigation"
	"github.com/andrescamacho/stellar-hauler/internal/domain/player"
)

// ShipProfile describes the player's ship
type ShipProfile struct {
	Name           string `json:"name"`
	Speed          int    `json:"speed"`
	FuelEfficiency int    `json:"fuelEfficiency"`
}

// StateView is the player state as seen by rendering layers
type StateView struct {
	player.Snapshot
	NavStatus navigation.NavStatus `json:"navStatus"`
	DockedAt  string               `json:"dockedAt"`
	Voyage    *navigation.Voyage   `json:"voyage,omitempty"`
	Ship      ShipProfile          `json:"ship"`
	SessionID string               `json:"sessionId"`
}

// MarketEntry is one row of a market listing
type MarketEntry struct {
	GoodID         string `json:"goodId"`
	BasePrice      int    `json:"basePrice"`
	Supply         string `json:"supply"`
	Demand         string `json:"demand"`
	BuyPrice       int    `json:"buyPrice"`
	SellPrice      int    `json:"sellPrice"`
	PlayerQuantity int    `json:"playerQuantity"`
	CanBuy         bool   `json:"canBuy"`
	CanSell        bool   `json:"canSell"`
}

// TravelOption is one reachable destination
type TravelOption struct {
	DestinationID  string `json:"destinationId"`
	Name           string `json:"name"`
	FuelCost       int    `json:"fuelCost"`
	AffordableFuel bool   `json:"affordableFuel"`
}

// RefuelOption describes the station's refuel offer
type RefuelOption struct {
	Cost       int  `json:"cost"`
	Affordable bool `json:"affordable"`
	Available  bool `json:"available"`
}

// TravelOptions lists the destinations and the refuel offer at a location
type TravelOptions struct {
	From    string         `json:"from"`
	Options []TravelOption `json:"options"`
	Refuel  RefuelOption   `json:"refuel"`
}

// LocationView is the display data of a location
type LocationView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// View is everything a rendering layer needs for one frame. While traveling the
// Location, Market and Travel parts are the ones captured just before departure.
type View struct {
	State    StateView     `json:"state"`
	Location LocationView  `json:"location"`
	Market   []MarketEntry `json:"market"`
	Travel   TravelOptions `json:"travel"`
	Stale    bool          `json:"stale"`
}
