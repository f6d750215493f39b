package galaxy

import (
	"fmt"

	"github.com/andrescamacho/stellar-hauler/internal/domain/market"
	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// Location is a dockable place with its own market listing.
type Location struct {
	id          string
	name        string
	description string
	goods       []*market.TradeGood
	goodsByID   map[string]*market.TradeGood
}

// NewLocation creates a location; goods keep the order they are given in
func NewLocation(id, name, description string, goods []*market.TradeGood) (*Location, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "location id cannot be empty")
	}
	if name == "" {
		name = id
	}

	byID := make(map[string]*market.TradeGood, len(goods))
	for _, good := range goods {
		if good == nil {
			return nil, shared.NewValidationError("goods", fmt.Sprintf("location %s lists a nil good", id))
		}
		if _, dup := byID[good.ID()]; dup {
			return nil, shared.NewValidationError("goods", fmt.Sprintf("location %s lists %s twice", id, good.ID()))
		}
		byID[good.ID()] = good
	}

	listed := make([]*market.TradeGood, len(goods))
	copy(listed, goods)

	return &Location{
		id:          id,
		name:        name,
		description: description,
		goods:       listed,
		goodsByID:   byID,
	}, nil
}

func (l *Location) ID() string { return l.id }
func (l *Location) Name() string { return l.name }
func (l *Location) Description() string { return l.description }

// Goods returns the market listing in catalog order
func (l *Location) Goods() []*market.TradeGood {
	out := make([]*market.TradeGood, len(l.goods))
	copy(out, l.goods)
	return out
}

// Good finds a listed good by id
func (l *Location) Good(goodID string) (*market.TradeGood, bool) {
	good, ok := l.goodsByID[goodID]
	return good, ok
}

func (l *Location) String() string {
	return fmt.Sprintf("Location(%s)", l.id)
}
