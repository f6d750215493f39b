package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/stellar-hauler/internal/domain/player"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Add persists a session
func (r *GormSessionRepository) Add(ctx context.Context, session *player.Session) error {
	model := &SessionModel{
		ID:               session.ID,
		ShipName:         session.ShipName,
		StartingCredits:  session.StartingCredits,
		StartingLocation: session.StartingLocation,
		StartedAt:        session.StartedAt,
		LastActive:       session.LastActive,
	}

	// Upsert: create or update
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByID retrieves a session by ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id string) (*player.Session, error) {
	var model SessionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find session: %w", result.Error)
	}

	return &player.Session{
		ID:               model.ID,
		ShipName:         model.ShipName,
		StartingCredits:  model.StartingCredits,
		StartingLocation: model.StartingLocation,
		StartedAt:        model.StartedAt,
		LastActive:       model.LastActive,
	}, nil
}

// Touch records activity on a session
func (r *GormSessionRepository) Touch(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&SessionModel{}).Where("id = ?", id).Update("last_active", at)
	if result.Error != nil {
		return fmt.Errorf("failed to touch session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}
