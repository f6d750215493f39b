package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/database"
)

// NewTestDB gives each test its own migrated in-memory ledger
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("open test ledger: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
