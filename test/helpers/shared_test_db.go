package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/persistence"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/database"
)

// SharedTestDB is the ledger every BDD scenario writes to; TestMain owns it
var SharedTestDB *gorm.DB

func InitializeSharedTestDB() error {
	db, err := database.OpenInMemory()
	if err != nil {
		return fmt.Errorf("shared test ledger: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties the ledger between scenarios
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test ledger not initialized")
	}
	for _, model := range []interface{}{&persistence.TransactionModel{}, &persistence.SessionModel{}} {
		if err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("truncate %T: %w", model, err)
		}
	}
	return nil
}

func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
