package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
)

// Migrate creates or updates every table, including the partial unique indexes
// that keep stress events and alerts idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
