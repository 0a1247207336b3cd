package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Model is implemented by all resources stored in the database.
type Model interface {
	Self() string // Name of the resource as shown to users
}

// Migrate migrates all models to the schema defined in the code.
//
// Budgets are migrated before expenses so that the foreign key
// from expenses to budgets can be created.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Budget{}, Expense{}, Income{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
