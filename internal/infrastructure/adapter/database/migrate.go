package database

import (
	"fmt"

	"github.com/davidokon/secretshop/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all storefront tables.
// AutoMigrate only adds missing columns and indexes; it never drops data.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Transaction{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
