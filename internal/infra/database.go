package infra

import (
	"fmt"

	"chopengine/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate for
// the order store and inventory tables, then applies the idempotent SQL patches
// GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table and then applies the schema
// patches. Integration tests call it directly against a container.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryItem{},
		&model.StockEntry{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that the model tags cannot describe.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// movements list: newest stock entries first
		`CREATE INDEX IF NOT EXISTS idx_stock_entries_created_desc
		    ON stock_entries (created_at DESC)`,
		// reconciliation sums stock per SKU regardless of case
		`CREATE INDEX IF NOT EXISTS idx_stock_entries_sku_lower
		    ON stock_entries (lower(sku))`,
		// delivery dispatch filters online orders by area
		`CREATE INDEX IF NOT EXISTS idx_orders_online_area
		    ON orders (state, lga)
		    WHERE order_type = 'online'`,
		// the store never writes the legacy alias
		`UPDATE orders SET payment_mode = 'transfer' WHERE payment_mode = 'upi'`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
