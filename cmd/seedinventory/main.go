// cmd/seedinventory/main.go seeds the default inventory items.
// Usage: go run ./cmd/seedinventory
package main

import (
	"context"
	"os"
	"time"

	"chopengine/internal/config"
	"chopengine/internal/infra"
	"chopengine/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

func item(sku, name, kind, unit string, portion int64, aliases ...string) model.InventoryItem {
	return model.InventoryItem{
		SKU:         sku,
		Name:        name,
		Kind:        kind,
		Unit:        unit,
		Aliases:     aliases,
		PortionSize: decimal.NewFromInt(portion),
	}
}

var defaults = []model.InventoryItem{
	item("RICE", "Rice", model.KindFood, model.UnitGram, 200, "jollof", "fried rice", "white rice"),
	item("BEANS", "Beans", model.KindFood, model.UnitGram, 180, "ewa", "porridge beans"),
	item("SPAG", "Spaghetti", model.KindFood, model.UnitGram, 150, "spag"),
	item("COKE", "Coke", model.KindDrink, model.UnitPiece, 1, "coca-cola", "coca cola"),
	item("FANTA", "Fanta", model.KindDrink, model.UnitPiece, 1),
	item("WATER", "Water", model.KindDrink, model.UnitPiece, 1, "eva"),
	item("CHICKEN", "Chicken", model.KindProtein, model.UnitPiece, 1),
	item("BEEF", "Beef", model.KindProtein, model.UnitPiece, 1, "meat"),
	item("FISH", "Fish", model.KindProtein, model.UnitPiece, 1, "titus", "croaker"),
	{
		SKU:         "PACK",
		Name:        "Takeaway pack",
		Kind:        model.KindFood,
		Unit:        model.UnitPiece,
		PortionSize: decimal.NewFromInt(1),
		Packaging:   true,
	},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	// Existing SKUs keep their stock history; only descriptive fields are refreshed.
	result := db.WithContext(context.Background()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "kind", "unit", "aliases", "portion_size", "packaging", "updated_at"}),
		}).
		Create(&defaults)
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("seed failed")
	}
	log.Info().Int64("rows", result.RowsAffected).Msg("inventory items seeded")
}
