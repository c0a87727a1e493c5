package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock units.
const (
	UnitGram  = "gram"
	UnitPiece = "piece"
)

// Inventory kinds.
const (
	KindFood    = "food"
	KindDrink   = "drink"
	KindProtein = "protein"
)

// InventoryItem is a tracked SKU. Usage is inferred from order lines whose
// names match one of Aliases (or the packaging pattern when Packaging is set).
type InventoryItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU     string    `gorm:"column:sku;uniqueIndex;not null"`
	Name    string    `gorm:"not null"`
	Kind    string    `gorm:"type:varchar(20);not null"`
	Unit    string    `gorm:"type:varchar(10);not null"`
	Aliases []string  `gorm:"type:jsonb;serializer:json"`
	// PortionSize is how many units one sold line quantity consumes.
	PortionSize decimal.Decimal `gorm:"type:decimal(12,3);not null;default:1"`
	Packaging   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockEntry records stock added for a SKU.
type StockEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU       string          `gorm:"column:sku;not null;index"`
	Unit      string          `gorm:"type:varchar(10);not null"`
	Qty       decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Note      string          `gorm:"not null;default:''"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time
}

// TableName keeps the plural GORM would pick but makes it explicit.
func (StockEntry) TableName() string { return "stock_entries" }

// CategoryPackaging tags the dedicated pack line on submitted orders.
const CategoryPackaging = "packaging"

// The whole line name must be a packaging word, so menu items such as
// "Takeaway Jollof" or "Packed lunch" are not mistaken for packaging.
var packagingPattern = regexp.MustCompile(`(?i)^(take ?away )?(pack|packs|packaging|container|containers|bag|bags)$|^take ?away$`)

// IsPackagingLine reports whether an order line is packaging: either it
// carries the packaging category or its name is nothing but a packaging word.
func IsPackagingLine(name, category string) bool {
	if strings.EqualFold(strings.TrimSpace(category), CategoryPackaging) {
		return true
	}
	return packagingPattern.MatchString(strings.Join(strings.Fields(name), " "))
}

// IsUnit and IsKind validate enum fields coming from requests.
func IsUnit(u string) bool { return u == UnitGram || u == UnitPiece }

func IsKind(k string) bool { return k == KindFood || k == KindDrink || k == KindProtein }
