package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Items ───────────────────────────────────────────────────────────────────

type CreateInventoryItemRequest struct {
	SKU     string   `json:"sku"     validate:"required,max=60"`
	Name    string   `json:"name"    validate:"required,max=120"`
	Kind    string   `json:"kind"    validate:"required,oneof=food drink protein"`
	Unit    string   `json:"unit"    validate:"required,oneof=gram piece"`
	Aliases []string `json:"aliases" validate:"omitempty,dive,required"`
	// PortionSize is the stock consumed per unit sold; 0 means 1.
	PortionSize decimal.Decimal `json:"portionSize" validate:"min=0"`
	Packaging   bool            `json:"packaging"`
}

type UpdateInventoryItemRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,max=120"`
	Kind        *string          `json:"kind"        validate:"omitempty,oneof=food drink protein"`
	Unit        *string          `json:"unit"        validate:"omitempty,oneof=gram piece"`
	Aliases     *[]string        `json:"aliases"`
	PortionSize *decimal.Decimal `json:"portionSize"`
	Packaging   *bool            `json:"packaging"`
}

type InventoryItemResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Unit        string          `json:"unit"`
	Aliases     []string        `json:"aliases"`
	PortionSize decimal.Decimal `json:"portionSize"`
	Packaging   bool            `json:"packaging"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ─── Stock entries ───────────────────────────────────────────────────────────

type CreateStockEntryRequest struct {
	SKU  string          `json:"sku"  validate:"required"`
	Unit string          `json:"unit" validate:"required,oneof=gram piece"`
	Qty  decimal.Decimal `json:"qty"  validate:"required"`
	Note string          `json:"note" validate:"max=255"`
}

type UpdateStockEntryRequest struct {
	Qty  *decimal.Decimal `json:"qty"`
	Note *string          `json:"note" validate:"omitempty,max=255"`
}

type StockEntryResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	Qty       decimal.Decimal `json:"qty"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MovementsQuery is bound from GET /inventory/movements.
type MovementsQuery struct {
	Limit int `form:"limit,default=50" validate:"min=1,max=500"`
}
