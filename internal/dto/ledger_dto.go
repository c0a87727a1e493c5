package dto

import (
	"chopengine/internal/pricing"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddLedgerItemRequest struct {
	ID        string          `json:"id"        validate:"required"`
	Category  string          `json:"category"  validate:"required,oneof=food protein drink"`
	Name      string          `json:"name"      validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"min=0"`
	IsDrink   bool            `json:"isDrink"`
	// Bulk items start at the configured bulk quantity instead of 1.
	Bulk bool `json:"bulk"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LedgerEntryResponse struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsDrink   bool            `json:"isDrink"`
	Bulk      bool            `json:"bulk"`
	Count     int             `json:"count"`
	Unit      string          `json:"unit"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type LedgerResponse struct {
	SessionID string                `json:"sessionId"`
	Entries   []LedgerEntryResponse `json:"entries"`
	Totals    pricing.Totals        `json:"totals"`
}
