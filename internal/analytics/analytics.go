// Package analytics computes dashboard rollups from a full list of historical
// orders. Every function is a pure function of (orders, now): nothing is
// cached or maintained incrementally, and records with unusable data are
// skipped or zeroed instead of failing the whole computation.
//
// Calendar boundaries use now's location; callers convert now to the
// business time zone first.
package analytics

import (
	"strings"
	"time"

	"chopengine/internal/model"

	"github.com/shopspring/decimal"
)

// LineItem is one sold line of an order.
type LineItem struct {
	Name     string
	Category string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Order is the read-only view of a stored order the aggregator works on.
// A zero CreatedAt means the timestamp was missing or unparseable; such
// orders fall outside every window.
type Order struct {
	ID          string
	OrderType   string
	PaymentMode string
	Total       decimal.Decimal
	CreatedAt   time.Time
	Items       []LineItem
}

func (o Order) channel() string {
	c, ok := model.NormalizeChannel(o.OrderType)
	if !ok {
		return ""
	}
	return c
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole × 100 rounded to 2 places, or 0 when whole is 0.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
