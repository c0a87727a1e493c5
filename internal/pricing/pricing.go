// Package pricing derives order totals from a ledger snapshot.
package pricing

import (
	"chopengine/internal/ledger"

	"github.com/shopspring/decimal"
)

// Rules are the pricing inputs that are not part of the ledger.
type Rules struct {
	PackPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

// DefaultRules: 200 per pack, 2% tax, no delivery.
func DefaultRules() Rules {
	return Rules{
		PackPrice: decimal.NewFromInt(200),
		TaxRate:   decimal.NewFromFloat(0.02),
	}
}

// WithDeliveryFee returns a copy of r with the delivery fee replaced.
func (r Rules) WithDeliveryFee(fee decimal.Decimal) Rules {
	r.DeliveryFee = fee
	return r
}

type Totals struct {
	PackCount     int             `json:"packCount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PackagingCost decimal.Decimal `json:"packagingCost"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// Calculate is pure: the same entries and rules always give the same Totals.
// Negative prices, counts and fees are read as zero.
//
// The tax base is the subtotal only; packaging and delivery are not taxed.
func Calculate(entries []ledger.Entry, rules Rules) Totals {
	var t Totals
	t.Subtotal = decimal.Zero
	for _, e := range entries {
		count := e.Count
		if count < 0 {
			count = 0
		}
		t.Subtotal = t.Subtotal.Add(nonNegative(e.UnitPrice).Mul(decimal.NewFromInt(int64(count))))
		if Packable(e) {
			t.PackCount += count
		}
	}
	t.PackagingCost = nonNegative(rules.PackPrice).Mul(decimal.NewFromInt(int64(t.PackCount)))
	t.DeliveryFee = nonNegative(rules.DeliveryFee)
	t.Tax = t.Subtotal.Mul(nonNegative(rules.TaxRate))
	t.Total = t.Subtotal.Add(t.PackagingCost).Add(t.DeliveryFee).Add(t.Tax)
	return t
}

// Packable reports whether an entry's count goes toward packaging: anything
// that is not a drink.
func Packable(e ledger.Entry) bool {
	return !e.IsDrink && e.Category != ledger.Drink
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
