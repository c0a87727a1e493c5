// Package inventory reconciles stock on hand from stock entries and sold
// order lines. It keeps no state: every Summary is recomputed from scratch.
package inventory

import (
	"sort"
	"strings"

	"chopengine/internal/model"

	"github.com/shopspring/decimal"
)

// Line is a sold order line as seen by reconciliation.
type Line struct {
	Name     string
	Category string
	Quantity decimal.Decimal
}

type Row struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Unit      string          `json:"unit"`
	Added     decimal.Decimal `json:"added"`
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
	Display   string          `json:"display"`
}

// Group is the set of rows sharing a unit, with the humanized sum of what
// remains.
type Group struct {
	Unit      string          `json:"unit"`
	Rows      []Row           `json:"rows"`
	Remaining decimal.Decimal `json:"remaining"`
	Display   string          `json:"display"`
}

type Summary struct {
	Grams  Group `json:"grams"`
	Pieces Group `json:"pieces"`
}

var thousand = decimal.NewFromInt(1000)

// FormatGrams shows kilograms with two decimals from 1000 g up, grams below.
// The threshold applies to the magnitude, so deficits format the same way.
func FormatGrams(g decimal.Decimal) string {
	if g.Abs().GreaterThanOrEqual(thousand) {
		return g.Div(thousand).StringFixed(2) + " kg"
	}
	return g.Round(2).String() + " g"
}

func FormatPieces(p decimal.Decimal) string {
	return p.Round(2).String() + " pcs"
}

func format(unit string, v decimal.Decimal) string {
	if unit == model.UnitGram {
		return FormatGrams(v)
	}
	return FormatPieces(v)
}

type matcher struct {
	packaging bool
	aliases   []string
}

func newMatcher(it model.InventoryItem) matcher {
	m := matcher{packaging: it.Packaging}
	seen := map[string]bool{}
	for _, a := range append([]string{it.Name}, it.Aliases...) {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		m.aliases = append(m.aliases, a)
	}
	return m
}

func (m matcher) matches(l Line) bool {
	if m.packaging {
		return model.IsPackagingLine(l.Name, l.Category)
	}
	name := strings.ToLower(l.Name)
	for _, a := range m.aliases {
		if strings.Contains(name, a) {
			return true
		}
	}
	return false
}

// Reconcile computes remaining = added - used for every item. A line may
// count against several SKUs when it matches more than one alias set.
// Stock entries for unknown SKUs are ignored. Remaining can go negative.
func Reconcile(items []model.InventoryItem, stock []model.StockEntry, lines []Line) Summary {
	added := make(map[string]decimal.Decimal, len(items))
	for _, s := range stock {
		k := skuKey(s.SKU)
		added[k] = added[k].Add(s.Qty)
	}

	sum := Summary{
		Grams:  Group{Unit: model.UnitGram, Rows: []Row{}},
		Pieces: Group{Unit: model.UnitPiece, Rows: []Row{}},
	}
	for _, it := range items {
		m := newMatcher(it)
		portion := it.PortionSize
		if !portion.IsPositive() {
			portion = decimal.NewFromInt(1)
		}
		used := decimal.Zero
		for _, l := range lines {
			if l.Quantity.IsPositive() && m.matches(l) {
				used = used.Add(l.Quantity.Mul(portion))
			}
		}
		a := added[skuKey(it.SKU)]
		row := Row{
			SKU:       it.SKU,
			Name:      it.Name,
			Kind:      it.Kind,
			Unit:      it.Unit,
			Added:     a,
			Used:      used,
			Remaining: a.Sub(used),
		}
		row.Display = format(it.Unit, row.Remaining)

		g := &sum.Pieces
		if it.Unit == model.UnitGram {
			g = &sum.Grams
		}
		g.Rows = append(g.Rows, row)
		g.Remaining = g.Remaining.Add(row.Remaining)
	}

	for _, g := range []*Group{&sum.Grams, &sum.Pieces} {
		sort.SliceStable(g.Rows, func(i, j int) bool {
			return strings.ToLower(g.Rows[i].Name) < strings.ToLower(g.Rows[j].Name)
		})
		g.Display = format(g.Unit, g.Remaining)
	}
	return sum
}

func skuKey(sku string) string { return strings.ToLower(strings.TrimSpace(sku)) }

