// Package ledger holds the in-session quantity ledger: the items a cashier or
// customer has selected, with counts, before the order is submitted.
//
// Removal is always explicit. Decrement stops at a count of 1; callers drop an
// entry with RemoveItem.
package ledger

import (
	"errors"
	"strings"

	"chopengine/internal/apierror"

	"github.com/shopspring/decimal"
)

// Category of a ledger line.
type Category string

const (
	Food    Category = "food"
	Protein Category = "protein"
	Drink   Category = "drink"
)

// DefaultBulkInitialQty is the count a bulk item starts at when first added.
const DefaultBulkInitialQty = 25

var ErrEntryNotFound = errors.New("ledger entry not found")

// ParseCategory validates a category coming from a request.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Food, Protein, Drink:
		return c, true
	}
	return "", false
}

// UnitLabel is the display unit for a category. It has no effect on arithmetic.
func UnitLabel(c Category) string {
	if c == Food {
		return "plate"
	}
	return "piece"
}

// Item is what gets added to the ledger.
type Item struct {
	ID        string          `json:"id"`
	Category  Category        `json:"category"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsDrink   bool            `json:"isDrink"`
	Bulk      bool            `json:"bulk"`
}

// Entry is a ledger line: an Item plus its current count.
type Entry struct {
	Item
	Count int `json:"count"`
}

// LineTotal is unitPrice × count.
func (e Entry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Count)))
}

type key struct {
	id       string
	category Category
}

// Ledger is not safe for concurrent use; LedgerService serializes access
// per session.
type Ledger struct {
	bulkInitialQty int
	entries        []Entry
	index          map[key]int
}

// New returns an empty ledger. A non-positive bulkInitialQty falls back to
// DefaultBulkInitialQty.
func New(bulkInitialQty int) *Ledger {
	if bulkInitialQty <= 0 {
		bulkInitialQty = DefaultBulkInitialQty
	}
	return &Ledger{bulkInitialQty: bulkInitialQty, index: make(map[key]int)}
}

// Restore rebuilds a ledger from persisted entries. Entries with a count
// below 1 or an unknown category are dropped; duplicate keys are merged.
func Restore(bulkInitialQty int, entries []Entry) *Ledger {
	l := New(bulkInitialQty)
	for _, e := range entries {
		if e.Count < 1 {
			continue
		}
		if _, ok := ParseCategory(string(e.Category)); !ok {
			continue
		}
		k := key{e.ID, e.Category}
		if i, ok := l.index[k]; ok {
			l.entries[i].Count += e.Count
			continue
		}
		l.index[k] = len(l.entries)
		l.entries = append(l.entries, e)
	}
	return l
}

// AddItem increments an existing (id, category) entry by one, or inserts a
// new entry at 1 (or bulkInitialQty for bulk items).
func (l *Ledger) AddItem(item Item) (Entry, error) {
	if err := validateItem(item); err != nil {
		return Entry{}, err
	}
	k := key{item.ID, item.Category}
	if i, ok := l.index[k]; ok {
		l.entries[i].Count++
		return l.entries[i], nil
	}
	count := 1
	if item.Bulk {
		count = l.bulkInitialQty
	}
	e := Entry{Item: item, Count: count}
	l.index[k] = len(l.entries)
	l.entries = append(l.entries, e)
	return e, nil
}

// RemoveItem deletes the entry regardless of its count.
func (l *Ledger) RemoveItem(id string, category Category) error {
	k := key{id, category}
	i, ok := l.index[k]
	if !ok {
		return ErrEntryNotFound
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.index, k)
	for j := i; j < len(l.entries); j++ {
		l.index[key{l.entries[j].ID, l.entries[j].Category}] = j
	}
	return nil
}

func (l *Ledger) Increment(id string, category Category) (Entry, error) {
	i, ok := l.index[key{id, category}]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	l.entries[i].Count++
	return l.entries[i], nil
}

// Decrement lowers the count by one but never below 1.
func (l *Ledger) Decrement(id string, category Category) (Entry, error) {
	i, ok := l.index[key{id, category}]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	if l.entries[i].Count > 1 {
		l.entries[i].Count--
	}
	return l.entries[i], nil
}

// Entries returns a copy of the ledger lines in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int { return len(l.entries) }

func (l *Ledger) Clear() {
	l.entries = nil
	l.index = make(map[key]int)
}

func validateItem(item Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return apierror.Invalid("id", "item id is required")
	}
	switch item.Category {
	case Food, Protein, Drink:
	default:
		return apierror.Invalid("category", "category must be one of food, protein, drink")
	}
	if item.UnitPrice.IsNegative() {
		return apierror.Invalid("unitPrice", "unit price must not be negative")
	}
	return nil
}
