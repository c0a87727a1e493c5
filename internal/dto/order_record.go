package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ─── Lenient read model ──────────────────────────────────────────────────────
// Order lists fetched from a store are decoded leniently: aggregation must
// survive records with string amounts, missing fields or odd timestamps.

// OrderRecord is the read-only order shape used by analytics and inventory.
type OrderRecord struct {
	ID           string
	OrderType    string
	PaymentMode  string
	CustomerName string
	Status       string
	Total        decimal.Decimal
	CreatedAt    time.Time // zero when missing or unparseable
	Items        []OrderRecordItem
}

type OrderRecordItem struct {
	Name     string
	Category string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// LenientDecimal decodes numbers, numeric strings and null. Anything else
// becomes zero instead of failing the whole document.
type LenientDecimal struct{ decimal.Decimal }

func (d *LenientDecimal) UnmarshalJSON(b []byte) error {
	d.Decimal = decimal.Zero
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if unq, err := strconv.Unquote(s); err == nil {
			s = strings.TrimSpace(unq)
		}
	}
	if v, err := decimal.NewFromString(s); err == nil {
		d.Decimal = v
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LenientTime decodes RFC 3339 strings, a few common layouts and unix epoch
// milliseconds. Unparseable values leave the zero time.
type LenientTime struct{ time.Time }

func (t *LenientTime) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] != '"' {
		if ms, err := strconv.ParseInt(string(b), 10, 64); err == nil && ms > 0 {
			t.Time = time.UnixMilli(ms).UTC()
		}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return nil
}

// lenientString accepts strings and numbers, e.g. numeric ids.
type lenientString string

func (s *lenientString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return nil
		}
		*s = lenientString(v)
		return nil
	}
	*s = lenientString(b)
	return nil
}

type orderRecordItemWire struct {
	Name     lenientString  `json:"name"`
	Category lenientString  `json:"category"`
	Quantity LenientDecimal `json:"quantity"`
	Price    LenientDecimal `json:"price"`
}

// lenientItems decodes an item array, dropping elements that are not item
// objects. A value that is not an array at all yields no items.
type lenientItems []orderRecordItemWire

func (li *lenientItems) UnmarshalJSON(b []byte) error {
	*li = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	for _, el := range raw {
		var it orderRecordItemWire
		if err := json.Unmarshal(el, &it); err != nil {
			continue
		}
		*li = append(*li, it)
	}
	return nil
}

type orderRecordWire struct {
	MongoID      lenientString         `json:"_id"`
	OrderID      lenientString         `json:"orderId"`
	ID           lenientString         `json:"id"`
	OrderType    lenientString         `json:"orderType"`
	PaymentMode  lenientString         `json:"paymentMode"`
	CustomerName lenientString         `json:"customerName"`
	Status       lenientString         `json:"status"`
	Total        LenientDecimal        `json:"total"`
	CreatedAt    LenientTime           `json:"createdAt"`
	Items        lenientItems          `json:"items"`
}

func (r *OrderRecord) UnmarshalJSON(b []byte) error {
	var w orderRecordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = OrderRecord{
		ID:           FirstNonEmpty(string(w.MongoID), string(w.OrderID), string(w.ID)),
		OrderType:    string(w.OrderType),
		PaymentMode:  string(w.PaymentMode),
		CustomerName: string(w.CustomerName),
		Status:       string(w.Status),
		Total:        w.Total.Decimal,
		CreatedAt:    w.CreatedAt.Time,
	}
	for _, it := range w.Items {
		r.Items = append(r.Items, OrderRecordItem{
			Name:     string(it.Name),
			Category: string(it.Category),
			Quantity: it.Quantity.Decimal,
			Price:    it.Price.Decimal,
		})
	}
	return nil
}

// DecodeOrderRecords decodes each element on its own and drops the ones that
// are not order objects, returning how many were dropped.
func DecodeOrderRecords(raw []json.RawMessage) ([]OrderRecord, int) {
	out := make([]OrderRecord, 0, len(raw))
	skipped := 0
	for _, el := range raw {
		var r OrderRecord
		if err := json.Unmarshal(el, &r); err != nil {
			skipped++
			continue
		}
		out = append(out, r)
	}
	return out, skipped
}

// CreatedOrderRef is the create-order reply. Stores disagree on the id field.
type CreatedOrderRef struct {
	MongoID lenientString `json:"_id"`
	OrderID lenientString `json:"orderId"`
	ID      lenientString `json:"id"`
}

func (r CreatedOrderRef) Resolve() string {
	return FirstNonEmpty(string(r.MongoID), string(r.OrderID), string(r.ID))
}

func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
