package analytics

import (
	"sort"
	"strings"
	"time"

	"chopengine/internal/model"

	"github.com/shopspring/decimal"
)

type Metric string

const (
	MetricQuantity Metric = "quantity"
	MetricRevenue  Metric = "revenue"
)

type Baseline string

const (
	BaselineYesterday     Baseline = "yesterday"
	BaselineLastSevenDays Baseline = "last7days"
)

const DefaultTopLimit = 8

// Options selects what TopProducts ranks by and what it compares against.
// Zero values mean quantity, yesterday and DefaultTopLimit.
type Options struct {
	Metric   Metric
	Baseline Baseline
	Limit    int
}

func ParseMetric(s string) (Metric, bool) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MetricQuantity, true
	case MetricQuantity, MetricRevenue:
		return m, true
	}
	return "", false
}

func ParseBaseline(s string) (Baseline, bool) {
	switch b := Baseline(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BaselineYesterday, true
	case BaselineYesterday, BaselineLastSevenDays:
		return b, true
	}
	return "", false
}

func (o Options) withDefaults() Options {
	if o.Metric == "" {
		o.Metric = MetricQuantity
	}
	if o.Baseline == "" {
		o.Baseline = BaselineYesterday
	}
	if o.Limit <= 0 {
		o.Limit = DefaultTopLimit
	}
	return o
}

type ProductTrend struct {
	Name      string          `json:"name"`
	Today     decimal.Decimal `json:"today"`
	Baseline  decimal.Decimal `json:"baseline"`
	ChangePct decimal.Decimal `json:"changePct"`
}

// ChangePct is (today-baseline)/baseline × 100 rounded to 2 places, with
// 100 for a zero baseline and positive today, and 0 when both are zero.
func ChangePct(today, baseline decimal.Decimal) decimal.Decimal {
	if baseline.IsZero() {
		if today.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return today.Sub(baseline).Div(baseline).Mul(hundred).Round(2)
}

var seven = decimal.NewFromInt(7)

// TopProducts ranks item names by today's value. Packaging lines are not
// products and are skipped. Items sold only in the baseline window still
// appear with a today value of 0.
func TopProducts(orders []Order, now time.Time, opts Options) []ProductTrend {
	opts = opts.withDefaults()

	baseWindow := Yesterday(now)
	if opts.Baseline == BaselineLastSevenDays {
		baseWindow = LastSevenDays(now)
	}
	todayWindow := Today(now)

	type acc struct {
		name            string
		today, baseline decimal.Decimal
	}
	byKey := make(map[string]*acc)
	get := func(name string) *acc {
		k := itemKey(name)
		a, ok := byKey[k]
		if !ok {
			a = &acc{name: strings.TrimSpace(name)}
			byKey[k] = a
		}
		return a
	}

	for _, o := range orders {
		inToday := todayWindow.Contains(o.CreatedAt)
		inBase := baseWindow.Contains(o.CreatedAt)
		if !inToday && !inBase {
			continue
		}
		for _, li := range o.Items {
			if itemKey(li.Name) == "" || model.IsPackagingLine(li.Name, li.Category) {
				continue
			}
			v := li.Quantity
			if opts.Metric == MetricRevenue {
				v = li.Quantity.Mul(li.Price)
			}
			a := get(li.Name)
			if inToday {
				a.today = a.today.Add(v)
			} else {
				a.baseline = a.baseline.Add(v)
			}
		}
	}

	out := make([]ProductTrend, 0, len(byKey))
	for _, a := range byKey {
		base := a.baseline
		if opts.Baseline == BaselineLastSevenDays {
			base = base.Div(seven).Round(2)
		}
		out = append(out, ProductTrend{
			Name:      a.name,
			Today:     a.today,
			Baseline:  base,
			ChangePct: ChangePct(a.today, base),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Today.Cmp(out[j].Today); c != 0 {
			return c > 0
		}
		return itemKey(out[i].Name) < itemKey(out[j].Name)
	})
	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
