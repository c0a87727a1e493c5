package analytics

import (
	"strings"
	"time"

	"chopengine/internal/model"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

const (
	DailyBuckets   = 14
	WeeklyBuckets  = 12
	MonthlyBuckets = 12
)

func ParseGranularity(s string) (Granularity, bool) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return Daily, true
	case Daily, Weekly, Monthly:
		return g, true
	}
	return "", false
}

// SeriesPoint is one chart bucket. Total covers every order in the bucket,
// chowdeck and untyped orders included, even though only online and
// in-store have their own lines.
type SeriesPoint struct {
	Key     string          `json:"key"`
	Start   time.Time       `json:"start"`
	Online  decimal.Decimal `json:"online"`
	InStore decimal.Decimal `json:"instore"`
	Total   decimal.Decimal `json:"total"`
}

type bucketing struct {
	start  func(time.Time) time.Time
	step   func(time.Time, int) time.Time
	layout string
}

var bucketings = map[Granularity]bucketing{
	Daily: {
		start:  StartOfDay,
		step:   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
		layout: "2006-01-02",
	},
	Weekly: {
		start:  StartOfWeekMonday,
		step:   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
		layout: "2006-01-02",
	},
	Monthly: {
		start:  StartOfMonth,
		step:   func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
		layout: "2006-01",
	},
}

func DailySeries(orders []Order, now time.Time, days int) []SeriesPoint {
	return buildSeries(orders, now, bucketings[Daily], days)
}

// WeeklySeries uses Monday-start weeks keyed by the Monday's date.
func WeeklySeries(orders []Order, now time.Time, weeks int) []SeriesPoint {
	return buildSeries(orders, now, bucketings[Weekly], weeks)
}

func MonthlySeries(orders []Order, now time.Time, months int) []SeriesPoint {
	return buildSeries(orders, now, bucketings[Monthly], months)
}

// Series returns the default-length series for g.
func Series(orders []Order, now time.Time, g Granularity) []SeriesPoint {
	switch g {
	case Weekly:
		return WeeklySeries(orders, now, WeeklyBuckets)
	case Monthly:
		return MonthlySeries(orders, now, MonthlyBuckets)
	default:
		return DailySeries(orders, now, DailyBuckets)
	}
}

func buildSeries(orders []Order, now time.Time, b bucketing, n int) []SeriesPoint {
	if n <= 0 {
		return []SeriesPoint{}
	}
	loc := now.Location()
	current := b.start(now)

	points := make([]SeriesPoint, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		start := b.step(current, i-(n-1))
		key := start.Format(b.layout)
		points[i] = SeriesPoint{Key: key, Start: start}
		index[key] = i
	}

	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		key := b.start(o.CreatedAt.In(loc)).Format(b.layout)
		i, ok := index[key]
		if !ok {
			continue
		}
		p := &points[i]
		switch o.channel() {
		case model.ChannelOnline:
			p.Online = p.Online.Add(o.Total)
		case model.ChannelInStore:
			p.InStore = p.InStore.Add(o.Total)
		}
		p.Total = p.Total.Add(o.Total)
	}
	return points
}
