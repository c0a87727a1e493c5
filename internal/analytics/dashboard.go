package analytics

import "time"

// Dashboard is everything the admin screen renders, computed in one pass
// over the same order snapshot.
type Dashboard struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	OrderCount  int              `json:"orderCount"`
	Revenue     RevenueRollup    `json:"revenue"`
	Payments    PaymentBreakdown `json:"payments"`
	TopProducts []ProductTrend   `json:"topProducts"`
	Daily       []SeriesPoint    `json:"daily"`
	Weekly      []SeriesPoint    `json:"weekly"`
	Monthly     []SeriesPoint    `json:"monthly"`
}

func BuildDashboard(orders []Order, now time.Time, opts Options) Dashboard {
	return Dashboard{
		GeneratedAt: now,
		OrderCount:  len(orders),
		Revenue:     Revenue(orders, now),
		Payments:    Payments(orders, now),
		TopProducts: TopProducts(orders, now, opts),
		Daily:       DailySeries(orders, now, DailyBuckets),
		Weekly:      WeeklySeries(orders, now, WeeklyBuckets),
		Monthly:     MonthlySeries(orders, now, MonthlyBuckets),
	}
}
