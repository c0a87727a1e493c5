package dto

import (
	"time"

	"chopengine/internal/analytics"
)

// TopProductsQuery is bound from GET /v1/analytics/top-products.
type TopProductsQuery struct {
	Metric   string `form:"metric"`   // quantity | revenue
	Baseline string `form:"baseline"` // yesterday | last7days
	Limit    int    `form:"limit"     validate:"min=0,max=100"`
}

type SeriesResponse struct {
	Granularity analytics.Granularity   `json:"granularity"`
	Points      []analytics.SeriesPoint `json:"points"`
}

// DashboardSnapshot is what the poller publishes. Error is the last refresh
// failure, if any; Dashboard is kept from the last successful refresh.
type DashboardSnapshot struct {
	Dashboard *analytics.Dashboard `json:"dashboard"`
	FetchedAt *time.Time           `json:"fetchedAt"`
	Error     string               `json:"error,omitempty"`
}
