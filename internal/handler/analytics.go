package handler

import (
	"errors"
	"net/http"

	"chopengine/internal/analytics"
	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/service"
	"chopengine/internal/worker"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	svc    service.AnalyticsService
	poller *worker.DashboardPoller
}

func NewAnalyticsHandler(svc service.AnalyticsService, poller *worker.DashboardPoller) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, poller: poller}
}

// Revenue godoc
// @Summary Revenue per channel for today, this week and this month
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.RevenueRollup
// @Failure 502 {object} apierror.APIError
// @Router /v1/analytics/revenue [get]
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	resp, err := h.svc.Revenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Payments godoc
// @Summary Today's payment-mode breakdown with cumulative hourly series
// @Tags analytics
// @Produce json
// @Success 200 {object} analytics.PaymentBreakdown
// @Failure 502 {object} apierror.APIError
// @Router /v1/analytics/payments [get]
func (h *AnalyticsHandler) Payments(c *gin.Context) {
	resp, err := h.svc.Payments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProducts godoc
// @Summary Best sellers today against a baseline
// @Tags analytics
// @Produce json
// @Param metric query string false "quantity (default) or revenue"
// @Param baseline query string false "yesterday (default) or last7days"
// @Param limit query int false "max rows"
// @Success 200 {array} analytics.ProductTrend
// @Failure 422 {object} apierror.ValidationErrors
// @Router /v1/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	var q dto.TopProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, apierror.Invalid("limit", "limit must be a number"))
		return
	}
	if !validateStruct(c, &q, engineEnvelope) {
		return
	}
	metric, ok := analytics.ParseMetric(q.Metric)
	if !ok {
		respondError(c, apierror.Invalid("metric", "metric must be quantity or revenue"))
		return
	}
	baseline, ok := analytics.ParseBaseline(q.Baseline)
	if !ok {
		respondError(c, apierror.Invalid("baseline", "baseline must be yesterday or last7days"))
		return
	}
	resp, err := h.svc.TopProducts(c.Request.Context(), analytics.Options{Metric: metric, Baseline: baseline, Limit: q.Limit})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Series godoc
// @Summary Zero-filled revenue buckets
// @Tags analytics
// @Produce json
// @Param granularity query string false "daily (default), weekly or monthly"
// @Success 200 {object} dto.SeriesResponse
// @Failure 422 {object} apierror.ValidationErrors
// @Router /v1/analytics/series [get]
func (h *AnalyticsHandler) Series(c *gin.Context) {
	g, ok := analytics.ParseGranularity(c.Query("granularity"))
	if !ok {
		respondError(c, apierror.Invalid("granularity", "granularity must be daily, weekly or monthly"))
		return
	}
	resp, err := h.svc.Series(c.Request.Context(), g)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Latest polled dashboard snapshot
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DashboardSnapshot
// @Router /v1/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.poller.Snapshot())
}

// RefreshDashboard godoc
// @Summary Abort the in-flight dashboard fetch and fetch again
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DashboardSnapshot
// @Failure 502 {object} apierror.APIError
// @Router /v1/analytics/dashboard/refresh [post]
func (h *AnalyticsHandler) RefreshDashboard(c *gin.Context) {
	snap, err := h.poller.Refresh(c.Request.Context())
	switch {
	case errors.Is(err, worker.ErrSuperseded):
		c.JSON(http.StatusOK, h.poller.Snapshot())
	case err != nil:
		respondError(c, err)
	default:
		c.JSON(http.StatusOK, snap)
	}
}
