package service

import (
	"context"
	"time"

	"chopengine/internal/analytics"
	"chopengine/internal/dto"
)

// AnalyticsService recomputes every rollup from the full order history on
// each call. Nothing is cached here; the dashboard poller holds the latest
// snapshot.
type AnalyticsService interface {
	Revenue(ctx context.Context) (*analytics.RevenueRollup, error)
	Payments(ctx context.Context) (*analytics.PaymentBreakdown, error)
	TopProducts(ctx context.Context, opts analytics.Options) ([]analytics.ProductTrend, error)
	Series(ctx context.Context, g analytics.Granularity) (*dto.SeriesResponse, error)
	Dashboard(ctx context.Context) (*analytics.Dashboard, error)
}

type analyticsService struct {
	orders   OrderGateway
	now      Clock
	loc      *time.Location
	topLimit int
}

func NewAnalyticsService(orders OrderGateway, now Clock, loc *time.Location, topLimit int) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsService{orders: orders, now: now, loc: loc, topLimit: topLimit}
}

// snapshot fetches the history and pins "now" in the business time zone.
func (s *analyticsService) snapshot(ctx context.Context) ([]analytics.Order, time.Time, error) {
	recs, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return toAnalyticsOrders(recs), s.now().In(s.loc), nil
}

func (s *analyticsService) Revenue(ctx context.Context) (*analytics.RevenueRollup, error) {
	orders, now, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	r := analytics.Revenue(orders, now)
	return &r, nil
}

func (s *analyticsService) Payments(ctx context.Context) (*analytics.PaymentBreakdown, error) {
	orders, now, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	b := analytics.Payments(orders, now)
	return &b, nil
}

func (s *analyticsService) TopProducts(ctx context.Context, opts analytics.Options) ([]analytics.ProductTrend, error) {
	orders, now, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopProducts(orders, now, s.withLimit(opts)), nil
}

func (s *analyticsService) Series(ctx context.Context, g analytics.Granularity) (*dto.SeriesResponse, error) {
	orders, now, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SeriesResponse{Granularity: g, Points: analytics.Series(orders, now, g)}, nil
}

func (s *analyticsService) Dashboard(ctx context.Context) (*analytics.Dashboard, error) {
	orders, now, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	d := analytics.BuildDashboard(orders, now, s.withLimit(analytics.Options{}))
	return &d, nil
}

func (s *analyticsService) withLimit(opts analytics.Options) analytics.Options {
	if opts.Limit <= 0 {
		opts.Limit = s.topLimit
	}
	return opts
}

func toAnalyticsOrders(recs []dto.OrderRecord) []analytics.Order {
	out := make([]analytics.Order, 0, len(recs))
	for _, r := range recs {
		o := analytics.Order{
			ID:          r.ID,
			OrderType:   r.OrderType,
			PaymentMode: r.PaymentMode,
			Total:       r.Total,
			CreatedAt:   r.CreatedAt,
			Items:       make([]analytics.LineItem, 0, len(r.Items)),
		}
		for _, it := range r.Items {
			o.Items = append(o.Items, analytics.LineItem{Name: it.Name, Category: it.Category, Quantity: it.Quantity, Price: it.Price})
		}
		out = append(out, o)
	}
	return out
}
