package service

import (
	"context"
	"strings"
	"time"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/ledger"
	"chopengine/internal/model"
	"chopengine/internal/pricing"
	"chopengine/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PackLineName is the order line that carries packaging cost.
const PackLineName = "Pack"

// LedgerNotClearedWarning is returned with a placed order whose ledger could
// not be cleared. The till must clear it by hand instead of resubmitting.
const LedgerNotClearedWarning = "order placed but the ledger could not be cleared; clear it before the next order"

type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	TodaysSales(ctx context.Context, sessionID string) (*dto.TodaysSalesResponse, error)
}

type checkoutService struct {
	ledgers LedgerService
	orders  OrderGateway
	sales   repository.SalesCounter
	rules   pricing.Rules
	now     Clock
	loc     *time.Location
}

func NewCheckoutService(
	ledgers LedgerService,
	orders OrderGateway,
	sales repository.SalesCounter,
	rules pricing.Rules,
	now Clock,
	loc *time.Location,
) CheckoutService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &checkoutService{ledgers: ledgers, orders: orders, sales: sales, rules: rules, now: now, loc: loc}
}

func (s *checkoutService) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// ── Checkout ──────────────────────────────────────────────────────────────────
//  1. Validate channel and payment mode locally (no network call on failure)
//  2. Under the session lock: price the ledger and submit exactly once
//  3. On failure: ledger untouched, SubmissionError
//  4. On success: ledger cleared, total added to today's sales. A store error
//     after the order is placed never turns the checkout into a failure.

func (s *checkoutService) Checkout(ctx context.Context, sessionID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	channel, ok := model.NormalizeChannel(req.OrderType)
	if !ok {
		return nil, apierror.Invalid("orderType", "orderType must be one of online, instore, chowdeck")
	}
	mode, err := resolvePaymentMode(channel, req.PaymentMode)
	if err != nil {
		return nil, err
	}

	rules := s.rules
	if channel == model.ChannelOnline {
		rules = rules.WithDeliveryFee(req.DeliveryFee)
	}

	var (
		orderID string
		totals  pricing.Totals
	)
	err = s.ledgers.Update(ctx, sessionID, func(l *ledger.Ledger) error {
		if l.Len() == 0 {
			return apierror.Invalid("ledger", "ledger is empty")
		}
		entries := l.Entries()
		totals = pricing.Calculate(entries, rules)

		id, err := s.orders.CreateOrder(ctx, buildOrder(entries, totals, rules, channel, mode, req))
		if err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("checkout: order submission failed")
			return apierror.NewSubmissionError(err)
		}
		orderID = id
		l.Clear()
		return nil
	})
	var warning string
	switch {
	case err != nil && orderID == "":
		return nil, err
	case err != nil:
		log.Error().Err(err).Str("session", sessionID).Str("order_id", orderID).Msg("checkout: order placed but saving the cleared ledger failed")
		if cerr := s.ledgers.Clear(ctx, sessionID); cerr != nil {
			log.Error().Err(cerr).Str("session", sessionID).Str("order_id", orderID).Msg("checkout: ledger not cleared")
			warning = LedgerNotClearedWarning
		}
	}

	day := s.today()
	sales, err := s.sales.Add(ctx, sessionID, day, totals.Total)
	if err != nil {
		// the order is already placed; only the running total is affected
		log.Error().Err(err).Str("session", sessionID).Str("order_id", orderID).Msg("checkout: failed to update today's sales")
		sales, _ = s.sales.Get(ctx, sessionID, day)
	}

	log.Info().Str("session", sessionID).Str("order_id", orderID).
		Str("channel", channel).Str("payment_mode", mode).
		Str("total", totals.Total.String()).Msg("checkout: order submitted")

	return &dto.CheckoutResponse{
		OrderID:     orderID,
		PaymentMode: mode,
		Totals:      totals,
		TodaysSales: sales,
		Warning:     warning,
	}, nil
}

// resolvePaymentMode validates the requested mode. Chowdeck orders always
// settle by transfer, so their requested mode is not checked.
func resolvePaymentMode(channel, requested string) (string, error) {
	if channel == model.ChannelChowdeck {
		return model.SettlementMode(channel, requested), nil
	}
	if strings.TrimSpace(requested) == "" {
		return "", apierror.Invalid("paymentMode", "payment mode is required")
	}
	mode, ok := model.NormalizePaymentMode(requested)
	if !ok {
		return "", apierror.Invalid("paymentMode", "paymentMode must be one of cash, card, transfer")
	}
	return mode, nil
}

func (s *checkoutService) TodaysSales(ctx context.Context, sessionID string) (*dto.TodaysSalesResponse, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	day := s.today()
	total, err := s.sales.Get(ctx, sessionID, day)
	if err != nil {
		return nil, err
	}
	return &dto.TodaysSalesResponse{SessionID: sessionID, Date: day, Total: total}, nil
}

// buildOrder maps ledger entries to wire items and appends one Pack line for
// the packaging charge.
func buildOrder(entries []ledger.Entry, totals pricing.Totals, rules pricing.Rules, channel, mode string, req dto.CheckoutRequest) dto.CreateOrderRequest {
	items := make([]dto.OrderItemRequest, 0, len(entries)+1)
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = e.ID
		}
		category := string(e.Category)
		foodID := e.ID
		items = append(items, dto.OrderItemRequest{
			Name:     name,
			Quantity: e.Count,
			Price:    e.UnitPrice,
			Category: &category,
			FoodID:   &foodID,
		})
	}
	if totals.PackCount > 0 {
		packaging := model.CategoryPackaging
		items = append(items, dto.OrderItemRequest{
			Name:     PackLineName,
			Quantity: totals.PackCount,
			Price:    nonNegativePrice(rules.PackPrice),
			Category: &packaging,
		})
	}

	order := dto.CreateOrderRequest{
		OrderType:     channel,
		PaymentMode:   mode,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         req.Phone,
		Items:         items,
		Subtotal:      totals.Subtotal,
		PackagingCost: totals.PackagingCost,
		DeliveryFee:   totals.DeliveryFee,
		Tax:           totals.Tax,
		Total:         totals.Total,
	}
	if channel == model.ChannelOnline {
		order.Address, order.State, order.LGA, order.Landmark = req.Address, req.State, req.LGA, req.Landmark
	}
	return order
}

func nonNegativePrice(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
