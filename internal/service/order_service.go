package service

import (
	"context"
	"strings"
	"time"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/infra"
	"chopengine/internal/model"
	"chopengine/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService is the store side of the order lifecycle: orders are created
// once, then only their delivery status and rider change until deleted.
type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	UpdateDelivery(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Receipt(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type orderService struct {
	repo         repository.OrderRepository
	businessName string
	loc          *time.Location
}

func NewOrderService(repo repository.OrderRepository, businessName string, loc *time.Location) OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &orderService{repo: repo, businessName: businessName, loc: loc}
}

// Create normalizes the payment mode (upi is stored as transfer, chowdeck is
// always transfer) and fills in derived amounts the client left at zero.
func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	channel, ok := model.NormalizeChannel(req.OrderType)
	if !ok {
		return nil, apierror.Invalid("orderType", "orderType must be one of online, instore, chowdeck")
	}
	mode, ok := model.NormalizePaymentMode(req.PaymentMode)
	if !ok {
		return nil, apierror.Invalid("paymentMode", "paymentMode must be one of cash, card, transfer")
	}
	if len(req.Items) == 0 {
		return nil, apierror.Invalid("items", "an order needs at least one item")
	}

	o := &model.Order{
		OrderType:     channel,
		PaymentMode:   model.SettlementMode(channel, mode),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         req.Phone,
		Subtotal:      req.Subtotal,
		PackagingCost: req.PackagingCost,
		DeliveryFee:   req.DeliveryFee,
		Tax:           req.Tax,
		Total:         req.Total,
		Status:        model.OrderPending,
	}
	if channel == model.ChannelOnline {
		o.Address, o.State, o.LGA, o.Landmark = req.Address, req.State, req.LGA, req.Landmark
	}

	itemsSubtotal := decimal.Zero
	for _, it := range req.Items {
		if it.Quantity < 1 || it.Price.IsNegative() {
			return nil, apierror.Invalid("items", "item quantity must be positive and price non-negative")
		}
		o.Items = append(o.Items, model.OrderItem{
			Name:     strings.TrimSpace(it.Name),
			Quantity: it.Quantity,
			Price:    it.Price,
			Category: it.Category,
			FoodID:   it.FoodID,
		})
		if it.Category == nil || *it.Category != "packaging" {
			itemsSubtotal = itemsSubtotal.Add(it.Price.Mul(decimalFromInt(it.Quantity)))
		}
	}
	if o.Subtotal.IsZero() {
		o.Subtotal = itemsSubtotal
	}
	if o.Total.IsZero() {
		o.Total = o.Subtotal.Add(o.PackagingCost).Add(o.DeliveryFee).Add(o.Tax)
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

func (s *orderService) UpdateDelivery(ctx context.Context, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if req.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*req.Status))
		if !model.IsOrderStatus(st) {
			return nil, apierror.Invalid("status", "unknown order status")
		}
		req.Status = &st
	}
	if err := s.repo.UpdateDelivery(ctx, id, req.Status, req.AssignedRider); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *orderService) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return infra.GenerateReceiptPDF(o, s.businessName, s.loc)
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func toOrderResponse(o *model.Order) dto.OrderResponse {
	id := o.ID.String()
	resp := dto.OrderResponse{
		MongoID:       id,
		ID:            id,
		OrderType:     o.OrderType,
		PaymentMode:   o.PaymentMode,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Items:         make([]dto.OrderItemResponse, 0, len(o.Items)),
		Subtotal:      o.Subtotal,
		PackagingCost: o.PackagingCost,
		DeliveryFee:   o.DeliveryFee,
		Tax:           o.Tax,
		Total:         o.Total,
		Status:        o.Status,
		AssignedRider: o.AssignedRider,
		Address:       o.Address,
		State:         o.State,
		LGA:           o.LGA,
		Landmark:      o.Landmark,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Category: it.Category,
			FoodID:   it.FoodID,
		})
	}
	return resp
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
