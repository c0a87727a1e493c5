package service

import (
	"context"
	"testing"
	"time"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/model"
	"chopengine/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderRepo keeps orders in a map keyed by id.
type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[uuid.UUID]*model.Order{}}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	o.UpdatedAt = o.CreatedAt
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, apierror.ErrNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(context.Context, dto.OrderFilter) ([]model.Order, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateDelivery(_ context.Context, id uuid.UUID, status, rider *string) error {
	o, ok := r.orders[id]
	if !ok {
		return apierror.ErrNotFound
	}
	if status != nil {
		o.Status = *status
	}
	if rider != nil {
		o.AssignedRider = rider
	}
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return apierror.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func strPtr(s string) *string { return &s }

func sampleOrderRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		OrderType:   "instore",
		PaymentMode: "UPI",
		Items: []dto.OrderItemRequest{
			{Name: "Jollof Rice", Quantity: 2, Price: decimal.NewFromInt(1000)},
			{Name: "Pack", Quantity: 1, Price: decimal.NewFromInt(200), Category: strPtr("packaging")},
		},
		PackagingCost: decimal.NewFromInt(200),
	}
}

func TestOrderService_CreateNormalizesAndFillsTotals(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), "Chop House", lagos)

	resp, err := svc.Create(context.Background(), sampleOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, model.PaymentTransfer, resp.PaymentMode)
	assert.Equal(t, resp.ID, resp.MongoID)
	assert.Equal(t, model.OrderPending, resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(2000)), "packaging lines stay out of the subtotal")
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2200)))
	assert.Len(t, resp.Items, 2)
}

func TestOrderService_ChowdeckSettlesAsTransfer(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), "Chop House", lagos)
	req := sampleOrderRequest()
	req.OrderType = "chowdeck"
	req.PaymentMode = "cash"
	req.Total = decimal.NewFromInt(9999)

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentTransfer, resp.PaymentMode)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(9999)), "client totals are kept when present")
}

func TestOrderService_CreateDropsAddressForNonOnline(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), "Chop House", lagos)
	req := sampleOrderRequest()
	req.State = strPtr("Lagos")

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.State)

	req.OrderType = "online"
	resp, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.State)
	assert.Equal(t, "Lagos", *resp.State)
}

func TestOrderService_CreateValidation(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), "Chop House", lagos)

	req := sampleOrderRequest()
	req.PaymentMode = "crypto"
	_, err := svc.Create(context.Background(), req)
	assert.True(t, apierror.IsValidation(err))

	req = sampleOrderRequest()
	req.Items = nil
	_, err = svc.Create(context.Background(), req)
	assert.True(t, apierror.IsValidation(err))
}

func TestOrderService_UpdateDelivery(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, "Chop House", lagos)
	created, err := svc.Create(context.Background(), sampleOrderRequest())
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.UpdateDelivery(context.Background(), id, dto.UpdateOrderRequest{
		Status:        strPtr(" Dispatched "),
		AssignedRider: strPtr("Tunde"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderDispatched, resp.Status)
	require.NotNil(t, resp.AssignedRider)
	assert.Equal(t, "Tunde", *resp.AssignedRider)
	assert.True(t, resp.Total.Equal(created.Total))

	_, err = svc.UpdateDelivery(context.Background(), id, dto.UpdateOrderRequest{Status: strPtr("lost")})
	assert.True(t, apierror.IsValidation(err))

	_, err = svc.UpdateDelivery(context.Background(), uuid.New(), dto.UpdateOrderRequest{})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestOrderService_ReceiptAndDelete(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), "Chop House", lagos)
	created, err := svc.Create(context.Background(), sampleOrderRequest())
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	pdf, err := svc.Receipt(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")

	require.NoError(t, svc.Delete(context.Background(), id))
	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
