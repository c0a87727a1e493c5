package service

import (
	"context"
	"time"

	"chopengine/internal/dto"
)

// OrderGateway is where finalized orders go and where the order history
// comes from. It is either the local Postgres store or a remote one over
// HTTP (infra.OrdersClient).
type OrderGateway interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (string, error)
	ListOrders(ctx context.Context) ([]dto.OrderRecord, error)
}

// InventoryGateway is the inventory CRUD surface of the same store.
type InventoryGateway interface {
	ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error)
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	UpdateItem(ctx context.Context, id string, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	DeleteItem(ctx context.Context, id string) error

	ListStock(ctx context.Context) ([]dto.StockEntryResponse, error)
	CreateStock(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error)
	UpdateStock(ctx context.Context, id string, req dto.UpdateStockEntryRequest) (*dto.StockEntryResponse, error)
	DeleteStock(ctx context.Context, id string) error
	ListMovements(ctx context.Context, limit int) ([]dto.StockEntryResponse, error)
}

// Clock is injected so calendar windows are testable.
type Clock func() time.Time

// ── Local order gateway ───────────────────────────────────────────────────────

type localOrderGateway struct{ orders OrderService }

// NewLocalOrderGateway serves the engine from this process's own order store.
func NewLocalOrderGateway(orders OrderService) OrderGateway {
	return &localOrderGateway{orders: orders}
}

func (g *localOrderGateway) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
	resp, err := g.orders.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (g *localOrderGateway) ListOrders(ctx context.Context) ([]dto.OrderRecord, error) {
	orders, err := g.orders.List(ctx, dto.OrderFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderRecord, 0, len(orders))
	for _, o := range orders {
		rec := dto.OrderRecord{
			ID:           o.ID,
			OrderType:    o.OrderType,
			PaymentMode:  o.PaymentMode,
			CustomerName: o.CustomerName,
			Status:       o.Status,
			Total:        o.Total,
			CreatedAt:    o.CreatedAt,
		}
		for _, it := range o.Items {
			rec.Items = append(rec.Items, dto.OrderRecordItem{
				Name:     it.Name,
				Category: derefString(it.Category),
				Quantity: decimalFromInt(it.Quantity),
				Price:    it.Price,
			})
		}
		out = append(out, rec)
	}
	return out, nil
}
