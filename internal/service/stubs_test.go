package service

import (
	"context"
	"sync"

	"chopengine/internal/dto"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubOrderGateway records created orders and serves a fixed history.
type stubOrderGateway struct {
	mu       sync.Mutex
	created  []dto.CreateOrderRequest
	history  []dto.OrderRecord
	failWith error
	nextID   string
}

func (g *stubOrderGateway) CreateOrder(_ context.Context, req dto.CreateOrderRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, req)
	if g.failWith != nil {
		return "", g.failWith
	}
	if g.nextID == "" {
		return "order-1", nil
	}
	return g.nextID, nil
}

func (g *stubOrderGateway) ListOrders(_ context.Context) ([]dto.OrderRecord, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return g.history, nil
}

func (g *stubOrderGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.created)
}

var _ OrderGateway = (*stubOrderGateway)(nil)

// stubInventoryGateway serves fixed items and stock; mutations are unused.
type stubInventoryGateway struct {
	items []dto.InventoryItemResponse
	stock []dto.StockEntryResponse
}

func (g *stubInventoryGateway) ListItems(context.Context) ([]dto.InventoryItemResponse, error) {
	return g.items, nil
}
func (g *stubInventoryGateway) CreateItem(context.Context, dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	return nil, nil
}
func (g *stubInventoryGateway) UpdateItem(context.Context, string, dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	return nil, nil
}
func (g *stubInventoryGateway) DeleteItem(context.Context, string) error { return nil }
func (g *stubInventoryGateway) ListStock(context.Context) ([]dto.StockEntryResponse, error) {
	return g.stock, nil
}
func (g *stubInventoryGateway) CreateStock(context.Context, dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error) {
	return nil, nil
}
func (g *stubInventoryGateway) UpdateStock(context.Context, string, dto.UpdateStockEntryRequest) (*dto.StockEntryResponse, error) {
	return nil, nil
}
func (g *stubInventoryGateway) DeleteStock(context.Context, string) error { return nil }
func (g *stubInventoryGateway) ListMovements(context.Context, int) ([]dto.StockEntryResponse, error) {
	return g.stock, nil
}

var _ InventoryGateway = (*stubInventoryGateway)(nil)
