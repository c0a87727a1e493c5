package service

import (
	"context"

	"chopengine/internal/inventory"
	"chopengine/internal/model"

	"github.com/google/uuid"
)

// InventoryService fronts the inventory gateway and adds the reconciled
// summary, which is always recomputed from items, stock and the full order
// history.
type InventoryService interface {
	InventoryGateway
	Summary(ctx context.Context) (*inventory.Summary, error)
}

type inventoryService struct {
	InventoryGateway
	orders OrderGateway
}

func NewInventoryService(inv InventoryGateway, orders OrderGateway) InventoryService {
	return &inventoryService{InventoryGateway: inv, orders: orders}
}

func (s *inventoryService) Summary(ctx context.Context) (*inventory.Summary, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := s.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	modelItems := make([]model.InventoryItem, 0, len(items))
	for _, it := range items {
		id, _ := uuid.Parse(it.ID)
		modelItems = append(modelItems, model.InventoryItem{
			ID:          id,
			SKU:         it.SKU,
			Name:        it.Name,
			Kind:        it.Kind,
			Unit:        it.Unit,
			Aliases:     it.Aliases,
			PortionSize: it.PortionSize,
			Packaging:   it.Packaging,
		})
	}
	modelStock := make([]model.StockEntry, 0, len(stock))
	for _, e := range stock {
		modelStock = append(modelStock, model.StockEntry{SKU: e.SKU, Unit: e.Unit, Qty: e.Qty})
	}
	var lines []inventory.Line
	for _, o := range orders {
		for _, it := range o.Items {
			lines = append(lines, inventory.Line{Name: it.Name, Category: it.Category, Quantity: it.Quantity})
		}
	}

	sum := inventory.Reconcile(modelItems, modelStock, lines)
	return &sum, nil
}
