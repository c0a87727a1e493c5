package service

import (
	"context"
	"errors"
	"strings"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/model"
	"chopengine/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// stockService is the local InventoryGateway, backed by Postgres.
type stockService struct {
	repo repository.InventoryRepository
}

func NewStockService(repo repository.InventoryRepository) InventoryGateway {
	return &stockService{repo: repo}
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.Invalid(field, "invalid id")
	}
	return id, nil
}

func cleanAliases(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, a := range in {
		a = strings.TrimSpace(a)
		k := strings.ToLower(a)
		if a == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *stockService) ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return out, nil
}

func (s *stockService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	sku := strings.TrimSpace(req.SKU)
	if _, err := s.repo.FindItemBySKU(ctx, sku); err == nil {
		return nil, apierror.Invalid("sku", "sku already exists")
	} else if !errors.Is(err, apierror.ErrNotFound) {
		return nil, err
	}
	if !model.IsKind(req.Kind) || !model.IsUnit(req.Unit) {
		return nil, apierror.Invalid("kind", "kind or unit not recognised")
	}
	portion := req.PortionSize
	if !portion.IsPositive() {
		portion = decimal.NewFromInt(1)
	}
	it := &model.InventoryItem{
		SKU:         sku,
		Name:        strings.TrimSpace(req.Name),
		Kind:        req.Kind,
		Unit:        req.Unit,
		Aliases:     cleanAliases(req.Aliases),
		PortionSize: portion,
		Packaging:   req.Packaging,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	resp := toItemResponse(it)
	return &resp, nil
}

func (s *stockService) UpdateItem(ctx context.Context, rawID string, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Kind != nil {
		if !model.IsKind(*req.Kind) {
			return nil, apierror.Invalid("kind", "kind not recognised")
		}
		it.Kind = *req.Kind
	}
	if req.Unit != nil {
		if !model.IsUnit(*req.Unit) {
			return nil, apierror.Invalid("unit", "unit not recognised")
		}
		it.Unit = *req.Unit
	}
	if req.Aliases != nil {
		it.Aliases = cleanAliases(*req.Aliases)
	}
	if req.PortionSize != nil {
		if !req.PortionSize.IsPositive() {
			return nil, apierror.Invalid("portionSize", "portion size must be positive")
		}
		it.PortionSize = *req.PortionSize
	}
	if req.Packaging != nil {
		it.Packaging = *req.Packaging
	}
	if err := s.repo.SaveItem(ctx, it); err != nil {
		return nil, err
	}
	resp := toItemResponse(it)
	return &resp, nil
}

func (s *stockService) DeleteItem(ctx context.Context, rawID string) error {
	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, id)
}

// ── Stock entries ─────────────────────────────────────────────────────────────

func (s *stockService) ListStock(ctx context.Context) ([]dto.StockEntryResponse, error) {
	entries, err := s.repo.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	return toStockResponses(entries), nil
}

// CreateStock records a restock. The SKU must exist and the unit must match
// the item's unit.
func (s *stockService) CreateStock(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error) {
	it, err := s.repo.FindItemBySKU(ctx, strings.TrimSpace(req.SKU))
	if errors.Is(err, apierror.ErrNotFound) {
		return nil, apierror.Invalid("sku", "unknown sku")
	}
	if err != nil {
		return nil, err
	}
	if req.Unit != it.Unit {
		return nil, apierror.Invalid("unit", "unit must be "+it.Unit+" for "+it.SKU)
	}
	if req.Qty.IsZero() {
		return nil, apierror.Invalid("qty", "qty must not be zero")
	}
	e := &model.StockEntry{SKU: it.SKU, Unit: it.Unit, Qty: req.Qty, Note: strings.TrimSpace(req.Note)}
	if err := s.repo.CreateStock(ctx, e); err != nil {
		return nil, err
	}
	resp := toStockResponse(e)
	return &resp, nil
}

func (s *stockService) UpdateStock(ctx context.Context, rawID string, req dto.UpdateStockEntryRequest) (*dto.StockEntryResponse, error) {
	id, err := parseID("id", rawID)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.FindStock(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Qty != nil {
		if req.Qty.IsZero() {
			return nil, apierror.Invalid("qty", "qty must not be zero")
		}
		e.Qty = *req.Qty
	}
	if req.Note != nil {
		e.Note = strings.TrimSpace(*req.Note)
	}
	if err := s.repo.SaveStock(ctx, e); err != nil {
		return nil, err
	}
	resp := toStockResponse(e)
	return &resp, nil
}

func (s *stockService) DeleteStock(ctx context.Context, rawID string) error {
	id, err := parseID("id", rawID)
	if err != nil {
		return err
	}
	return s.repo.DeleteStock(ctx, id)
}

func (s *stockService) ListMovements(ctx context.Context, limit int) ([]dto.StockEntryResponse, error) {
	entries, err := s.repo.RecentStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toStockResponses(entries), nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func toItemResponse(it *model.InventoryItem) dto.InventoryItemResponse {
	aliases := it.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return dto.InventoryItemResponse{
		ID:          it.ID.String(),
		SKU:         it.SKU,
		Name:        it.Name,
		Kind:        it.Kind,
		Unit:        it.Unit,
		Aliases:     aliases,
		PortionSize: it.PortionSize,
		Packaging:   it.Packaging,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toStockResponse(e *model.StockEntry) dto.StockEntryResponse {
	return dto.StockEntryResponse{
		ID:        e.ID.String(),
		SKU:       e.SKU,
		Unit:      e.Unit,
		Qty:       e.Qty,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

func toStockResponses(entries []model.StockEntry) []dto.StockEntryResponse {
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toStockResponse(&entries[i]))
	}
	return out
}
