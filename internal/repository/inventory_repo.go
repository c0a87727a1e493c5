package repository

import (
	"context"
	"errors"

	"chopengine/internal/apierror"
	"chopengine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	FindItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	FindItemBySKU(ctx context.Context, sku string) (*model.InventoryItem, error)
	CreateItem(ctx context.Context, it *model.InventoryItem) error
	SaveItem(ctx context.Context, it *model.InventoryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	ListStock(ctx context.Context) ([]model.StockEntry, error)
	FindStock(ctx context.Context, id uuid.UUID) (*model.StockEntry, error)
	CreateStock(ctx context.Context, e *model.StockEntry) error
	SaveStock(ctx context.Context, e *model.StockEntry) error
	DeleteStock(ctx context.Context, id uuid.UUID) error
	// RecentStock returns the newest entries first.
	RecentStock(ctx context.Context, limit int) ([]model.StockEntry, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ErrNotFound
	}
	return err
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (r *inventoryRepo) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var it model.InventoryItem
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *inventoryRepo) FindItemBySKU(ctx context.Context, sku string) (*model.InventoryItem, error) {
	var it model.InventoryItem
	if err := r.db.WithContext(ctx).Where("LOWER(sku) = LOWER(?)", sku).First(&it).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

func (r *inventoryRepo) CreateItem(ctx context.Context, it *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *inventoryRepo) SaveItem(ctx context.Context, it *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *inventoryRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

// ── Stock entries ─────────────────────────────────────────────────────────────

func (r *inventoryRepo) ListStock(ctx context.Context) ([]model.StockEntry, error) {
	var entries []model.StockEntry
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *inventoryRepo) FindStock(ctx context.Context, id uuid.UUID) (*model.StockEntry, error) {
	var e model.StockEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *inventoryRepo) CreateStock(ctx context.Context, e *model.StockEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *inventoryRepo) SaveStock(ctx context.Context, e *model.StockEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *inventoryRepo) DeleteStock(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.StockEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

func (r *inventoryRepo) RecentStock(ctx context.Context, limit int) ([]model.StockEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}
	var entries []model.StockEntry
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
