package repository

import (
	"context"
	"errors"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// List returns every matching order, oldest first. There is no pagination:
	// aggregation always scans the full history.
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error)
	UpdateDelivery(ctx context.Context, id uuid.UUID, status, rider *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.ErrNotFound
	}
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).Preload("Items")
	if filter.State != "" {
		q = q.Where("LOWER(state) = LOWER(?)", filter.State)
	}
	if filter.LGA != "" {
		q = q.Where("LOWER(lga) = LOWER(?)", filter.LGA)
	}
	var orders []model.Order
	err := q.Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateDelivery(ctx context.Context, id uuid.UUID, status, rider *string) error {
	updates := map[string]interface{}{}
	if status != nil {
		updates["status"] = *status
	}
	if rider != nil {
		updates["assigned_rider"] = *rider
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}
