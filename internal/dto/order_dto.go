package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter ──────────────────────────────────────────────────────────────────

// OrderFilter is bound from the query string of GET /orders. _ts is the
// client cache-buster and is ignored.
type OrderFilter struct {
	State string `form:"state"`
	LGA   string `form:"lga"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	Name     string          `json:"name"     validate:"required"`
	Quantity int             `json:"quantity" validate:"min=1"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Category *string         `json:"category,omitempty"`
	FoodID   *string         `json:"foodId,omitempty"`
}

// CreateOrderRequest is the POST /orders body. The checkout flow sends the
// same shape to a remote store.
type CreateOrderRequest struct {
	OrderType     string             `json:"orderType"     validate:"required,oneof=online instore chowdeck"`
	PaymentMode   string             `json:"paymentMode"   validate:"required"`
	CustomerName  string             `json:"customerName"  validate:"max=120"`
	Phone         *string            `json:"phone,omitempty"`
	Items         []OrderItemRequest `json:"items"         validate:"required,min=1,dive"`
	Subtotal      decimal.Decimal    `json:"subtotal"      validate:"min=0"`
	PackagingCost decimal.Decimal    `json:"packagingCost" validate:"min=0"`
	DeliveryFee   decimal.Decimal    `json:"deliveryFee"   validate:"min=0"`
	Tax           decimal.Decimal    `json:"tax"           validate:"min=0"`
	Total         decimal.Decimal    `json:"total"         validate:"min=0"`
	Address       *string            `json:"address,omitempty"`
	State         *string            `json:"state,omitempty"`
	LGA           *string            `json:"lga,omitempty"`
	Landmark      *string            `json:"landmark,omitempty"`
}

// UpdateOrderRequest covers the delivery workflow only; financial fields are
// immutable after creation.
type UpdateOrderRequest struct {
	Status        *string `json:"status"        validate:"omitempty,oneof=pending preparing ready dispatched delivered cancelled"`
	AssignedRider *string `json:"assignedRider" validate:"omitempty,max=120"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Category *string         `json:"category,omitempty"`
	FoodID   *string         `json:"foodId,omitempty"`
}

// OrderResponse carries the id twice: storefront clients read _id.
type OrderResponse struct {
	MongoID       string              `json:"_id"`
	ID            string              `json:"id"`
	OrderType     string              `json:"orderType"`
	PaymentMode   string              `json:"paymentMode"`
	CustomerName  string              `json:"customerName"`
	Phone         *string             `json:"phone,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	PackagingCost decimal.Decimal     `json:"packagingCost"`
	DeliveryFee   decimal.Decimal     `json:"deliveryFee"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	AssignedRider *string             `json:"assignedRider,omitempty"`
	Address       *string             `json:"address,omitempty"`
	State         *string             `json:"state,omitempty"`
	LGA           *string             `json:"lga,omitempty"`
	Landmark      *string             `json:"landmark,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
