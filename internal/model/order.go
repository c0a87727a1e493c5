package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses for the delivery workflow.
const (
	OrderPending    = "pending"
	OrderPreparing  = "preparing"
	OrderReady      = "ready"
	OrderDispatched = "dispatched"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order is a submitted customer order. Financial fields are written once on
// creation; afterwards only Status and AssignedRider change.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderType     string          `gorm:"type:varchar(20);not null;index"`
	PaymentMode   string          `gorm:"type:varchar(20);not null"`
	CustomerName  string          `gorm:"not null;default:''"`
	Phone         *string         `gorm:"type:varchar(30)"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PackagingCost decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	DeliveryFee   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'"`
	AssignedRider *string

	// Delivery address, online orders only
	Address  *string
	State    *string `gorm:"index"`
	LGA      *string `gorm:"column:lga;index"`
	Landmark *string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one line of an order as it was sold.
type OrderItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"not null"`
	Quantity int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Category *string         `gorm:"type:varchar(20)"`
	FoodID   *string         `gorm:"type:varchar(64)"`
}

// IsOrderStatus reports whether s is a known delivery workflow status.
func IsOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderDispatched, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
