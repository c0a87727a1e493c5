package dto

import (
	"chopengine/internal/pricing"

	"github.com/shopspring/decimal"
)

// CheckoutRequest finalizes a session ledger into an order. PaymentMode is
// validated by the service, which also accepts the legacy "upi" value and
// ignores it for chowdeck orders.
type CheckoutRequest struct {
	OrderType    string          `json:"orderType"    validate:"required,oneof=online instore chowdeck"`
	PaymentMode  string          `json:"paymentMode"  validate:"required_unless=OrderType chowdeck"`
	CustomerName string          `json:"customerName" validate:"max=120"`
	Phone        *string         `json:"phone"        validate:"omitempty,max=30"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"  validate:"min=0"`
	Address      *string         `json:"address"`
	State        *string         `json:"state"`
	LGA          *string         `json:"lga"`
	Landmark     *string         `json:"landmark"`
}

type CheckoutResponse struct {
	OrderID     string          `json:"orderId"`
	PaymentMode string          `json:"paymentMode"`
	Totals      pricing.Totals  `json:"totals"`
	TodaysSales decimal.Decimal `json:"todaysSales"`
	Warning     string          `json:"warning,omitempty"`
}

type TodaysSalesResponse struct {
	SessionID string          `json:"sessionId"`
	Date      string          `json:"date"` // YYYY-MM-DD in the business time zone
	Total     decimal.Decimal `json:"total"`
}
