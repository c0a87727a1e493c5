package model

import "strings"

// Payment modes accepted on the wire. The legacy "upi" value is read as
// transfer and is never written back out.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"

	legacyPaymentUPI = "upi"
)

// Order channels (orderType).
const (
	ChannelOnline   = "online"
	ChannelInStore  = "instore"
	ChannelChowdeck = "chowdeck"
)

// PaymentModes lists the normalized payment modes in display order.
var PaymentModes = []string{PaymentCash, PaymentCard, PaymentTransfer}

// NormalizePaymentMode lowercases and trims mode and maps the legacy "upi"
// alias to transfer. ok is false for anything that is not a known mode.
func NormalizePaymentMode(mode string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(mode))
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return m, true
	case legacyPaymentUPI:
		return PaymentTransfer, true
	default:
		return m, false
	}
}

// NormalizeChannel lowercases and trims an orderType. ok is false for
// unknown or missing channels.
func NormalizeChannel(orderType string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(orderType))
	switch c {
	case ChannelOnline, ChannelInStore, ChannelChowdeck:
		return c, true
	default:
		return c, false
	}
}

// SettlementMode applies the channel rule on top of the requested mode:
// third-party (chowdeck) orders are always settled by transfer.
func SettlementMode(channel, requested string) string {
	if channel == ChannelChowdeck {
		return PaymentTransfer
	}
	return requested
}
