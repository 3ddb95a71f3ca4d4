package enums

import (
	"fmt"
	"strings"
)

// OrderStatus enumerates the lifecycle states an order can be in. The
// backend owns every transition; the client only displays the value.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// OrderStatuses returns every known status in display order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// Tone maps the status to its semantic display color.
func (o OrderStatus) Tone() StatusTone {
	switch OrderStatus(strings.ToLower(string(o))) {
	case OrderStatusPaid, OrderStatusCompleted:
		return ToneSuccess
	case OrderStatusPending:
		return ToneWarning
	case OrderStatusShipped:
		return ToneInfo
	case OrderStatusCancelled:
		return ToneDanger
	default:
		return ToneMuted
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
