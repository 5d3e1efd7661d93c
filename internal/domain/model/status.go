package model

// OrderStatus describes the fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "new"
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusAwaitingDeposit OrderStatus = "awaiting_deposit"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusInProgress      OrderStatus = "in_progress"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// OrderStatuses lists every known status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusAwaitingDeposit,
	OrderStatusPaid,
	OrderStatusInProgress,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal statuses cannot be left once reached.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether an order in from may move to to.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return !from.Terminal()
}

// SourcesFor returns every status from which to is reachable.
func SourcesFor(to OrderStatus) []OrderStatus {
	sources := make([]OrderStatus, 0, len(OrderStatuses))
	for _, from := range OrderStatuses {
		if CanTransition(from, to) {
			sources = append(sources, from)
		}
	}
	return sources
}

// PaymentStatus is tracked independently from the order status.
type PaymentStatus string

const (
	PaymentStatusPending         PaymentStatus = "pending"
	PaymentStatusDepositReceived PaymentStatus = "deposit_received"
	PaymentStatusPaid            PaymentStatus = "paid"
	PaymentStatusRefunded        PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusDepositReceived, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}
