package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer purchase request together with its fulfillment audit trail.
type Order struct {
	ID            string
	Reference     string
	Items         []LineItem
	Customer      Customer
	Shipping      Shipping
	Payment       Payment
	Status        OrderStatus
	StatusHistory []StatusEntry
	Notes         string
	CustomNotes   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineItem is a frozen snapshot of a catalog product at order time.
type LineItem struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Attributes *ItemAttributes `json:"attributes,omitempty"`
}

// ItemAttributes holds optional customization choices.
type ItemAttributes struct {
	HairColor string `json:"hairColor,omitempty"`
	EyeColor  string `json:"eyeColor,omitempty"`
	Size      string `json:"size,omitempty"`
}

// Subtotal returns price multiplied by quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Shipping struct {
	Address         string
	City            string
	State           string
	ZipCode         string
	Country         string
	PreferredMethod string
}

// Payment describes how the customer intends to pay. Payment is arranged out of band.
type Payment struct {
	PreferredMethod string
	CustomMethod    string
	Status          PaymentStatus
	DepositAmount   *decimal.Decimal
	TotalAmount     decimal.Decimal
}

// Actors recorded in StatusEntry.TriggeredBy.
const (
	TriggeredBySystem = "system"
	TriggeredByAdmin  = "admin"
)

// StatusEntry is one immutable record in the status history.
type StatusEntry struct {
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	Note        string      `json:"note,omitempty"`
	TriggeredBy string      `json:"triggeredBy,omitempty"`
}

// LastStatus returns the tail of the history, if any.
func (o *Order) LastStatus() (StatusEntry, bool) {
	if len(o.StatusHistory) == 0 {
		return StatusEntry{}, false
	}
	return o.StatusHistory[len(o.StatusHistory)-1], true
}

// OrderUpdate carries admin edits that leave status and history untouched.
type OrderUpdate struct {
	Notes         *string
	CustomNotes   *string
	PaymentStatus *PaymentStatus
	DepositAmount *decimal.Decimal
}

// IsEmpty reports whether the update changes nothing.
func (u OrderUpdate) IsEmpty() bool {
	return u.Notes == nil && u.CustomNotes == nil && u.PaymentStatus == nil && u.DepositAmount == nil
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *OrderStatus
	Email  string
	Search string
	Limit  int
	Offset int
}

// OrderStats aggregates dashboard counters.
type OrderStats struct {
	Total    int64
	ByStatus map[OrderStatus]int64
	Revenue  decimal.Decimal
	Recent   []Order
}
