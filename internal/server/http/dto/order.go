package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges an accepted command.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CreateOrderResponse is returned after checkout.
type CreateOrderResponse struct {
	Success        bool   `json:"success"`
	OrderReference string `json:"orderReference"`
	OrderID        string `json:"orderId"`
}

// TrackOrderRequest describes public tracking payload.
type TrackOrderRequest struct {
	OrderReference string `json:"orderReference"`
	Email          string `json:"email"`
}

// TrackOrderResponse is the public projection of an order.
type TrackOrderResponse struct {
	OrderReference string                `json:"orderReference"`
	Status         string                `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
	Shipping       TrackShipping         `json:"shipping"`
	Items          []TrackItem           `json:"items"`
	StatusHistory  []StatusEntryResponse `json:"statusHistory"`
}

type TrackShipping struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type TrackItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// StatusEntryResponse is one history record.
type StatusEntryResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Note        string    `json:"note,omitempty"`
	TriggeredBy string    `json:"triggeredBy,omitempty"`
}

// OrderResponse is the full order document served to operators.
type OrderResponse struct {
	ID             string                `json:"id"`
	OrderReference string                `json:"orderReference"`
	Items          []model.LineItem      `json:"items"`
	Customer       CustomerResponse      `json:"customer"`
	Shipping       ShippingResponse      `json:"shipping"`
	Payment        PaymentResponse       `json:"payment"`
	Status         string                `json:"status"`
	StatusHistory  []StatusEntryResponse `json:"statusHistory"`
	Notes          string                `json:"notes,omitempty"`
	CustomNotes    string                `json:"customNotes,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type ShippingResponse struct {
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state,omitempty"`
	ZipCode         string `json:"zipCode"`
	Country         string `json:"country"`
	PreferredMethod string `json:"preferredMethod,omitempty"`
}

type PaymentResponse struct {
	PreferredMethod string           `json:"preferredMethod"`
	CustomMethod    string           `json:"customMethod,omitempty"`
	Status          string           `json:"status"`
	DepositAmount   *decimal.Decimal `json:"depositAmount,omitempty"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
}
