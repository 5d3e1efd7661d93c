package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items"`
	Customer CustomerRequest    `json:"customer"`
	Shipping ShippingRequest    `json:"shipping"`
	Payment  PaymentRequest     `json:"payment"`
}

type OrderItemRequest struct {
	ProductID  string                `json:"productId"`
	Name       string                `json:"name"`
	Price      decimal.Decimal       `json:"price"`
	Quantity   int                   `json:"quantity"`
	Attributes *model.ItemAttributes `json:"attributes,omitempty"`
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ShippingRequest struct {
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	Country         string `json:"country"`
	PreferredMethod string `json:"preferredMethod"`
}

type PaymentRequest struct {
	PreferredMethod string          `json:"preferredMethod"`
	CustomMethod    string          `json:"customMethod"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}
