package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRequest is a checkout submission.
type OrderRequest struct {
	Items    []ItemRequest   `json:"items" validate:"required,min=1,dive"`
	Customer CustomerRequest `json:"customer"`
	Shipping ShippingRequest `json:"shipping"`
	Payment  PaymentRequest  `json:"payment"`
}

type ItemRequest struct {
	ProductID  string                `json:"productId" validate:"required"`
	Name       string                `json:"name" validate:"required"`
	Price      decimal.Decimal       `json:"price" validate:"gte=0"`
	Quantity   int                   `json:"quantity" validate:"min=1"`
	Attributes *model.ItemAttributes `json:"attributes,omitempty"`
}

type CustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type ShippingRequest struct {
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
	State           string `json:"state,omitempty"`
	ZipCode         string `json:"zipCode" validate:"required"`
	Country         string `json:"country" validate:"required"`
	PreferredMethod string `json:"preferredMethod,omitempty"`
}

type PaymentRequest struct {
	PreferredMethod string          `json:"preferredMethod" validate:"required"`
	CustomMethod    string          `json:"customMethod,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"gte=0"`
}

// RequestValidator checks checkout submissions and reports the first failing field.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs RequestValidator.
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return &RequestValidator{validate: v}
}

// ValidateOrder trims free text in place and validates req.
// Items are checked first, then customer, shipping and payment.
func (v *RequestValidator) ValidateOrder(req *OrderRequest) error {
	trimOrderRequest(req)

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domainErrors.NewValidationError("", err.Error())
	}
	return fieldError(fieldErrs[0])
}

func fieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	var reason string
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			reason = "order must contain at least one item"
		} else {
			reason = "is required"
		}
	case "min":
		if fe.Kind() == reflect.Slice {
			reason = "order must contain at least one item"
		} else {
			reason = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "gte":
		reason = "must not be negative"
	case "email":
		reason = "must be a valid email address"
	default:
		reason = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return domainErrors.NewValidationError(field, reason)
}

func trimOrderRequest(req *OrderRequest) {
	for i := range req.Items {
		req.Items[i].ProductID = strings.TrimSpace(req.Items[i].ProductID)
		req.Items[i].Name = strings.TrimSpace(req.Items[i].Name)
	}
	req.Customer.Name = strings.TrimSpace(req.Customer.Name)
	req.Customer.Email = strings.TrimSpace(req.Customer.Email)
	req.Customer.Phone = strings.TrimSpace(req.Customer.Phone)
	req.Shipping.Address = strings.TrimSpace(req.Shipping.Address)
	req.Shipping.City = strings.TrimSpace(req.Shipping.City)
	req.Shipping.State = strings.TrimSpace(req.Shipping.State)
	req.Shipping.ZipCode = strings.TrimSpace(req.Shipping.ZipCode)
	req.Shipping.Country = strings.TrimSpace(req.Shipping.Country)
	req.Shipping.PreferredMethod = strings.TrimSpace(req.Shipping.PreferredMethod)
	req.Payment.PreferredMethod = strings.TrimSpace(req.Payment.PreferredMethod)
	req.Payment.CustomMethod = strings.TrimSpace(req.Payment.CustomMethod)
}
