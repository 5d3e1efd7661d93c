package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	msgInvalidBody       = "Invalid request body"
	msgOrderNotFound     = "Order not found"
	msgInvalidTransition = "Order status cannot be changed from its current state"
)

// writeError maps domain failures to status codes. Anything unexpected is
// logged and answered with fallback so no internal detail reaches the client.
func writeError(c *gin.Context, logger *slog.Logger, err error, notFound, fallback string) {
	var validationErr *domainErrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFound})
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: msgInvalidTransition})
	default:
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

func toStatusEntries(history []model.StatusEntry) []dto.StatusEntryResponse {
	out := make([]dto.StatusEntryResponse, 0, len(history))
	for _, e := range history {
		out = append(out, dto.StatusEntryResponse{
			Status:      string(e.Status),
			Timestamp:   e.Timestamp,
			Note:        e.Note,
			TriggeredBy: e.TriggeredBy,
		})
	}
	return out
}

func toTrackResponse(view *model.PublicOrderView) dto.TrackOrderResponse {
	items := make([]dto.TrackItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, dto.TrackItem{Name: item.Name, Quantity: item.Quantity})
	}
	return dto.TrackOrderResponse{
		OrderReference: view.Reference,
		Status:         string(view.Status),
		CreatedAt:      view.CreatedAt,
		Shipping:       dto.TrackShipping{City: view.City, Country: view.Country},
		Items:          items,
		StatusHistory:  toStatusEntries(view.StatusHistory),
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := order.Items
	if items == nil {
		items = []model.LineItem{}
	}
	return dto.OrderResponse{
		ID:             order.ID,
		OrderReference: order.Reference,
		Items:          items,
		Customer: dto.CustomerResponse{
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: order.Customer.Phone,
		},
		Shipping: dto.ShippingResponse{
			Address:         order.Shipping.Address,
			City:            order.Shipping.City,
			State:           order.Shipping.State,
			ZipCode:         order.Shipping.ZipCode,
			Country:         order.Shipping.Country,
			PreferredMethod: order.Shipping.PreferredMethod,
		},
		Payment: dto.PaymentResponse{
			PreferredMethod: order.Payment.PreferredMethod,
			CustomMethod:    order.Payment.CustomMethod,
			Status:          string(order.Payment.Status),
			DepositAmount:   order.Payment.DepositAmount,
			TotalAmount:     order.Payment.TotalAmount,
		},
		Status:        string(order.Status),
		StatusHistory: toStatusEntries(order.StatusHistory),
		Notes:         order.Notes,
		CustomNotes:   order.CustomNotes,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
