package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/usecase"
)

const msgTrackNotFound = "Order not found. Please check your details."

// OrderHandler serves checkout and public tracking.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), toOrderRequest(req))
	if err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Success:        true,
		OrderReference: order.Reference,
		OrderID:        order.ID,
	})
}

// Track handles POST /api/track-order.
func (h *OrderHandler) Track(c *gin.Context) {
	var req dto.TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return
	}

	view, err := h.facade.TrackOrder(c.Request.Context(), req.OrderReference, req.Email)
	if err != nil {
		writeError(c, h.logger, err, msgTrackNotFound, "Failed to track order")
		return
	}

	c.JSON(http.StatusOK, toTrackResponse(view))
}

func toOrderRequest(req dto.CreateOrderRequest) usecase.OrderRequest {
	items := make([]usecase.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.ItemRequest{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Attributes: it.Attributes,
		})
	}
	return usecase.OrderRequest{
		Items: items,
		Customer: usecase.CustomerRequest{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Shipping: usecase.ShippingRequest{
			Address:         req.Shipping.Address,
			City:            req.Shipping.City,
			State:           req.Shipping.State,
			ZipCode:         req.Shipping.ZipCode,
			Country:         req.Shipping.Country,
			PreferredMethod: req.Shipping.PreferredMethod,
		},
		Payment: usecase.PaymentRequest{
			PreferredMethod: req.Payment.PreferredMethod,
			CustomMethod:    req.Payment.CustomMethod,
			TotalAmount:     req.Payment.TotalAmount,
		},
	}
}
