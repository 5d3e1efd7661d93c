package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/usecase"
)

// AdminHandler serves the operator back office.
type AdminHandler struct {
	facade AdminFacade
	logger *slog.Logger
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{facade: facade, logger: logger}
}

// Get handles GET /api/admin/orders/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Update handles PUT /api/admin/orders/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), c.Param("id"), toAdminUpdate(req))
	if err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Reply handles POST /api/admin/orders/:id/reply.
func (h *AdminHandler) Reply(c *gin.Context) {
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return
	}

	reply := usecase.ReplyRequest{Subject: req.Subject, Message: req.Message}
	for _, a := range req.Attachments {
		reply.Attachments = append(reply.Attachments, usecase.ReplyAttachment{
			Filename: a.Filename,
			Content:  a.Content,
			Encoding: a.Encoding,
		})
	}

	if err := h.facade.ReplyToOrder(c.Request.Context(), c.Param("id"), reply); err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to send reply")
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to fetch orders")
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to fetch orders")
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, msgOrderNotFound, "Failed to load statistics")
		return
	}

	resp := dto.StatsResponse{
		TotalOrders:  stats.Total,
		ByStatus:     make(map[string]int64, len(stats.ByStatus)),
		Revenue:      stats.Revenue,
		RecentOrders: make([]dto.OrderResponse, 0, len(stats.Recent)),
	}
	for status, n := range stats.ByStatus {
		resp.ByStatus[string(status)] = n
	}
	for i := range stats.Recent {
		resp.RecentOrders = append(resp.RecentOrders, toOrderResponse(&stats.Recent[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func toAdminUpdate(req dto.UpdateOrderRequest) usecase.AdminUpdate {
	upd := usecase.AdminUpdate{
		CustomNotes:   req.CustomNotes,
		DepositAmount: req.DepositAmount,
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status := model.OrderStatus(strings.TrimSpace(*req.Status))
		upd.Status = &status
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
		notes := strings.TrimSpace(*req.Notes)
		upd.Notes = &notes
	}
	if req.PaymentStatus != nil && strings.TrimSpace(*req.PaymentStatus) != "" {
		ps := model.PaymentStatus(strings.TrimSpace(*req.PaymentStatus))
		upd.PaymentStatus = &ps
	}
	return upd
}

func parseFilter(c *gin.Context) (model.OrderFilter, error) {
	filter := model.OrderFilter{
		Email:  c.Query("email"),
		Search: c.Query("q"),
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		status := model.OrderStatus(s)
		filter.Status = &status
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainErrors.NewValidationError(key, "must be a non-negative integer")
	}
	return n, nil
}
