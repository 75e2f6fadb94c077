package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/avelinebakes/backoffice/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) parseFilter(c *gin.Context) domain.OrderFilter {
	filter := domain.OrderFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = domain.OrderStatus(status)
	}
	if from := strings.TrimSpace(c.Query("from_date")); from != "" {
		filter.FromDate = from
	}
	if to := strings.TrimSpace(c.Query("to_date")); to != "" {
		filter.ToDate = to
	}

	return filter
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := h.parseFilter(c)
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
		return
	}

	if err := h.service.UpdateOrderStatus(c.Request.Context(), orderID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   status,
	})
}
