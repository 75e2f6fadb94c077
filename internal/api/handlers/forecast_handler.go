package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/forecast"
	"github.com/avelinebakes/backoffice/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetDemand(c *gin.Context) {
	ingredientID := strings.TrimSpace(c.Query("ingredient_id"))
	if ingredientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient_id is required"})
		return
	}

	points, err := h.service.DemandForecast(c.Request.Context(), ingredientID)
	if err != nil {
		forecastError(c, "failed to build demand forecast", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient_id": ingredientID,
		"data":          points,
	})
}

func (h *ForecastHandler) GetCostTrend(c *gin.Context) {
	ingredientID := strings.TrimSpace(c.Query("ingredient_id"))
	if ingredientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient_id is required"})
		return
	}

	points, err := h.service.CostTrend(c.Request.Context(), ingredientID)
	if err != nil {
		forecastError(c, "failed to build cost trend", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient_id": ingredientID,
		"data":          points,
	})
}

func (h *ForecastHandler) GetMonthlySpend(c *gin.Context) {
	months, err := h.service.MonthlySpend(c.Request.Context())
	if err != nil {
		forecastError(c, "failed to build monthly spend", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": months})
}

func (h *ForecastHandler) GetReorderAlerts(c *gin.Context) {
	alerts, lowStock, err := h.service.ReorderAlerts(c.Request.Context())
	if err != nil {
		forecastError(c, "failed to build reorder alerts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts":          alerts,
		"low_stock_count": lowStock,
	})
}

func (h *ForecastHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		forecastError(c, "failed to build dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

type populateUsageRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func (h *ForecastHandler) PopulateUsage(c *gin.Context) {
	var req populateUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	days, err := h.service.PopulateUsage(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days_populated": days})
}

// forecastError maps engine validation failures to 400 and everything
// else to 500.
func forecastError(c *gin.Context, message string, err error) {
	var vErr *forecast.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
}
