package api

import (
	"strings"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/api/handlers"
	"github.com/avelinebakes/backoffice/backend-go/internal/api/middleware"
	"github.com/avelinebakes/backoffice/backend-go/internal/catalog"
	"github.com/avelinebakes/backoffice/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	ForecastService *service.ForecastService
	OrderService    *service.OrderService
	Categorizer     *catalog.Categorizer
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			forecastGroup := apiGroup.Group("/forecasting")
			{
				forecastGroup.GET("/demand", forecastHandler.GetDemand)
				forecastGroup.GET("/cost_trend", forecastHandler.GetCostTrend)
				forecastGroup.GET("/monthly_spend", forecastHandler.GetMonthlySpend)
				forecastGroup.GET("/reorder_alerts", forecastHandler.GetReorderAlerts)
				forecastGroup.GET("/dashboard", forecastHandler.GetDashboard)
				forecastGroup.POST("/populate_usage", forecastHandler.PopulateUsage)
			}

			ingredientHandler := handlers.NewIngredientHandler(services.ForecastService, services.Categorizer)
			ingredientGroup := apiGroup.Group("/ingredients")
			{
				ingredientGroup.GET("", ingredientHandler.List)
				ingredientGroup.GET("/categories", ingredientHandler.GetCategories)
				ingredientGroup.POST("/:id/categorize", ingredientHandler.Categorize)
			}
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			orderGroup := apiGroup.Group("/orders")
			{
				orderGroup.GET("", orderHandler.List)
				orderGroup.PATCH("/:id/status", orderHandler.UpdateStatus)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
