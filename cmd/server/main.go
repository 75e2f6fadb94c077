package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/api"
	"github.com/avelinebakes/backoffice/backend-go/internal/cache"
	"github.com/avelinebakes/backoffice/backend-go/internal/catalog"
	"github.com/avelinebakes/backoffice/backend-go/internal/config"
	"github.com/avelinebakes/backoffice/backend-go/internal/repository/postgres"
	"github.com/avelinebakes/backoffice/backend-go/internal/service"
	"github.com/avelinebakes/backoffice/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		forecastCache = cache.NewNoopForecastCache()
	}

	forecastRepo := postgres.NewForecastRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	services := &api.Services{
		ForecastService: service.NewForecastService(forecastRepo, forecastCache),
		OrderService:    service.NewOrderService(orderRepo, forecastCache),
		Categorizer:     catalog.NewDefaultCategorizer(),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
