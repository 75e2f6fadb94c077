package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/config"
	"github.com/avelinebakes/backoffice/backend-go/internal/invoices"
	"github.com/avelinebakes/backoffice/backend-go/internal/repository/postgres"
	"github.com/avelinebakes/backoffice/backend-go/internal/storage"
	"github.com/avelinebakes/backoffice/backend-go/pkg/logger"
	"github.com/gorilla/mux"
)

// The ingest server handles invoice scan uploads separately from the
// main API so large multipart bodies and slow OCR calls never tie up
// dashboard traffic.
func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store, err := storage.NewMinioStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	extractor, err := invoices.NewHTTPExtractor(cfg.OCR)
	if err != nil {
		log.Fatalf("Failed to initialize OCR extractor: %v", err)
	}

	invoiceService := invoices.NewService(store, extractor)
	handler := invoices.NewHandler(invoiceService, postgres.NewForecastRepository(db))

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.IngestPort,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.IngestPort).Msg("Starting ingest server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start ingest server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down ingest server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Ingest server forced to shutdown")
	}

	logger.Log.Info().Msg("Ingest server exiting")
}
