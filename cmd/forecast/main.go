package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/cache"
	"github.com/avelinebakes/backoffice/backend-go/internal/config"
	"github.com/avelinebakes/backoffice/backend-go/internal/repository/postgres"
	"github.com/avelinebakes/backoffice/backend-go/internal/service"
	"github.com/avelinebakes/backoffice/backend-go/pkg/logger"
)

const dateLayout = "2006-01-02"

// Offline forecast runner for cron jobs and ad-hoc inspection. Reads
// the same configuration as the server and prints JSON to stdout.
func main() {
	mode := flag.String("mode", "alerts", "What to run (alerts, dashboard, demand, populate)")
	ingredientID := flag.String("ingredient-id", "", "Ingredient ID for demand mode")
	startStr := flag.String("start", "", "Start date for populate mode (YYYY-MM-DD)")
	endStr := flag.String("end", time.Now().Format(dateLayout), "End date for populate mode (YYYY-MM-DD)")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall run timeout")
	flag.Parse()

	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	svc := service.NewForecastService(postgres.NewForecastRepository(db), cache.NewNoopForecastCache())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	switch *mode {
	case "alerts":
		alerts, lowStock, err := svc.ReorderAlerts(ctx)
		if err != nil {
			log.Fatalf("Failed to build reorder alerts: %v", err)
		}
		printJSON(map[string]interface{}{
			"alerts":          alerts,
			"low_stock_count": lowStock,
		})

	case "dashboard":
		dashboard, err := svc.Dashboard(ctx)
		if err != nil {
			log.Fatalf("Failed to build dashboard: %v", err)
		}
		printJSON(dashboard)

	case "demand":
		if *ingredientID == "" {
			log.Fatal("Ingredient ID is required for demand mode (use -ingredient-id flag)")
		}
		points, err := svc.DemandForecast(ctx, *ingredientID)
		if err != nil {
			log.Fatalf("Failed to build demand forecast: %v", err)
		}
		printJSON(points)

	case "populate":
		if *startStr == "" {
			log.Fatal("Start date is required for populate mode (use -start flag)")
		}
		startDate, err := time.Parse(dateLayout, *startStr)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
		endDate, err := time.Parse(dateLayout, *endStr)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
		days, err := svc.PopulateUsage(ctx, startDate, endDate)
		if err != nil {
			log.Fatalf("Failed to populate usage: %v", err)
		}
		log.Printf("Populated usage for %d days in %v", days, time.Since(start))
		return

	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}

	log.Printf("Completed %s in %v", *mode, time.Since(start))
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
