package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/cache"
	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/avelinebakes/backoffice/backend-go/internal/forecast"
	"github.com/avelinebakes/backoffice/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// usageLookbackDays is how far back daily usage is loaded. Wide
	// enough that every ingredient can fill its averaging window even
	// with gaps.
	usageLookbackDays = 120

	// invoiceLookbackDays covers a year of invoices for the monthly
	// spend chart.
	invoiceLookbackDays = 365

	// topIngredientWindowDays is the usage window behind the
	// top-ingredients summary card.
	topIngredientWindowDays = 90

	// maxPopulateDays bounds a single usage roll-up request.
	maxPopulateDays = 365

	// dashboardConcurrency caps parallel per-ingredient forecast runs.
	dashboardConcurrency = 8

	topIngredientCount = 3

	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// ForecastService assembles forecasting engine inputs from the
// repository and runs the engine over them.
type ForecastService struct {
	repo  repository.ForecastRepository
	cache cache.ForecastCache
	now   func() time.Time
}

func NewForecastService(repo repository.ForecastRepository, c cache.ForecastCache) *ForecastService {
	return &ForecastService{
		repo:  repo,
		cache: c,
		now:   time.Now,
	}
}

// DemandForecast returns the actual-plus-projected usage series for one
// ingredient.
func (s *ForecastService) DemandForecast(ctx context.Context, ingredientID string) ([]forecast.ForecastPoint, error) {
	today := s.now()

	usage, err := s.repo.GetDailyUsage(ctx, today.AddDate(0, 0, -usageLookbackDays), today)
	if err != nil {
		return nil, err
	}

	commitments, err := s.repo.GetUpcomingCommitments(ctx, today, today.AddDate(0, 0, forecast.HorizonDays))
	if err != nil {
		return nil, err
	}

	return forecast.Demand(
		usageRecordsFor(ingredientID, usage),
		commitmentsFor(ingredientID, commitments),
	)
}

// CostTrend returns the per-date unit-cost series for one ingredient,
// built from verified invoice lines.
func (s *ForecastService) CostTrend(ctx context.Context, ingredientID string) ([]forecast.CostTrendPoint, error) {
	items, err := s.repo.GetVerifiedInvoiceItems(ctx, s.now().AddDate(0, 0, -invoiceLookbackDays))
	if err != nil {
		return nil, err
	}
	return forecast.CostTrend(costLinesFor(ingredientID, items))
}

// MonthlySpend sums verified invoice totals per calendar month over the
// trailing year.
func (s *ForecastService) MonthlySpend(ctx context.Context) ([]forecast.MonthlySpend, error) {
	items, err := s.repo.GetVerifiedInvoiceItems(ctx, s.now().AddDate(0, 0, -invoiceLookbackDays))
	if err != nil {
		return nil, err
	}
	return forecast.SpendByMonth(spendLines(items))
}

// ReorderAlerts returns the ranked reorder table plus the low-stock
// count for the summary card.
func (s *ForecastService) ReorderAlerts(ctx context.Context) ([]forecast.ReorderAlert, int, error) {
	ingredients, err := s.repo.GetIngredients(ctx)
	if err != nil {
		return nil, 0, err
	}

	forecasts, err := s.forecastAll(ctx, ingredients)
	if err != nil {
		return nil, 0, err
	}

	alerts := forecast.ReorderAlerts(snapshots(ingredients), forecasts)
	forecast.RankAlerts(alerts)
	return alerts, forecast.LowStockCount(alerts), nil
}

// Dashboard assembles the full forecasting view. Results are cached per
// calendar day; any write that changes the inputs should invalidate.
func (s *ForecastService) Dashboard(ctx context.Context) (*domain.ForecastDashboard, error) {
	today := s.now()
	day := today.Format(dateLayout)

	if cached, ok, err := s.cache.GetDashboard(ctx, day); err != nil {
		log.Warn().Err(err).Msg("dashboard cache read failed")
	} else if ok {
		return cached, nil
	}

	ingredients, err := s.repo.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}

	usage, err := s.repo.GetDailyUsage(ctx, today.AddDate(0, 0, -usageLookbackDays), today)
	if err != nil {
		return nil, err
	}

	commitments, err := s.repo.GetUpcomingCommitments(ctx, today, today.AddDate(0, 0, forecast.HorizonDays))
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetVerifiedInvoiceItems(ctx, today.AddDate(0, 0, -invoiceLookbackDays))
	if err != nil {
		return nil, err
	}

	forecasts, err := forecastEach(ctx, ingredients, usage, commitments)
	if err != nil {
		return nil, err
	}

	monthly, err := forecast.SpendByMonth(spendLines(items))
	if err != nil {
		return nil, err
	}

	dashboard := &domain.ForecastDashboard{
		CurrentMonthSpend: monthTotal(monthly, today.Format(monthLayout)),
		LastMonthSpend:    monthTotal(monthly, today.AddDate(0, 0, -30).Format(monthLayout)),
		MonthlySpend:      monthly,
		TopIngredients:    topIngredients(ingredients, usage, today),
		DemandForecasts:   make(map[string]domain.ForecastSeries),
		CostTrends:        make(map[string]domain.CostTrendSeries),
	}

	for _, ing := range ingredients {
		points := forecasts[ing.ID]
		if len(points) > 0 {
			dashboard.DemandForecasts[ing.ID] = domain.ForecastSeries{
				IngredientName: ing.Name,
				Data:           points,
			}
		}

		trend, err := forecast.CostTrend(costLinesFor(ing.ID, items))
		if err != nil {
			return nil, err
		}
		if len(trend) > 0 {
			dashboard.CostTrends[ing.ID] = domain.CostTrendSeries{
				IngredientName: ing.Name,
				Data:           trend,
			}
		}
	}

	alerts := forecast.ReorderAlerts(snapshots(ingredients), forecasts)
	forecast.RankAlerts(alerts)
	dashboard.ReorderAlerts = alerts
	dashboard.LowStockCount = forecast.LowStockCount(alerts)

	if err := s.cache.SetDashboard(ctx, day, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard cache write failed")
	}

	return dashboard, nil
}

// PopulateUsage rolls fulfilled-order consumption into the daily usage
// table for every day in [start, end] and returns the day count.
func (s *ForecastService) PopulateUsage(ctx context.Context, start, end time.Time) (int, error) {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if end.Before(start) {
		return 0, fmt.Errorf("end date %s is before start date %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxPopulateDays {
		return 0, fmt.Errorf("range of %d days exceeds the %d day limit", days, maxPopulateDays)
	}

	dates := make([]time.Time, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	if err := s.repo.PopulateUsageRange(ctx, dates); err != nil {
		return 0, err
	}

	log.Info().
		Str("start", start.Format(dateLayout)).
		Str("end", end.Format(dateLayout)).
		Int("days", days).
		Msg("populated daily usage")

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return days, nil
}

// CategorizeIngredient assigns a category and drops any cached
// dashboard built from the old value.
func (s *ForecastService) CategorizeIngredient(ctx context.Context, ingredientID, category string) error {
	if err := s.repo.UpdateIngredientCategory(ctx, ingredientID, category); err != nil {
		return err
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
	return nil
}

func (s *ForecastService) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.repo.GetIngredients(ctx)
}

func (s *ForecastService) forecastAll(ctx context.Context, ingredients []domain.Ingredient) (map[string][]forecast.ForecastPoint, error) {
	today := s.now()

	usage, err := s.repo.GetDailyUsage(ctx, today.AddDate(0, 0, -usageLookbackDays), today)
	if err != nil {
		return nil, err
	}

	commitments, err := s.repo.GetUpcomingCommitments(ctx, today, today.AddDate(0, 0, forecast.HorizonDays))
	if err != nil {
		return nil, err
	}

	return forecastEach(ctx, ingredients, usage, commitments)
}

// forecastEach runs the demand forecast for every ingredient in
// parallel. Ingredients with no usage history simply produce an empty
// series.
func forecastEach(ctx context.Context, ingredients []domain.Ingredient, usage []domain.UsageRow, commitments []domain.CommitmentRow) (map[string][]forecast.ForecastPoint, error) {
	usageByIngredient := make(map[string][]forecast.UsageRecord)
	for _, row := range usage {
		usageByIngredient[row.IngredientID] = append(usageByIngredient[row.IngredientID], forecast.UsageRecord{
			IngredientID: row.IngredientID,
			Date:         row.UsageDate,
			QuantityUsed: row.QuantityUsed,
		})
	}

	commitmentsByIngredient := make(map[string][]forecast.UpcomingCommitment)
	for _, row := range commitments {
		commitmentsByIngredient[row.IngredientID] = append(commitmentsByIngredient[row.IngredientID], forecast.UpcomingCommitment{
			IngredientID: row.IngredientID,
			DeliveryDate: row.DeliveryDate,
			Quantity:     row.Quantity,
		})
	}

	var mu sync.Mutex
	results := make(map[string][]forecast.ForecastPoint, len(ingredients))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardConcurrency)

	for _, ing := range ingredients {
		ing := ing
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			points, err := forecast.Demand(usageByIngredient[ing.ID], commitmentsByIngredient[ing.ID])
			if err != nil {
				return fmt.Errorf("forecast for %s: %w", ing.ID, err)
			}

			mu.Lock()
			results[ing.ID] = points
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func usageRecordsFor(ingredientID string, rows []domain.UsageRow) []forecast.UsageRecord {
	var records []forecast.UsageRecord
	for _, row := range rows {
		if row.IngredientID != ingredientID {
			continue
		}
		records = append(records, forecast.UsageRecord{
			IngredientID: row.IngredientID,
			Date:         row.UsageDate,
			QuantityUsed: row.QuantityUsed,
		})
	}
	return records
}

func commitmentsFor(ingredientID string, rows []domain.CommitmentRow) []forecast.UpcomingCommitment {
	var commitments []forecast.UpcomingCommitment
	for _, row := range rows {
		if row.IngredientID != ingredientID {
			continue
		}
		commitments = append(commitments, forecast.UpcomingCommitment{
			IngredientID: row.IngredientID,
			DeliveryDate: row.DeliveryDate,
			Quantity:     row.Quantity,
		})
	}
	return commitments
}

// costLinesFor keeps only lines matched to the ingredient with a
// readable unit cost.
func costLinesFor(ingredientID string, rows []domain.InvoiceItemRow) []forecast.InvoiceLineCost {
	var lines []forecast.InvoiceLineCost
	for _, row := range rows {
		if row.IngredientID == nil || *row.IngredientID != ingredientID || row.UnitCost == nil {
			continue
		}
		lines = append(lines, forecast.InvoiceLineCost{
			IngredientID: *row.IngredientID,
			Date:         row.InvoiceDate,
			UnitCost:     *row.UnitCost,
		})
	}
	return lines
}

// spendLines keeps every line with a known total, matched or not.
func spendLines(rows []domain.InvoiceItemRow) []forecast.InvoiceLineSpend {
	var lines []forecast.InvoiceLineSpend
	for _, row := range rows {
		if row.TotalCost == nil {
			continue
		}
		lines = append(lines, forecast.InvoiceLineSpend{
			Date:         row.InvoiceDate,
			TotalCost:    *row.TotalCost,
			SupplierName: row.SupplierName,
		})
	}
	return lines
}

func snapshots(ingredients []domain.Ingredient) []forecast.IngredientSnapshot {
	out := make([]forecast.IngredientSnapshot, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, forecast.IngredientSnapshot{
			ID:            ing.ID,
			Name:          ing.Name,
			Unit:          ing.Unit,
			CurrentStock:  ing.CurrentStock,
			MinStockLevel: ing.MinStockLevel,
		})
	}
	return out
}

func monthTotal(monthly []forecast.MonthlySpend, month string) float64 {
	for _, m := range monthly {
		if m.Month == month {
			return m.Total
		}
	}
	return 0
}

// topIngredients ranks ingredients by total usage over the trailing
// window. Usage rows for ingredients no longer in the catalog are
// skipped.
func topIngredients(ingredients []domain.Ingredient, usage []domain.UsageRow, today time.Time) []domain.TopIngredient {
	byID := make(map[string]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	cutoff := today.AddDate(0, 0, -topIngredientWindowDays).Format(dateLayout)
	totals := make(map[string]float64)
	for _, row := range usage {
		if row.UsageDate < cutoff {
			continue
		}
		if _, ok := byID[row.IngredientID]; !ok {
			continue
		}
		totals[row.IngredientID] += row.QuantityUsed
	}

	ranked := make([]domain.TopIngredient, 0, len(totals))
	for id, total := range totals {
		ing := byID[id]
		ranked = append(ranked, domain.TopIngredient{
			Name:  ing.Name,
			Usage: total,
			Unit:  ing.Unit,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Usage != ranked[j].Usage {
			return ranked[i].Usage > ranked[j].Usage
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > topIngredientCount {
		ranked = ranked[:topIngredientCount]
	}
	return ranked
}
