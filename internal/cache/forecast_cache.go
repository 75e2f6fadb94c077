package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/config"
	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix = "forecasting:dashboard"
	scanBatchSize      = 100
)

// ForecastCache holds the assembled dashboard between runs. The
// dashboard is anchored to a calendar date, so the key carries it.
type ForecastCache interface {
	GetDashboard(ctx context.Context, day string) (*domain.ForecastDashboard, bool, error)
	SetDashboard(ctx context.Context, day string, dashboard *domain.ForecastDashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{client: client, ttl: ttl}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) GetDashboard(ctx context.Context, day string) (*domain.ForecastDashboard, bool, error) {
	payload, err := c.client.Get(ctx, dashboardKey(day)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.ForecastDashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisForecastCache) SetDashboard(ctx context.Context, day string, dashboard *domain.ForecastDashboard) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, dashboardKey(day), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (n *noopForecastCache) GetDashboard(ctx context.Context, day string) (*domain.ForecastDashboard, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) SetDashboard(ctx context.Context, day string, dashboard *domain.ForecastDashboard) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func dashboardKey(day string) string {
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, day)
}
