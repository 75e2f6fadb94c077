package service

import (
	"context"

	"github.com/avelinebakes/backoffice/backend-go/internal/cache"
	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/avelinebakes/backoffice/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// OrderService is the thin order-intake layer. Status changes feed the
// commitment and usage inputs, so they invalidate the dashboard cache.
type OrderService struct {
	repo  repository.OrderRepository
	cache cache.ForecastCache
}

func NewOrderService(repo repository.OrderRepository, c cache.ForecastCache) *OrderService {
	return &OrderService{repo: repo, cache: c}
}

func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	return s.repo.ListOrders(ctx, filter)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	log.Info().
		Str("order_id", orderID).
		Str("status", string(status)).
		Msg("order status updated")
	return nil
}
