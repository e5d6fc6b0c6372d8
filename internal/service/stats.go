package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/telemetry"
	"go.uber.org/zap"
)

const StatsCacheKey = "vendops:stats"

// StatsStore is satisfied by *database.Queries.
type StatsStore interface {
	GetDashboardStats(ctx context.Context) (database.GetDashboardStatsRow, error)
}

// JSONCache is satisfied by *cache.Client and cache.Nop.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalProducts int64  `json:"total_products"`
	TotalOrders   int64  `json:"total_orders"`
	PendingOrders int64  `json:"pending_orders"`
	TotalRevenue  string `json:"total_revenue"`
}

// StatsService serves dashboard aggregates through a read-through cache.
type StatsService struct {
	store StatsStore
	cache JSONCache
	ttl   time.Duration
}

func NewStatsService(store StatsStore, cache JSONCache, ttl time.Duration) *StatsService {
	return &StatsService{store: store, cache: cache, ttl: ttl}
}

// Get returns cached stats when present, otherwise computes and caches them.
// Cache failures fall through to the database.
func (s *StatsService) Get(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	hit, err := s.cache.GetJSON(ctx, StatsCacheKey, &stats)
	if err != nil {
		zap.L().Warn("stats cache read failed", zap.Error(err))
	}
	if hit {
		telemetry.StatsCacheResultsTotal.WithLabelValues("hit").Inc()
		return stats, nil
	}
	telemetry.StatsCacheResultsTotal.WithLabelValues("miss").Inc()

	row, err := s.store.GetDashboardStats(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("get dashboard stats: %w", err)
	}
	stats = DashboardStats{
		TotalProducts: row.TotalProducts,
		TotalOrders:   row.TotalOrders,
		PendingOrders: row.PendingOrders,
		TotalRevenue:  numericToDecimal(row.TotalRevenue).StringFixed(2),
	}

	if err := s.cache.SetJSON(ctx, StatsCacheKey, stats, s.ttl); err != nil {
		zap.L().Warn("stats cache write failed", zap.Error(err))
	}
	return stats, nil
}

// Invalidate drops the cached stats. Errors are logged only.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, StatsCacheKey); err != nil {
		zap.L().Warn("stats cache invalidate failed", zap.Error(err))
	}
}
