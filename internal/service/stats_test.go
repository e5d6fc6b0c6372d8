package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendops/api/internal/database"
)

type mockStatsStore struct {
	row   database.GetDashboardStatsRow
	err   error
	calls int
}

func (m *mockStatsStore) GetDashboardStats(ctx context.Context) (database.GetDashboardStatsRow, error) {
	m.calls++
	return m.row, m.err
}

// memoryCache is a map-backed JSONCache.
type memoryCache struct {
	data    map[string]DashboardStats
	getErr  error
	deleted []string
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*(dst.(*DashboardStats)) = v
	return true, nil
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	m.data[key] = v.(DashboardStats)
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestStats_ComputesAndCaches(t *testing.T) {
	store := &mockStatsStore{row: database.GetDashboardStatsRow{
		TotalProducts: 12,
		TotalOrders:   7,
		PendingOrders: 3,
		TotalRevenue:  makeNumeric("15420.5"),
	}}
	c := &memoryCache{data: map[string]DashboardStats{}}
	svc := NewStatsService(store, c, time.Minute)

	stats, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalProducts: 12, TotalOrders: 7, PendingOrders: 3, TotalRevenue: "15420.50"}, stats)
	assert.Contains(t, c.data, StatsCacheKey)

	// Second read is a cache hit.
	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	assert.Equal(t, 1, store.calls)
}

func TestStats_EmptyRevenueFormatsZero(t *testing.T) {
	store := &mockStatsStore{}
	svc := NewStatsService(store, &memoryCache{data: map[string]DashboardStats{}}, time.Minute)

	stats, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.00", stats.TotalRevenue)
}

func TestStats_CacheErrorFallsThrough(t *testing.T) {
	store := &mockStatsStore{row: database.GetDashboardStatsRow{TotalOrders: 1}}
	c := &memoryCache{data: map[string]DashboardStats{}, getErr: errors.New("connection refused")}
	svc := NewStatsService(store, c, time.Minute)

	stats, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, 1, store.calls)
}

func TestStats_StoreError(t *testing.T) {
	svc := NewStatsService(&mockStatsStore{err: errors.New("boom")}, &memoryCache{data: map[string]DashboardStats{}}, time.Minute)

	_, err := svc.Get(context.Background())
	assert.Error(t, err)
}

func TestStats_Invalidate(t *testing.T) {
	c := &memoryCache{data: map[string]DashboardStats{StatsCacheKey: {TotalOrders: 9}}}
	svc := NewStatsService(&mockStatsStore{}, c, time.Minute)

	svc.Invalidate(context.Background())
	assert.Equal(t, []string{StatsCacheKey}, c.deleted)
	assert.NotContains(t, c.data, StatsCacheKey)
}
