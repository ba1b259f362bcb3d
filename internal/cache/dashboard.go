package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix = "dashboard:"
	scanBatchSize      = 100
)

// DashboardCache memoizes serialized dashboard views.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache returns a Redis backed cache, or a no-op one when caching is disabled.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode dashboard cache %s: %w", key, err)
	}

	return true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode dashboard cache %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (n *noopDashboardCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// BuildKey derives the cache key of one view. The reference date is part of
// the key because overdue classification changes at midnight.
func BuildKey(view string, criteria domain.Criteria, referenceDate time.Time) string {
	parts := []string{"date=" + referenceDate.Format("2006-01-02")}
	if criteria.Status != "" {
		parts = append(parts, "status="+criteria.Status)
	}
	if criteria.Collection != "" {
		parts = append(parts, "collection="+criteria.Collection)
	}
	if criteria.Branch != "" {
		parts = append(parts, "branch="+criteria.Branch)
	}
	if criteria.Month != "" {
		parts = append(parts, "month="+criteria.Month)
	}
	if criteria.Year != 0 {
		parts = append(parts, "year="+strconv.Itoa(criteria.Year))
	}
	if criteria.Department != "" {
		parts = append(parts, "department="+criteria.Department)
	}
	if criteria.Category != "" {
		parts = append(parts, "category="+criteria.Category)
	}
	sort.Strings(parts)

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s%s:%s", dashboardKeyPrefix, view, hex.EncodeToString(hash[:]))
}
