package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appbilling "github.com/smartbiz/backend/internal/application/billing"
	"github.com/smartbiz/backend/internal/domain/billing"
)

// RedisPlanCache caches the resolved active plan per tenant in Redis. Quota
// checks run on every write path, so a cache miss here turns into two extra
// database reads per request.
type RedisPlanCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisPlanCache creates a new Redis-backed plan cache
func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{
		client:    client,
		keyPrefix: "billing:plan:",
	}
}

// NewRedisClient creates and pings a Redis client
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (c *RedisPlanCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// GetActivePlan returns the cached plan for the tenant, or (nil, nil) on a miss
func (c *RedisPlanCache) GetActivePlan(ctx context.Context, tenantID uuid.UUID) (*billing.SubscriptionPlan, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plan cache: %w", err)
	}

	var plan billing.SubscriptionPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		// A corrupt entry is treated as a miss
		return nil, nil
	}
	return &plan, nil
}

// SetActivePlan stores the tenant's resolved plan with a TTL
func (c *RedisPlanCache) SetActivePlan(ctx context.Context, tenantID uuid.UUID, plan *billing.SubscriptionPlan, ttl time.Duration) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := c.client.Set(ctx, c.key(tenantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write plan cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached plan for the tenant
func (c *RedisPlanCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan cache: %w", err)
	}
	return nil
}

// Ensure RedisPlanCache implements PlanCache
var _ appbilling.PlanCache = (*RedisPlanCache)(nil)
