package cache

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	PlanKeyPrefix  = "plan:"
	DefaultPlanTTL = 30 * time.Minute
)

// RedisPlanCache stores finished plans keyed by input fingerprint.
type RedisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	if ttl <= 0 {
		ttl = DefaultPlanTTL
	}
	return &RedisPlanCache{client: client, ttl: ttl}
}

// Connect to the server named by a redis:// URL and verify it answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("dial redis: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("dial redis: ping: %w", err)
	}

	return client, nil
}

func planKey(fingerprint string) string {
	return PlanKeyPrefix + fingerprint
}

func (c *RedisPlanCache) Get(ctx context.Context, fingerprint string) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	data, err := c.client.Get(ctx, planKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("plan cache get: %w", err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("plan cache get: decode: %w", err)
	}
	return &plan, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, fingerprint string, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if fingerprint == "" {
		return errors.New("plan cache put: fingerprint must not be empty")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("plan cache put: encode: %w", err)
	}

	if err := c.client.Set(ctx, planKey(fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("plan cache put: %w", err)
	}
	return nil
}
