package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

// RedisDistanceCache stores distance results in Redis so that several
// service instances can share one warm cache. Entries expire after ttl.
type RedisDistanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDistanceCache(rdb *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{rdb: rdb, ttl: ttl}
}

func distanceKey(origin, destination string) string {
	return "dist:" + origin + "|" + destination
}

func (r *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]domain.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.redis.GetMany")(&err)

	if r.rdb == nil {
		return nil, errors.New("redis distance cache: client is nil")
	}

	if origin == "" {
		return nil, errors.New("get distance cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]domain.DistanceResult{}, nil
	}

	keys := make([]string, 0, len(destinations))
	dests := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if d == "" {
			continue
		}
		keys = append(keys, distanceKey(origin, d))
		dests = append(dests, d)
	}

	if len(keys) == 0 {
		return map[string]domain.DistanceResult{}, nil
	}

	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get distance cache: redis mget: %w", err)
	}

	out := make(map[string]domain.DistanceResult, len(vals))
	for i, v := range vals {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("get distance cache: unexpected value type %T for key %q", v, keys[i])
		}

		var res domain.DistanceResult
		if err := json.Unmarshal([]byte(raw), &res); err != nil {
			return nil, fmt.Errorf("get distance cache: decode key %q: %w", keys[i], err)
		}
		out[dests[i]] = res
	}

	return out, nil
}

func (r *RedisDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]domain.DistanceResult,
) error {
	if r.rdb == nil {
		return errors.New("redis distance cache: client is nil")
	}

	if origin == "" {
		return errors.New("insert distance cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.rdb.Pipeline()
	for dest, res := range results {
		if dest == "" {
			return errors.New("insert distance cache: empty destination key")
		}

		b, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("insert distance cache: encode dest=%q: %w", dest, err)
		}
		pipe.Set(ctx, distanceKey(origin, dest), b, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert distance cache: redis pipeline: %w", err)
	}

	return nil
}
