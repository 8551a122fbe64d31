package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"freight-matching-service/internal/domain"
)

func newTestRedisCache(t *testing.T) (*RedisDistanceCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisDistanceCache(rdb, time.Hour), mr
}

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	origin := "33.74900,-84.38800"
	put := map[string]domain.DistanceResult{
		"34.91610,-85.10770": {
			DistanceKm:      175.2,
			Method:          domain.MethodRoadNetwork,
			DriveTimeHours:  2.1,
			UsedRoadNetwork: true,
		},
		"32.08350,-81.09980": {
			DistanceKm: 397.4,
			Method:     domain.MethodGreatCircle,
		},
	}
	if err := c.PutMany(ctx, origin, put); err != nil {
		t.Fatalf("PutMany failed: %v", err)
	}

	got, err := c.GetMany(ctx, origin, []string{
		"34.91610,-85.10770",
		"32.08350,-81.09980",
		"31.58040,-84.15570",
	})
	if err != nil {
		t.Fatalf("GetMany failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 cached results, got %d", len(got))
	}

	ringgold := got["34.91610,-85.10770"]
	if ringgold.DistanceKm != 175.2 || !ringgold.UsedRoadNetwork {
		t.Errorf("unexpected cached result for first destination: %+v", ringgold)
	}
	savannah := got["32.08350,-81.09980"]
	if savannah.Method != domain.MethodGreatCircle {
		t.Errorf("expected a great circle result for second destination, got %+v", savannah)
	}
}

func TestRedisDistanceCacheEntriesExpire(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	origin := "33.74900,-84.38800"
	if err := c.PutMany(ctx, origin, map[string]domain.DistanceResult{
		"34.91610,-85.10770": {DistanceKm: 175.2},
	}); err != nil {
		t.Fatalf("PutMany failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	got, err := c.GetMany(ctx, origin, []string{"34.91610,-85.10770"})
	if err != nil {
		t.Fatalf("GetMany failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected the entry to expire after the ttl, got %d results", len(got))
	}
}

func TestRedisDistanceCacheRejectsEmptyOrigin(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	if _, err := c.GetMany(ctx, "", []string{"dest"}); err == nil {
		t.Errorf("expected an error for an empty origin on GetMany")
	}
	if err := c.PutMany(ctx, "", map[string]domain.DistanceResult{"dest": {}}); err == nil {
		t.Errorf("expected an error for an empty origin on PutMany")
	}
}
