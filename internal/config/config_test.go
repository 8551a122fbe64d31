package config

import (
	"math"
	"os"
	"testing"
	"time"
)

// clearEnv unsets the given variables for the duration of the test so
// defaults are observable regardless of the ambient environment.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t,
		"PORT", "STORE_BACKEND", "DISTANCE_CACHE_BACKEND",
		"PROXIMITY_LIMIT_KM", "TRUCK_CAPACITY_M3", "TRUCK_WEIGHT_LBS",
		"MAX_ROUTE_HOURS", "STOP_MINUTES", "COST_PER_MILE",
		"REQUIRE_POSITIVE_DELTA", "NETWORK_TIMEOUT_SECONDS", "CACHE_MAX_AGE_HOURS",
	)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Port != "8080" {
		t.Errorf("Port = %q, want 8080", c.Port)
	}
	if c.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %q, want sqlite", c.StoreBackend)
	}
	if c.DistanceCacheBackend != "memory" {
		t.Errorf("DistanceCacheBackend = %q, want memory", c.DistanceCacheBackend)
	}
	if c.ProximityLimitKm != 1.0 {
		t.Errorf("ProximityLimitKm = %v, want 1.0", c.ProximityLimitKm)
	}
	if c.TruckCapacityM3 != 48 || c.TruckWeightLbs != 9180 {
		t.Errorf("capacity = %v m3 / %v lbs, want 48 / 9180", c.TruckCapacityM3, c.TruckWeightLbs)
	}
	if c.MaxRouteHours != 10 || c.StopMinutes != 15 {
		t.Errorf("route limits = %v h / %v min stop, want 10 / 15", c.MaxRouteHours, c.StopMinutes)
	}
	if math.Abs(c.CostPerMile-1.693846154) > 1e-9 {
		t.Errorf("CostPerMile = %v, want 1.693846154", c.CostPerMile)
	}
	if !c.RequirePositiveDelta {
		t.Error("RequirePositiveDelta = false, want true by default")
	}
	if c.NetworkTimeout() != 30*time.Second {
		t.Errorf("NetworkTimeout = %v, want 30s", c.NetworkTimeout())
	}
	if c.CacheMaxAge() != 24*time.Hour {
		t.Errorf("CacheMaxAge = %v, want 24h", c.CacheMaxAge())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DISTANCE_CACHE_BACKEND", "redis")
	t.Setenv("PROXIMITY_LIMIT_KM", "2.5")
	t.Setenv("REQUIRE_POSITIVE_DELTA", "false")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Port != "9090" {
		t.Errorf("Port = %q, want 9090", c.Port)
	}
	if c.DistanceCacheBackend != "redis" {
		t.Errorf("DistanceCacheBackend = %q, want redis", c.DistanceCacheBackend)
	}
	if c.ProximityLimitKm != 2.5 {
		t.Errorf("ProximityLimitKm = %v, want 2.5", c.ProximityLimitKm)
	}
	if c.RequirePositiveDelta {
		t.Error("RequirePositiveDelta = true, want false")
	}
}

func TestGetFallback(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "set")
	if got := Get("CONFIG_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("Get = %q, want set", got)
	}
	if got := Get("CONFIG_TEST_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}
}
