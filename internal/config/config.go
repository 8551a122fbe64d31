package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment-driven configuration surface of the
// service. Every field has a sane default; deployments override what
// they need.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Entity storage. The default SQLite store is per-instance;
	// "postgres" switches to the shared database at DatabaseURL.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"sqlite"`
	DBPath       string `envconfig:"DB_PATH" default:"data/freight.db"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	// Pairwise distance cache backend: memory, sqlite, postgres,
	// redis or none.
	DistanceCacheBackend string `envconfig:"DISTANCE_CACHE_BACKEND" default:"memory"`
	RedisAddr            string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	// Road-network retrieval. An empty OverpassURL disables the road
	// network entirely; distances then degrade to great-circle.
	OverpassURL           string  `envconfig:"OVERPASS_URL" default:"https://overpass-api.de/api/interpreter"`
	NetworkTimeoutSeconds int     `envconfig:"NETWORK_TIMEOUT_SECONDS" default:"30"`
	MaxAreaKm2            float64 `envconfig:"MAX_AREA_KM2" default:"50000"`
	BasePaddingKm         float64 `envconfig:"BASE_PADDING_KM" default:"10"`
	MinPaddingKm          float64 `envconfig:"MIN_PADDING_KM" default:"5"`
	MaxPaddingKm          float64 `envconfig:"MAX_PADDING_KM" default:"50"`
	FallbackSpeedKmh      float64 `envconfig:"FALLBACK_SPEED_KMH" default:"80"`
	CacheMaxAgeHours      float64 `envconfig:"CACHE_MAX_AGE_HOURS" default:"24"`

	// Matching constraints.
	ProximityLimitKm float64 `envconfig:"PROXIMITY_LIMIT_KM" default:"1.0"`
	TruckCapacityM3  float64 `envconfig:"TRUCK_CAPACITY_M3" default:"48"`
	TruckWeightLbs   float64 `envconfig:"TRUCK_WEIGHT_LBS" default:"9180"`
	MaxRouteHours    float64 `envconfig:"MAX_ROUTE_HOURS" default:"10"`
	StopMinutes      int     `envconfig:"STOP_MINUTES" default:"15"`

	// Economics. CostPerMile is the all-in operating cost used for
	// detour pricing; dispatch can update it at runtime through the
	// profitability engine.
	CostPerMile          float64 `envconfig:"COST_PER_MILE" default:"1.693846154"`
	RequirePositiveDelta bool    `envconfig:"REQUIRE_POSITIVE_DELTA" default:"true"`

	// Pooling and new-route generation.
	MaxCombinationSize int `envconfig:"MAX_COMBINATION_SIZE" default:"5"`
	MaxGeneratedRoutes int `envconfig:"MAX_GENERATED_ROUTES" default:"10"`
	BatchConcurrency   int `envconfig:"BATCH_CONCURRENCY" default:"5"`

	// Startup seeding for local runs. Missing files are skipped.
	ContractsSeedPath string `envconfig:"CONTRACTS_SEED_PATH" default:"data/seeds/contracts.json"`
	OrdersSeedPath    string `envconfig:"ORDERS_SEED_PATH" default:"data/seeds/orders.json"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// NetworkTimeout returns the road-network retrieval timeout as a duration.
func (c Config) NetworkTimeout() time.Duration {
	return time.Duration(c.NetworkTimeoutSeconds) * time.Second
}

// CacheMaxAge returns the network cache expiry as a duration.
func (c Config) CacheMaxAge() time.Duration {
	return time.Duration(c.CacheMaxAgeHours * float64(time.Hour))
}

// Get returns the named environment variable or the fallback when unset.
// For the odd lookup outside the typed Config surface.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
