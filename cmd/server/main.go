package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"freight-matching-service/internal/adapters/cache"
	"freight-matching-service/internal/adapters/graph"
	"freight-matching-service/internal/adapters/repositories"
	"freight-matching-service/internal/api"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/platform/db"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Overpass, Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// Seed the contract lanes and demo orders on startup for local runs.
	if err := seedStore(store, cfg); err != nil {
		log.Fatal(err)
	}

	distCache, err := buildDistanceCache(cfg, store)
	if err != nil {
		log.Fatal(err)
	}

	networkCache := cache.NewNetworkCache()
	go evictLoop(networkCache, cfg.CacheMaxAge())

	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatal(err)
	}

	oracle := services.NewDistanceOracle(provider, networkCache, distCache, services.OracleConfig{
		FallbackSpeedKmh: cfg.FallbackSpeedKmh,
		MaxAreaKm2:       cfg.MaxAreaKm2,
		BasePaddingKm:    cfg.BasePaddingKm,
		MinPaddingKm:     cfg.MinPaddingKm,
		MaxPaddingKm:     cfg.MaxPaddingKm,
		StopMinutes:      cfg.StopMinutes,
	})
	validator := services.NewConstraintValidator(oracle, services.ValidatorConfig{
		ProximityLimitKm: cfg.ProximityLimitKm,
		MaxRouteHours:    cfg.MaxRouteHours,
	})
	profit := services.NewProfitabilityEngine(oracle, cfg.CostPerMile)
	pool := services.NewPendingPool()
	matcher := services.NewMatcher(validator, profit, pool, services.MatcherConfig{
		RequirePositiveDelta: cfg.RequirePositiveDelta,
	})
	aggregator := services.NewAggregator(services.AggregatorConfig{
		MaxCombinationSize: cfg.MaxCombinationSize,
		CapacityM3:         cfg.TruckCapacityM3,
		MaxWeightLbs:       cfg.TruckWeightLbs,
	})
	generator := services.NewRouteGenerator(oracle, services.DefaultRouteGenConfig())
	batch := services.NewBatchMatcher(matcher, profit, pool, aggregator, generator, services.BatchConfig{
		Concurrency:    cfg.BatchConcurrency,
		GenerateRoutes: true,
		MaxProposals:   cfg.MaxGeneratedRoutes,
	})

	repo := repositories.NewSQLOrderRepository(store)
	router := api.NewRouter(repo, oracle, matcher, batch)

	log.Printf("Server listening addr=:%s store=%s distance_cache=%s",
		cfg.Port, cfg.StoreBackend, cfg.DistanceCacheBackend)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openStore(cfg config.Config) (*sql.DB, error) {
	switch cfg.StoreBackend {
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, errors.New("open store: DATABASE_URL is required for the postgres backend")
		}
		store, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitPostgresSchema(store); err != nil {
			return nil, err
		}
		return store, nil

	case "sqlite":
		store, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitSchema(store); err != nil {
			return nil, err
		}
		return store, nil
	}

	return nil, fmt.Errorf("open store: unknown backend %q", cfg.StoreBackend)
}

// seedStore loads the contract lanes and demo orders. Missing seed
// files are skipped so a production deployment can run without them.
func seedStore(store *sql.DB, cfg config.Config) error {
	type seeder struct {
		path string
		run  func(*sql.DB, string) error
	}

	var seeds []seeder
	if cfg.StoreBackend == "postgres" {
		seeds = []seeder{
			{cfg.ContractsSeedPath, repositories.SeedPostgresContractsFromJSON},
			{cfg.OrdersSeedPath, repositories.SeedPostgresOrdersFromJSON},
		}
	} else {
		seeds = []seeder{
			{cfg.ContractsSeedPath, repositories.SeedContractsFromJSON},
			{cfg.OrdersSeedPath, repositories.SeedOrdersFromJSON},
		}
	}

	for _, s := range seeds {
		if _, err := os.Stat(s.path); err != nil {
			log.Printf("seed file missing, skipped path=%s", s.path)
			continue
		}
		if err := s.run(store, s.path); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	return nil
}

// buildDistanceCache selects the pairwise distance cache backend. A nil
// cache is valid; the oracle then recomputes every pair.
func buildDistanceCache(cfg config.Config, store *sql.DB) (ports.DistanceCache, error) {
	switch cfg.DistanceCacheBackend {
	case "none":
		return nil, nil

	case "memory":
		return cache.NewMemoryDistanceCache(cfg.CacheMaxAge(), 10*time.Minute), nil

	case "sqlite":
		if cfg.StoreBackend == "sqlite" {
			return cache.NewSqliteDistanceCache(store), nil
		}
		sdb, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitSchema(sdb); err != nil {
			return nil, err
		}
		return cache.NewSqliteDistanceCache(sdb), nil

	case "postgres":
		if cfg.StoreBackend == "postgres" {
			return cache.NewSQLDistanceCache(store), nil
		}
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, errors.New("distance cache: DATABASE_URL is required for the postgres backend")
		}
		pdb, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitPostgresSchema(pdb); err != nil {
			return nil, err
		}
		return cache.NewSQLDistanceCache(pdb), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("distance cache: ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisDistanceCache(rdb, cfg.CacheMaxAge()), nil
	}

	return nil, fmt.Errorf("distance cache: unknown backend %q", cfg.DistanceCacheBackend)
}

// buildProvider wires the Overpass road-network provider. An empty URL
// disables road-network retrieval; the oracle falls back to
// great-circle estimates.
func buildProvider(cfg config.Config) (ports.GraphProvider, error) {
	if strings.TrimSpace(cfg.OverpassURL) == "" {
		log.Printf("road network disabled, using great-circle estimates")
		return nil, nil
	}

	provider, err := graph.NewOverpassProvider(cfg.OverpassURL, cfg.NetworkTimeout())
	if err != nil {
		return nil, fmt.Errorf("build provider: %w", err)
	}
	return provider, nil
}

// evictLoop drops expired road networks so a long-running server does
// not keep serving stale map data.
func evictLoop(nc *cache.NetworkCache, maxAge time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if n := nc.EvictExpired(maxAge); n > 0 {
			log.Printf("network cache evicted=%d max_age=%s", n, maxAge)
		}
	}
}
