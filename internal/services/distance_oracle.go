package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/roadnet"
)

// OracleConfig holds the distance calculation tunables.
type OracleConfig struct {
	FallbackSpeedKmh float64
	MaxAreaKm2       float64
	BasePaddingKm    float64
	MinPaddingKm     float64
	MaxPaddingKm     float64
	StopMinutes      int
}

func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		FallbackSpeedKmh: 80.0,
		MaxAreaKm2:       50000.0,
		BasePaddingKm:    10.0,
		MinPaddingKm:     5.0,
		MaxPaddingKm:     50.0,
		StopMinutes:      15,
	}
}

// DistanceOracle computes distances between coordinates, preferring the
// road network and degrading to a great-circle estimate whenever the
// network cannot serve a request. Infrastructure failures never surface
// as errors; the result's method and diagnostic note carry them instead.
//
// The oracle is safe for concurrent use.
type DistanceOracle struct {
	provider      ports.GraphProvider
	networkCache  ports.NetworkCache
	distanceCache ports.DistanceCache
	cfg           OracleConfig
}

// NewDistanceOracle wires an oracle. provider, networkCache and
// distanceCache may each be nil; the oracle then runs great-circle only
// or uncached.
func NewDistanceOracle(
	provider ports.GraphProvider,
	networkCache ports.NetworkCache,
	distanceCache ports.DistanceCache,
	cfg OracleConfig,
) *DistanceOracle {
	if cfg.FallbackSpeedKmh <= 0 {
		cfg.FallbackSpeedKmh = 80.0
	}

	return &DistanceOracle{
		provider:      provider,
		networkCache:  networkCache,
		distanceCache: distanceCache,
		cfg:           cfg,
	}
}

// coordKey renders a coordinate as a canonical cache key. Five decimal
// places keep distinct points about a meter apart distinct.
func coordKey(c domain.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

// CalculateDistance resolves the distance and drive time from a to b.
// Only invalid coordinates and context cancellation produce errors.
func (o *DistanceOracle) CalculateDistance(
	ctx context.Context,
	a, b domain.Coordinate,
) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "oracle.CalculateDistance")(&err)

	if err := a.Validate(); err != nil {
		return domain.DistanceResult{}, fmt.Errorf("calculate distance: origin: %w", err)
	}
	if err := b.Validate(); err != nil {
		return domain.DistanceResult{}, fmt.Errorf("calculate distance: destination: %w", err)
	}

	origin := coordKey(a)
	dest := coordKey(b)

	// Check the distance cache before any road-network work. A failing
	// cache degrades to a recompute, never to an error.
	if o.distanceCache != nil {
		hits, err := o.distanceCache.GetMany(ctx, origin, []string{dest})
		if err != nil {
			log.Printf("distance cache read failed: %v", err)
		} else if r, ok := hits[dest]; ok {
			return r, nil
		}
	}

	res, err := o.computeDistance(ctx, a, b)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	// Only road-network results are worth keeping. Caching a fallback
	// would keep serving the degraded estimate after the provider
	// recovers, for the full TTL.
	if o.distanceCache != nil && res.UsedRoadNetwork {
		put := map[string]domain.DistanceResult{dest: res}
		if err := o.distanceCache.PutMany(ctx, origin, put); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}

	return res, nil
}

func (o *DistanceOracle) computeDistance(
	ctx context.Context,
	a, b domain.Coordinate,
) (domain.DistanceResult, error) {
	points := []domain.Coordinate{a, b}
	padding := domain.AdaptivePadding(points, o.cfg.BasePaddingKm, o.cfg.MinPaddingKm, o.cfg.MaxPaddingKm)

	box, err := domain.BoundingBoxFromPoints(points, padding)
	if err != nil {
		return o.greatCircle(a, b, fmt.Sprintf("bounding box: %v", err)), nil
	}

	g, note, err := o.graphFor(ctx, box)
	if err != nil {
		return domain.DistanceResult{}, err
	}
	if g == nil {
		return o.greatCircle(a, b, note), nil
	}

	fromID, ok := g.NearestNode(a)
	if !ok {
		return o.greatCircle(a, b, "no road nodes near origin"), nil
	}
	toID, ok := g.NearestNode(b)
	if !ok {
		return o.greatCircle(a, b, "no road nodes near destination"), nil
	}

	path, err := g.ShortestPath(fromID, toID)
	if err != nil {
		if errors.Is(err, roadnet.ErrNoPath) {
			return o.greatCircle(a, b, "no road path found"), nil
		}
		return o.greatCircle(a, b, fmt.Sprintf("shortest path: %v", err)), nil
	}

	return domain.DistanceResult{
		DistanceKm:      path.DistanceKm(),
		Method:          domain.MethodRoadNetwork,
		DriveTimeHours:  path.DriveTimeHours(),
		UsedRoadNetwork: true,
	}, nil
}

// graphFor returns the road network covering box, or nil and a
// diagnostic note naming why none could be had. A cached containing
// network is used even when the box is over the size limit; that
// download is already paid for. The returned error is non-nil only for
// context cancellation.
func (o *DistanceOracle) graphFor(
	ctx context.Context,
	box domain.BoundingBox,
) (*roadnet.Graph, string, error) {
	if o.networkCache != nil {
		if entry, ok := o.networkCache.Get(box); ok {
			return entry.Graph, "", nil
		}
	}

	if box.OverSizeLimit(o.cfg.MaxAreaKm2) {
		note := fmt.Sprintf("bounding box area %.0f km2 over the %.0f km2 limit",
			box.AreaKm2(), o.cfg.MaxAreaKm2)
		return nil, note, nil
	}

	if o.provider == nil || !o.provider.Available() {
		return nil, "road network provider unavailable", nil
	}

	g, err := o.provider.FetchGraph(ctx, box)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, fmt.Sprintf("road network fetch failed: %v", err), nil
	}

	if o.networkCache != nil {
		o.networkCache.Put(box, g)
	}

	return g, "", nil
}

func (o *DistanceOracle) greatCircle(a, b domain.Coordinate, note string) domain.DistanceResult {
	km := a.DistanceTo(b)
	return domain.DistanceResult{
		DistanceKm:     km,
		Method:         domain.MethodGreatCircle,
		DriveTimeHours: km / o.cfg.FallbackSpeedKmh,
		DiagnosticNote: note,
	}
}
