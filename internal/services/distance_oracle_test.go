package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"freight-matching-service/internal/adapters/cache"
	"freight-matching-service/internal/adapters/graph"
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/roadnet"
)

// Georgia fixture coordinates shared by the service tests.
var (
	atlanta      = domain.Coordinate{Lat: 33.7490, Lon: -84.3880}
	marietta     = domain.Coordinate{Lat: 33.9526, Lon: -84.5499}
	cartersville = domain.Coordinate{Lat: 34.1651, Lon: -84.8010}
	ringgold     = domain.Coordinate{Lat: 34.9162, Lon: -85.1080}
	savannah     = domain.Coordinate{Lat: 32.0835, Lon: -81.0998}
)

// greatCircleOracle builds an oracle with no provider and no caches, so
// every result degrades to a deterministic great-circle estimate.
func greatCircleOracle() *DistanceOracle {
	return NewDistanceOracle(nil, nil, nil, DefaultOracleConfig())
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateDistanceFallsBackToGreatCircle(t *testing.T) {
	oracle := greatCircleOracle()

	res, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("CalculateDistance failed: %v", err)
	}

	if res.Method != domain.MethodGreatCircle {
		t.Errorf("Method = %q, want %q", res.Method, domain.MethodGreatCircle)
	}
	if res.UsedRoadNetwork {
		t.Error("UsedRoadNetwork = true without a provider")
	}
	if res.DiagnosticNote == "" {
		t.Error("fallback result carries no diagnostic note")
	}

	wantKm := atlanta.DistanceTo(marietta)
	if !almostEqual(res.DistanceKm, wantKm, 1e-9) {
		t.Errorf("DistanceKm = %v, want %v", res.DistanceKm, wantKm)
	}
	if !almostEqual(res.DriveTimeHours, wantKm/80.0, 1e-9) {
		t.Errorf("DriveTimeHours = %v, want %v", res.DriveTimeHours, wantKm/80.0)
	}
}

func TestCalculateDistanceRejectsInvalidCoordinates(t *testing.T) {
	oracle := greatCircleOracle()

	_, err := oracle.CalculateDistance(context.Background(), domain.Coordinate{Lat: 91, Lon: 0}, marietta)
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("error = %v, want ErrInvalidCoordinate", err)
	}

	_, err = oracle.CalculateDistance(context.Background(), atlanta, domain.Coordinate{Lat: 0, Lon: -181})
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("error = %v, want ErrInvalidCoordinate", err)
	}
}

// chainGraph builds a three-node road chain from atlanta to marietta
// with a midpoint, 14 km per segment, both directions.
func chainGraph() *roadnet.Graph {
	mid := domain.Coordinate{
		Lat: (atlanta.Lat + marietta.Lat) / 2,
		Lon: (atlanta.Lon + marietta.Lon) / 2,
	}

	g := roadnet.NewGraph()
	g.AddNode(1, atlanta)
	g.AddNode(2, mid)
	g.AddNode(3, marietta)
	for _, pair := range [][2]roadnet.NodeID{{1, 2}, {2, 3}} {
		g.AddEdge(pair[0], pair[1], 14, 100)
		g.AddEdge(pair[1], pair[0], 14, 100)
	}
	return g
}

func TestCalculateDistancePrefersRoadNetwork(t *testing.T) {
	provider := graph.NewMockGraphProvider(chainGraph())
	networks := cache.NewNetworkCache()
	oracle := NewDistanceOracle(provider, networks, nil, DefaultOracleConfig())

	res, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("CalculateDistance failed: %v", err)
	}

	if res.Method != domain.MethodRoadNetwork || !res.UsedRoadNetwork {
		t.Fatalf("Method = %q used=%v, want road network", res.Method, res.UsedRoadNetwork)
	}
	if res.DistanceKm != 28 {
		t.Errorf("DistanceKm = %v, want 28", res.DistanceKm)
	}
	if !almostEqual(res.DriveTimeHours, 0.28, 1e-9) {
		t.Errorf("DriveTimeHours = %v, want 0.28", res.DriveTimeHours)
	}

	// Same request again: the cached network must absorb the fetch.
	if _, err := oracle.CalculateDistance(context.Background(), atlanta, marietta); err != nil {
		t.Fatalf("second CalculateDistance failed: %v", err)
	}
	if provider.Fetches != 1 {
		t.Errorf("provider fetches = %d, want 1", provider.Fetches)
	}
}

func TestCalculateDistanceUsesPairwiseCache(t *testing.T) {
	provider := graph.NewMockGraphProvider(chainGraph())
	distances := cache.NewMemoryDistanceCache(time.Hour, time.Hour)
	oracle := NewDistanceOracle(provider, nil, distances, DefaultOracleConfig())

	first, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("CalculateDistance failed: %v", err)
	}

	// No network cache, so only the pairwise cache can prevent a refetch.
	second, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("second CalculateDistance failed: %v", err)
	}
	if provider.Fetches != 1 {
		t.Errorf("provider fetches = %d, want 1", provider.Fetches)
	}
	if second != first {
		t.Errorf("cached result = %+v, want %+v", second, first)
	}
}

func TestCalculateDistanceAbsorbsProviderFailure(t *testing.T) {
	provider := &graph.MockGraphProvider{Err: errors.New("overpass unavailable")}
	oracle := NewDistanceOracle(provider, nil, nil, DefaultOracleConfig())

	res, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("provider failure surfaced as error: %v", err)
	}
	if res.Method != domain.MethodGreatCircle {
		t.Errorf("Method = %q, want great-circle fallback", res.Method)
	}
	if !strings.Contains(res.DiagnosticNote, "fetch failed") {
		t.Errorf("DiagnosticNote = %q, want fetch failure note", res.DiagnosticNote)
	}
}

func TestCalculateDistanceDoesNotCacheFallbacks(t *testing.T) {
	provider := &graph.MockGraphProvider{Err: errors.New("transient outage")}
	distances := cache.NewMemoryDistanceCache(time.Hour, time.Hour)
	oracle := NewDistanceOracle(provider, nil, distances, DefaultOracleConfig())

	degraded, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("CalculateDistance failed: %v", err)
	}
	if degraded.Method != domain.MethodGreatCircle {
		t.Fatalf("Method = %q, want great-circle fallback while the provider is down", degraded.Method)
	}

	// Provider recovers. The fallback must not have been cached, so the
	// next call goes back to the road network.
	provider.Err = nil
	provider.Graph = chainGraph()

	recovered, err := oracle.CalculateDistance(context.Background(), atlanta, marietta)
	if err != nil {
		t.Fatalf("post-recovery CalculateDistance failed: %v", err)
	}
	if recovered.Method != domain.MethodRoadNetwork || !recovered.UsedRoadNetwork {
		t.Fatalf("post-recovery Method = %q used=%v, want road network", recovered.Method, recovered.UsedRoadNetwork)
	}
	if recovered.DiagnosticNote != "" {
		t.Errorf("DiagnosticNote = %q, want empty after recovery", recovered.DiagnosticNote)
	}

	// The road-network result is cacheable; a repeat call must not refetch.
	if _, err := oracle.CalculateDistance(context.Background(), atlanta, marietta); err != nil {
		t.Fatalf("cached CalculateDistance failed: %v", err)
	}
	if provider.Fetches != 2 {
		t.Errorf("provider fetches = %d, want 2", provider.Fetches)
	}
}

func TestCalculateDistanceHonorsCancellation(t *testing.T) {
	provider := &graph.MockGraphProvider{Err: errors.New("interrupted")}
	oracle := NewDistanceOracle(provider, nil, nil, DefaultOracleConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := oracle.CalculateDistance(ctx, atlanta, marietta)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestCalculateRouteDistanceSumsSegments(t *testing.T) {
	oracle := greatCircleOracle()

	waypoints := []domain.Waypoint{
		{ID: "atl", Coordinate: atlanta},
		{ID: "mar", Coordinate: marietta},
		{ID: "rin", Coordinate: ringgold},
	}

	res, err := oracle.CalculateRouteDistance(context.Background(), waypoints, false)
	if err != nil {
		t.Fatalf("CalculateRouteDistance failed: %v", err)
	}

	d1 := atlanta.DistanceTo(marietta)
	d2 := marietta.DistanceTo(ringgold)

	if len(res.SegmentDistancesKm) != 2 {
		t.Fatalf("segments = %d, want 2", len(res.SegmentDistancesKm))
	}
	if !almostEqual(res.TotalDistanceKm, d1+d2, 1e-9) {
		t.Errorf("TotalDistanceKm = %v, want %v", res.TotalDistanceKm, d1+d2)
	}

	// One intermediate stop adds 15 minutes of service time.
	wantHours := (d1+d2)/80.0 + 0.25
	if !almostEqual(res.TotalTimeHours, wantHours, 1e-9) {
		t.Errorf("TotalTimeHours = %v, want %v", res.TotalTimeHours, wantHours)
	}
	if res.Method != domain.MethodGreatCircle {
		t.Errorf("Method = %q, want %q", res.Method, domain.MethodGreatCircle)
	}
}

func TestCalculateRouteDistanceNeedsTwoWaypoints(t *testing.T) {
	oracle := greatCircleOracle()

	_, err := oracle.CalculateRouteDistance(context.Background(), []domain.Waypoint{{ID: "atl", Coordinate: atlanta}}, false)
	if !errors.Is(err, domain.ErrInsufficientWaypoints) {
		t.Fatalf("error = %v, want ErrInsufficientWaypoints", err)
	}
}

func TestCalculateRouteDistanceWithValidationFlagsLongSegments(t *testing.T) {
	oracle := greatCircleOracle()

	waypoints := []domain.Waypoint{
		{ID: "atl", Coordinate: atlanta},
		{ID: "mar", Coordinate: marietta},
		{ID: "sav", Coordinate: savannah},
	}

	var unreachable *domain.UnreachableSegmentsError
	_, err := oracle.CalculateRouteDistanceWithValidation(context.Background(), waypoints, 100)
	if !errors.As(err, &unreachable) {
		t.Fatalf("error = %v, want UnreachableSegmentsError", err)
	}
	if len(unreachable.Segments) != 1 || unreachable.Segments[0] != 1 {
		t.Errorf("Segments = %v, want [1]", unreachable.Segments)
	}

	// A generous limit accepts the same route.
	if _, err := oracle.CalculateRouteDistanceWithValidation(context.Background(), waypoints, 500); err != nil {
		t.Fatalf("route under the limit rejected: %v", err)
	}
}

func TestOptimizeWaypointOrderKeepsEndpointsFixed(t *testing.T) {
	a := domain.Waypoint{ID: "a", Coordinate: domain.Coordinate{Lat: 33.0, Lon: -84.0}}
	b := domain.Waypoint{ID: "b", Coordinate: domain.Coordinate{Lat: 34.0, Lon: -84.0}}
	c := domain.Waypoint{ID: "c", Coordinate: domain.Coordinate{Lat: 35.0, Lon: -84.0}}
	d := domain.Waypoint{ID: "d", Coordinate: domain.Coordinate{Lat: 36.0, Lon: -84.0}}

	got := OptimizeWaypointOrder([]domain.Waypoint{a, c, b, d})

	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("optimized length = %d, want %d", len(got), len(want))
	}
	for i, wp := range got {
		if wp.ID != want[i] {
			t.Errorf("optimized[%d] = %q, want %q", i, wp.ID, want[i])
		}
	}
}

func TestOptimizeWaypointOrderDoesNotMutateInput(t *testing.T) {
	in := []domain.Waypoint{
		{ID: "a", Coordinate: domain.Coordinate{Lat: 33.0, Lon: -84.0}},
		{ID: "c", Coordinate: domain.Coordinate{Lat: 35.0, Lon: -84.0}},
		{ID: "b", Coordinate: domain.Coordinate{Lat: 34.0, Lon: -84.0}},
		{ID: "d", Coordinate: domain.Coordinate{Lat: 36.0, Lon: -84.0}},
	}

	OptimizeWaypointOrder(in)

	want := []string{"a", "c", "b", "d"}
	for i, wp := range in {
		if wp.ID != want[i] {
			t.Fatalf("input mutated at %d: %q", i, wp.ID)
		}
	}
}
