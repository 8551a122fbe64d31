package services

import (
	"context"
	"errors"
	"testing"

	"freight-matching-service/internal/domain"
)

// batchFixture wires a batch matcher over a great-circle oracle with
// default constraints and rates.
func batchFixture(cfg BatchConfig) *BatchMatcher {
	oracle := greatCircleOracle()
	validator := NewConstraintValidator(oracle, DefaultValidatorConfig())
	profit := NewProfitabilityEngine(oracle, testCostPerMile)
	pool := NewPendingPool()
	matcher := NewMatcher(validator, profit, pool, DefaultMatcherConfig())
	aggregator := NewAggregator(DefaultAggregatorConfig())
	generator := NewRouteGenerator(oracle, DefaultRouteGenConfig())
	return NewBatchMatcher(matcher, profit, pool, aggregator, generator, cfg)
}

func TestMatchBatchPreservesInputOrder(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 3})
	trucks := []*domain.Truck{domain.NewTruck("truck-1", 48, 9180)}
	routes := []domain.Route{corridorRoute()}

	good := nearCorridorOrder(500)
	far := nearCorridorOrder(500)
	far.ID = "ord-2"
	far.Dropoff = savannah
	unprofitable := nearCorridorOrder(0)
	unprofitable.ID = "ord-3"

	res, err := b.MatchBatch(context.Background(), []domain.Order{good, far, unprofitable}, routes, trucks)
	if err != nil {
		t.Fatalf("MatchBatch failed: %v", err)
	}

	wantIDs := []string{"ord-1", "ord-2", "ord-3"}
	if len(res.Decisions) != len(wantIDs) {
		t.Fatalf("decisions = %d, want %d", len(res.Decisions), len(wantIDs))
	}
	for i, d := range res.Decisions {
		if d.OrderID != wantIDs[i] {
			t.Errorf("Decisions[%d].OrderID = %q, want %q", i, d.OrderID, wantIDs[i])
		}
	}

	if !res.Decisions[0].Decision.Accepted || res.Decisions[0].Pooled {
		t.Errorf("good order outcome = %+v, want accepted and not pooled", res.Decisions[0])
	}
	if res.Decisions[1].Decision.Accepted || !res.Decisions[1].Pooled {
		t.Errorf("far order outcome = %+v, want rejected and pooled", res.Decisions[1])
	}
	if res.Decisions[2].Decision.Accepted || !res.Decisions[2].Pooled {
		t.Errorf("unprofitable order outcome = %+v, want rejected and pooled", res.Decisions[2])
	}

	if res.Matched != 1 || res.Pooled != 2 {
		t.Errorf("Matched/Pooled = %d/%d, want 1/2", res.Matched, res.Pooled)
	}
	if b.Pool().Len() != 2 {
		t.Errorf("pool length = %d, want 2", b.Pool().Len())
	}
}

func TestMatchBatchKeepsBestMatchByEfficiency(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 2})

	routeA := corridorRoute()
	routeA.ID = "route-a"
	routeA.TruckID = "truck-a"
	routeB := corridorRoute()
	routeB.ID = "route-b"
	routeB.TruckID = "truck-b"

	trucks := []*domain.Truck{
		domain.NewTruck("truck-a", 48, 9180),
		// Twice the capacity halves the utilization score.
		domain.NewTruck("truck-b", 96, 18360),
	}

	res, err := b.MatchBatch(context.Background(), []domain.Order{nearCorridorOrder(500)}, []domain.Route{routeB, routeA}, trucks)
	if err != nil {
		t.Fatalf("MatchBatch failed: %v", err)
	}

	d := res.Decisions[0].Decision
	if d == nil || !d.Accepted {
		t.Fatalf("decision = %+v, want accepted", d)
	}
	if d.RouteID != "route-a" {
		t.Errorf("RouteID = %q, want route-a with the better utilization", d.RouteID)
	}
}

func TestMatchBatchSkipsRoutesWithUnknownTruck(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 2})

	route := corridorRoute()
	route.TruckID = "truck-ghost"

	res, err := b.MatchBatch(context.Background(), []domain.Order{nearCorridorOrder(500)}, []domain.Route{route}, nil)
	if err != nil {
		t.Fatalf("MatchBatch failed: %v", err)
	}

	if res.Decisions[0].Decision != nil {
		t.Errorf("decision = %+v, want nil with no evaluable pair", res.Decisions[0].Decision)
	}
	if !res.Decisions[0].Pooled {
		t.Error("order not pooled despite having no evaluable pair")
	}
}

func TestMatchBatchFailsOnInvalidOrder(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 2})
	trucks := []*domain.Truck{domain.NewTruck("truck-1", 48, 9180)}

	bad := nearCorridorOrder(500)
	bad.Pickup = domain.Coordinate{Lat: 99, Lon: 0}

	_, err := b.MatchBatch(context.Background(), []domain.Order{bad}, []domain.Route{corridorRoute()}, trucks)
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestMatchBatchGeneratesRoutesFromPool(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 2, GenerateRoutes: true, MaxProposals: 5})

	decatur := domain.Coordinate{Lat: 33.7748, Lon: -84.2963}
	orders := []domain.Order{
		{ID: "ord-1", Pickup: atlanta, Dropoff: marietta, Revenue: 900,
			Cargo: []domain.Cargo{{VolumeM3: 10, WeightLbs: 1000, Type: domain.CargoStandard}}},
		{ID: "ord-2", Pickup: decatur, Dropoff: cartersville, Revenue: 900,
			Cargo: []domain.Cargo{{VolumeM3: 8, WeightLbs: 900, Type: domain.CargoStandard}}},
	}

	// No existing routes: everything pools, then aggregation takes over.
	res, err := b.MatchBatch(context.Background(), orders, nil, nil)
	if err != nil {
		t.Fatalf("MatchBatch failed: %v", err)
	}

	if res.Pooled != 2 {
		t.Fatalf("Pooled = %d, want 2", res.Pooled)
	}
	if len(res.Proposals) != 1 {
		t.Fatalf("proposals = %d, want 1", len(res.Proposals))
	}

	prop := res.Proposals[0]
	if prop.Delta <= 0 {
		t.Errorf("proposal delta = %v, want strictly positive", prop.Delta)
	}
	if len(prop.OrderIDs) != 2 {
		t.Errorf("proposal orders = %v, want both pooled orders", prop.OrderIDs)
	}

	// Claimed orders leave the pool.
	if b.Pool().Len() != 0 {
		t.Errorf("pool length = %d, want 0 after proposal claimed the orders", b.Pool().Len())
	}
}

func TestMatchBatchRefusesLossMakingProposal(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 2, GenerateRoutes: true, MaxProposals: 5})

	// Agreed revenues nowhere near the cost of driving to Savannah.
	orders := []domain.Order{
		{ID: "ord-1", Pickup: atlanta, Dropoff: savannah, Revenue: 5,
			Cargo: []domain.Cargo{{VolumeM3: 4, WeightLbs: 500, Type: domain.CargoStandard}}},
		{ID: "ord-2", Pickup: atlanta, Dropoff: savannah, Revenue: 5,
			Cargo: []domain.Cargo{{VolumeM3: 4, WeightLbs: 500, Type: domain.CargoStandard}}},
	}

	res, err := b.MatchBatch(context.Background(), orders, nil, nil)
	if err != nil {
		t.Fatalf("MatchBatch failed: %v", err)
	}

	if len(res.Proposals) != 0 {
		t.Fatalf("proposals = %v, want none for a loss-making combination", res.Proposals)
	}
	if b.Pool().Len() != 2 {
		t.Errorf("pool length = %d, want both orders kept for a later batch", b.Pool().Len())
	}
}

func TestMatchBatchProposalsAreDisjoint(t *testing.T) {
	b := batchFixture(BatchConfig{Concurrency: 2, GenerateRoutes: true, MaxProposals: 5})

	decatur := domain.Coordinate{Lat: 33.7748, Lon: -84.2963}
	smyrna := domain.Coordinate{Lat: 33.8840, Lon: -84.5144}
	orders := []domain.Order{
		{ID: "ord-1", Pickup: atlanta, Dropoff: marietta, Revenue: 900,
			Cargo: []domain.Cargo{{VolumeM3: 20, WeightLbs: 4000, Type: domain.CargoStandard}}},
		{ID: "ord-2", Pickup: decatur, Dropoff: cartersville, Revenue: 900,
			Cargo: []domain.Cargo{{VolumeM3: 20, WeightLbs: 4000, Type: domain.CargoStandard}}},
		{ID: "ord-3", Pickup: smyrna, Dropoff: marietta, Revenue: 900,
			Cargo: []domain.Cargo{{VolumeM3: 20, WeightLbs: 4000, Type: domain.CargoStandard}}},
	}

	res, err := b.MatchBatch(context.Background(), orders, nil, nil)
	if err != nil {
		t.Fatalf("MatchBatch failed: %v", err)
	}

	seen := make(map[string]int)
	for _, p := range res.Proposals {
		for _, id := range p.OrderIDs {
			seen[id]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("order %s appears in %d proposals, want at most 1", id, n)
		}
	}
}
