package services

import (
	"context"
	"errors"
	"testing"

	"freight-matching-service/internal/domain"
)

func TestCostBreakdownTotalMatchesContractedRate(t *testing.T) {
	total := DefaultCostBreakdown().TotalPerMile()
	if !almostEqual(total, 1.693846154, 1e-8) {
		t.Errorf("TotalPerMile = %v, want 1.693846154", total)
	}
}

func TestProposePricesCombination(t *testing.T) {
	gen := NewRouteGenerator(greatCircleOracle(), DefaultRouteGenConfig())

	combo := OrderCombination{
		Orders: []domain.Order{
			{ID: "ord-1", Pickup: atlanta, Dropoff: marietta, Revenue: 800,
				Cargo: []domain.Cargo{{VolumeM3: 10, WeightLbs: 1000, Type: domain.CargoStandard}}},
			{ID: "ord-2", Pickup: cartersville, Dropoff: ringgold, Revenue: 900,
				Cargo: []domain.Cargo{{VolumeM3: 8, WeightLbs: 800, Type: domain.CargoStandard}}},
		},
		Score: 42,
	}

	prop, err := gen.Propose(context.Background(), combo)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	if len(prop.Path) != 4 {
		t.Fatalf("path length = %d, want 4", len(prop.Path))
	}
	if prop.Path[0].ID != "ord-1-pickup" {
		t.Errorf("path starts at %q, want ord-1-pickup", prop.Path[0].ID)
	}
	if !stringSlicesEqual(prop.OrderIDs, []string{"ord-1", "ord-2"}) {
		t.Errorf("OrderIDs = %v, want [ord-1 ord-2]", prop.OrderIDs)
	}

	wantCost := prop.DistanceKm * domain.KmToMiles * DefaultCostBreakdown().TotalPerMile()
	if !almostEqual(prop.CostUSD, wantCost, 1e-9) {
		t.Errorf("CostUSD = %v, want %v", prop.CostUSD, wantCost)
	}
	if !almostEqual(prop.RevenueUSD, 1700, 1e-9) {
		t.Errorf("RevenueUSD = %v, want 1700 from agreed order prices", prop.RevenueUSD)
	}
	if !almostEqual(prop.Delta, prop.RevenueUSD-prop.CostUSD, 1e-9) {
		t.Errorf("Delta = %v, want revenue minus cost %v", prop.Delta, prop.RevenueUSD-prop.CostUSD)
	}
	if prop.Score != 42 {
		t.Errorf("Score = %v, want combination score 42", prop.Score)
	}
}

func TestProposeEstimatesRevenueForUnpricedOrders(t *testing.T) {
	cfg := DefaultRouteGenConfig()
	gen := NewRouteGenerator(greatCircleOracle(), cfg)

	order := domain.Order{
		ID: "ord-1", Pickup: atlanta, Dropoff: marietta,
		Cargo: []domain.Cargo{{VolumeM3: 10, WeightLbs: 1000, Type: domain.CargoStandard}},
	}
	combo := OrderCombination{Orders: []domain.Order{order, {
		ID: "ord-2", Pickup: atlanta, Dropoff: marietta, Revenue: 300,
		Cargo: []domain.Cargo{{VolumeM3: 1, WeightLbs: 100, Type: domain.CargoStandard}},
	}}}

	prop, err := gen.Propose(context.Background(), combo)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	miles := order.DirectDistanceKm() * domain.KmToMiles
	estimated := cfg.BaseRatePerOrder +
		miles*cfg.RatePerMile +
		10*cfg.RatePerM3 +
		1000*domain.LbsToKg*cfg.RatePerKg

	if !almostEqual(prop.RevenueUSD, estimated+300, 1e-9) {
		t.Errorf("RevenueUSD = %v, want %v", prop.RevenueUSD, estimated+300)
	}
}

func TestProposeRejectsEmptyCombination(t *testing.T) {
	gen := NewRouteGenerator(greatCircleOracle(), DefaultRouteGenConfig())

	_, err := gen.Propose(context.Background(), OrderCombination{})
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("error = %v, want ErrEmptyInput", err)
	}
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
