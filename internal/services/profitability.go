package services

import (
	"context"
	"fmt"

	"go.uber.org/atomic"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

// DetourEstimate prices the extra driving a route takes on by absorbing
// an order.
type DetourEstimate struct {
	AddedKm    float64
	AddedMiles float64
	CostUSD    float64
}

// ProfitabilityEngine prices order insertions against a route. The
// cost per mile is updatable at runtime, so dispatch can track fuel
// prices without a restart.
type ProfitabilityEngine struct {
	oracle      *DistanceOracle
	costPerMile *atomic.Float64
}

func NewProfitabilityEngine(oracle *DistanceOracle, costPerMile float64) *ProfitabilityEngine {
	return &ProfitabilityEngine{
		oracle:      oracle,
		costPerMile: atomic.NewFloat64(costPerMile),
	}
}

// CostPerMile returns the current all-in operating cost per mile.
func (p *ProfitabilityEngine) CostPerMile() float64 {
	return p.costPerMile.Load()
}

// SetCostPerMile replaces the operating cost per mile used by all
// subsequent estimates.
func (p *ProfitabilityEngine) SetCostPerMile(v float64) {
	p.costPerMile.Store(v)
}

// EstimateDetour computes the added distance and cost of inserting the
// order's stops at their cheapest position on the route. Baseline and
// candidate paths are priced with the same distance oracle, so the two
// results stay comparable even when the road network is unavailable. A
// candidate that comes out shorter than the baseline is clamped to a
// zero-cost detour.
func (p *ProfitabilityEngine) EstimateDetour(
	ctx context.Context,
	route domain.Route,
	order domain.Order,
) (_ DetourEstimate, err error) {
	defer obs.Time(ctx, "profitability.EstimateDetour")(&err)

	if len(route.Path) < 2 {
		return DetourEstimate{}, fmt.Errorf("estimate detour: route %q: %w", route.ID, domain.ErrInsufficientWaypoints)
	}

	baseline, err := p.oracle.CalculateRouteDistance(ctx, route.Path, false)
	if err != nil {
		return DetourEstimate{}, fmt.Errorf("estimate detour: baseline: %w", err)
	}

	candidate := insertOrderWaypoints(route.Path, order)
	inserted, err := p.oracle.CalculateRouteDistance(ctx, candidate, false)
	if err != nil {
		return DetourEstimate{}, fmt.Errorf("estimate detour: candidate: %w", err)
	}

	addedKm := inserted.TotalDistanceKm - baseline.TotalDistanceKm
	if addedKm < 0 {
		addedKm = 0
	}

	addedMiles := addedKm * domain.KmToMiles
	return DetourEstimate{
		AddedKm:    addedKm,
		AddedMiles: addedMiles,
		CostUSD:    addedMiles * p.costPerMile.Load(),
	}, nil
}

// DetourCost is EstimateDetour reduced to its dollar cost.
func (p *ProfitabilityEngine) DetourCost(ctx context.Context, route domain.Route, order domain.Order) (float64, error) {
	est, err := p.EstimateDetour(ctx, route, order)
	if err != nil {
		return 0, err
	}
	return est.CostUSD, nil
}

// ProfitabilityDelta is the order's revenue minus its detour cost: the
// change in route margin if the order is accepted.
func (p *ProfitabilityEngine) ProfitabilityDelta(ctx context.Context, route domain.Route, order domain.Order) (float64, error) {
	cost, err := p.DetourCost(ctx, route, order)
	if err != nil {
		return 0, err
	}
	return order.Revenue - cost, nil
}
