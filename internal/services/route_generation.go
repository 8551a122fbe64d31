package services

import (
	"context"
	"fmt"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

// Per-mile operating costs of running a truck, broken out the way the
// contracts quote them.
type CostBreakdown struct {
	TruckerPerMile     float64
	FuelPerMile        float64
	LeasingPerMile     float64
	MaintenancePerMile float64
	InsurancePerMile   float64
}

// DefaultCostBreakdown carries the contracted rates. Fuel is diesel at
// $2.43/gal over 6.5 mpg.
func DefaultCostBreakdown() CostBreakdown {
	return CostBreakdown{
		TruckerPerMile:     0.78,
		FuelPerMile:        0.373846153846154,
		LeasingPerMile:     0.27,
		MaintenancePerMile: 0.17,
		InsurancePerMile:   0.10,
	}
}

// TotalPerMile sums the per-mile cost components.
func (c CostBreakdown) TotalPerMile() float64 {
	return c.TruckerPerMile + c.FuelPerMile + c.LeasingPerMile + c.MaintenancePerMile + c.InsurancePerMile
}

type RouteGenConfig struct {
	Costs CostBreakdown
	// Revenue model for orders without an agreed price: a flat base per
	// order plus distance, volume and weight components.
	BaseRatePerOrder float64
	RatePerMile      float64
	RatePerM3        float64
	RatePerKg        float64
}

func DefaultRouteGenConfig() RouteGenConfig {
	return RouteGenConfig{
		Costs:            DefaultCostBreakdown(),
		BaseRatePerOrder: 100.0,
		RatePerMile:      1.50,
		RatePerM3:        15.0,
		RatePerKg:        0.50,
	}
}

// A fully priced candidate route for a combination of pooled orders.
// Delta is revenue minus operating cost; callers decide whether a
// proposal is worth dispatching.
type RouteProposal struct {
	OrderIDs       []string
	Path           []domain.Waypoint
	DistanceKm     float64
	DriveTimeHours float64
	Method         domain.CalculationMethod
	CostUSD        float64
	RevenueUSD     float64
	Delta          float64
	Score          float64
}

// RouteGenerator turns an order combination into a priced route
// proposal: all pickups first, then all dropoffs, with the stop order
// optimized and the whole path priced by the distance oracle.
type RouteGenerator struct {
	oracle *DistanceOracle
	cfg    RouteGenConfig
}

func NewRouteGenerator(oracle *DistanceOracle, cfg RouteGenConfig) *RouteGenerator {
	return &RouteGenerator{oracle: oracle, cfg: cfg}
}

// Propose builds and prices a route for the combination. The proposal
// is returned whether or not it is profitable; Delta carries the
// verdict.
func (g *RouteGenerator) Propose(
	ctx context.Context,
	combo OrderCombination,
) (_ RouteProposal, err error) {
	defer obs.Time(ctx, "routegen.Propose")(&err)

	if len(combo.Orders) == 0 {
		return RouteProposal{}, fmt.Errorf("propose route: %w", domain.ErrEmptyInput)
	}

	path := make([]domain.Waypoint, 0, 2*len(combo.Orders))
	for _, o := range combo.Orders {
		path = append(path, domain.Waypoint{ID: o.ID + "-pickup", Coordinate: o.Pickup})
	}
	for _, o := range combo.Orders {
		path = append(path, domain.Waypoint{ID: o.ID + "-dropoff", Coordinate: o.Dropoff})
	}

	path = OptimizeWaypointOrder(path)
	res, err := g.oracle.CalculateRouteDistance(ctx, path, false)
	if err != nil {
		return RouteProposal{}, fmt.Errorf("propose route: %w", err)
	}

	var revenue float64
	for _, o := range combo.Orders {
		revenue += g.estimateRevenue(o)
	}
	cost := res.TotalDistanceKm * domain.KmToMiles * g.cfg.Costs.TotalPerMile()

	return RouteProposal{
		OrderIDs:       combo.OrderIDs(),
		Path:           path,
		DistanceKm:     res.TotalDistanceKm,
		DriveTimeHours: res.TotalTimeHours,
		Method:         res.Method,
		CostUSD:        cost,
		RevenueUSD:     revenue,
		Delta:          revenue - cost,
		Score:          combo.Score,
	}, nil
}

// estimateRevenue prices one order. An agreed revenue on the order
// wins; otherwise the configured rate model estimates one from
// distance, volume and weight.
func (g *RouteGenerator) estimateRevenue(o domain.Order) float64 {
	if o.Revenue > 0 {
		return o.Revenue
	}
	miles := o.DirectDistanceKm() * domain.KmToMiles
	return g.cfg.BaseRatePerOrder +
		miles*g.cfg.RatePerMile +
		o.TotalVolumeM3()*g.cfg.RatePerM3 +
		o.TotalWeightLbs()*domain.LbsToKg*g.cfg.RatePerKg
}
