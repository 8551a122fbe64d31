package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

type ValidatorConfig struct {
	ProximityLimitKm float64
	MaxRouteHours    float64
}

func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		ProximityLimitKm: 1.0,
		MaxRouteHours:    10.0,
	}
}

// ConstraintValidator checks whether an order can join a route without
// breaking operational limits. Every check runs on every call, so a
// single evaluation reports the complete list of reasons a dispatcher
// needs to see.
type ConstraintValidator struct {
	oracle *DistanceOracle
	cfg    ValidatorConfig
}

func NewConstraintValidator(oracle *DistanceOracle, cfg ValidatorConfig) *ConstraintValidator {
	return &ConstraintValidator{oracle: oracle, cfg: cfg}
}

// Validate runs the proximity, capacity, time budget and cargo
// compatibility checks. The returned violations are ordered and may be
// empty; an error means the evaluation itself could not complete.
func (v *ConstraintValidator) Validate(
	ctx context.Context,
	order domain.Order,
	route domain.Route,
	truck *domain.Truck,
) (_ []domain.ConstraintViolation, err error) {
	defer obs.Time(ctx, "validator.Validate")(&err)

	if truck == nil {
		return nil, errors.New("validate order: truck must be non-nil")
	}
	if err := order.Pickup.Validate(); err != nil {
		return nil, fmt.Errorf("validate order %q: pickup: %w", order.ID, err)
	}
	if err := order.Dropoff.Validate(); err != nil {
		return nil, fmt.Errorf("validate order %q: dropoff: %w", order.ID, err)
	}
	if len(route.Path) < 2 {
		return nil, fmt.Errorf("validate order %q: route %q: %w", order.ID, route.ID, domain.ErrInsufficientWaypoints)
	}

	violations := make([]domain.ConstraintViolation, 0, 4)

	// Proximity: pickup and dropoff must each sit near some point of the
	// route's path. Great-circle precision is enough for this gate.
	minPickup := minDistanceToPath(order.Pickup, route.Path)
	minDropoff := minDistanceToPath(order.Dropoff, route.Path)
	if minPickup > v.cfg.ProximityLimitKm || minDropoff > v.cfg.ProximityLimitKm {
		worst := minPickup
		if minDropoff > worst {
			worst = minDropoff
		}
		violations = append(violations, domain.ConstraintViolation{
			Kind:          domain.ViolationProximity,
			RequiredLimit: v.cfg.ProximityLimitKm,
			ActualValue:   worst,
			Severity:      domain.SeverityError,
		})
	}

	// Capacity: volume and weight checked independently, so both can be
	// reported at once.
	totalVolume := route.AssignedVolumeM3() + order.TotalVolumeM3()
	if totalVolume > truck.CapacityM3 {
		violations = append(violations, domain.ConstraintViolation{
			Kind:          domain.ViolationCapacityVolume,
			RequiredLimit: truck.CapacityM3,
			ActualValue:   totalVolume,
			Severity:      domain.SeverityError,
		})
	}
	totalWeight := route.AssignedWeightLbs() + order.TotalWeightLbs()
	if totalWeight > truck.MaxWeightLbs {
		violations = append(violations, domain.ConstraintViolation{
			Kind:          domain.ViolationCapacityWeight,
			RequiredLimit: truck.MaxWeightLbs,
			ActualValue:   totalWeight,
			Severity:      domain.SeverityError,
		})
	}

	// Time budget: recompute the full route with the new stops inserted.
	candidate := insertOrderWaypoints(route.Path, order)
	rr, err := v.oracle.CalculateRouteDistance(ctx, candidate, false)
	if err != nil {
		return nil, fmt.Errorf("validate order %q: time budget: %w", order.ID, err)
	}
	if rr.TotalTimeHours > v.cfg.MaxRouteHours {
		violations = append(violations, domain.ConstraintViolation{
			Kind:          domain.ViolationTimeBudget,
			RequiredLimit: v.cfg.MaxRouteHours,
			ActualValue:   rr.TotalTimeHours,
			Severity:      domain.SeverityError,
		})
	}

	// Cargo compatibility against everything already on the route.
	if !order.CompatibleWith(route.AssignedCargo) {
		violations = append(violations, domain.ConstraintViolation{
			Kind:     domain.ViolationCargoIncompatible,
			Severity: domain.SeverityError,
		})
	}

	return violations, nil
}

func minDistanceToPath(c domain.Coordinate, path []domain.Waypoint) float64 {
	min := math.Inf(1)
	for _, wp := range path {
		if d := c.DistanceTo(wp.Coordinate); d < min {
			min = d
		}
	}
	return min
}
