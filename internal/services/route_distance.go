package services

import (
	"context"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

// CalculateRouteDistance computes total distance and drive time for a
// waypoint sequence, one segment per consecutive pair. Every stop
// between the endpoints adds loading time. The aggregate method reports
// whether all, some, or none of the segments used the road network.
func (o *DistanceOracle) CalculateRouteDistance(
	ctx context.Context,
	waypoints []domain.Waypoint,
	optimizeOrder bool,
) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "oracle.CalculateRouteDistance")(&err)

	if len(waypoints) < 2 {
		return domain.RouteResult{}, domain.ErrInsufficientWaypoints
	}

	if optimizeOrder {
		waypoints = OptimizeWaypointOrder(waypoints)
	}

	segments := make([]float64, 0, len(waypoints)-1)
	var totalKm, totalHours float64
	roadSegments := 0

	for i := 0; i+1 < len(waypoints); i++ {
		r, err := o.CalculateDistance(ctx, waypoints[i].Coordinate, waypoints[i+1].Coordinate)
		if err != nil {
			return domain.RouteResult{}, &domain.SegmentError{Index: i, Err: err}
		}

		segments = append(segments, r.DistanceKm)
		totalKm += r.DistanceKm
		totalHours += r.DriveTimeHours
		if r.UsedRoadNetwork {
			roadSegments++
		}
	}

	intermediates := len(waypoints) - 2
	totalHours += float64(intermediates) * float64(o.cfg.StopMinutes) / 60.0

	method := domain.MethodMixed
	switch roadSegments {
	case len(segments):
		method = domain.MethodRoadNetwork
	case 0:
		method = domain.MethodGreatCircle
	}

	return domain.RouteResult{
		TotalDistanceKm:    totalKm,
		TotalTimeHours:     totalHours,
		SegmentDistancesKm: segments,
		Method:             method,
	}, nil
}

// CalculateRouteDistanceWithValidation additionally rejects routes with
// any segment longer than maxSegmentKm. Such a route computed fine but
// is not operationally realistic.
func (o *DistanceOracle) CalculateRouteDistanceWithValidation(
	ctx context.Context,
	waypoints []domain.Waypoint,
	maxSegmentKm float64,
) (domain.RouteResult, error) {
	res, err := o.CalculateRouteDistance(ctx, waypoints, false)
	if err != nil {
		return domain.RouteResult{}, err
	}

	var over []int
	for i, km := range res.SegmentDistancesKm {
		if km > maxSegmentKm {
			over = append(over, i)
		}
	}
	if len(over) > 0 {
		return domain.RouteResult{}, &domain.UnreachableSegmentsError{
			Segments: over,
			LimitKm:  maxSegmentKm,
		}
	}

	return res, nil
}

// OptimizeWaypointOrder reorders the intermediate waypoints by a greedy
// nearest-neighbor walk from the fixed first endpoint toward the fixed
// last one. It trims pointless backtracking when assembling multi-order
// routes; it does not attempt an optimal tour. The input is not mutated.
func OptimizeWaypointOrder(waypoints []domain.Waypoint) []domain.Waypoint {
	if len(waypoints) <= 3 {
		out := make([]domain.Waypoint, len(waypoints))
		copy(out, waypoints)
		return out
	}

	remaining := make([]domain.Waypoint, len(waypoints)-2)
	copy(remaining, waypoints[1:len(waypoints)-1])

	out := make([]domain.Waypoint, 0, len(waypoints))
	out = append(out, waypoints[0])
	current := waypoints[0].Coordinate

	for len(remaining) > 0 {
		best := 0
		bestDist := current.DistanceTo(remaining[0].Coordinate)
		// Strictly-less comparison keeps the earlier waypoint on ties,
		// so ordering is deterministic.
		for i := 1; i < len(remaining); i++ {
			if d := current.DistanceTo(remaining[i].Coordinate); d < bestDist {
				best = i
				bestDist = d
			}
		}

		out = append(out, remaining[best])
		current = remaining[best].Coordinate
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return append(out, waypoints[len(waypoints)-1])
}
