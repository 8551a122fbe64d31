package services

import (
	"math"

	"freight-matching-service/internal/domain"
)

// bestInsertionIndex finds the adjacent waypoint pair where inserting
// pickup then dropoff adds the least direct distance. Direct distance
// is a cheap, stable proxy; the caller prices the winning insertion
// with a full route calculation.
func bestInsertionIndex(path []domain.Waypoint, pickup, dropoff domain.Coordinate) int {
	bestIdx := 0
	bestAdded := math.Inf(1)

	for i := 0; i+1 < len(path); i++ {
		a := path[i].Coordinate
		b := path[i+1].Coordinate

		added := a.DistanceTo(pickup) + pickup.DistanceTo(dropoff) + dropoff.DistanceTo(b) - a.DistanceTo(b)
		if added < bestAdded {
			bestAdded = added
			bestIdx = i
		}
	}

	return bestIdx
}

// insertOrderWaypoints returns a new path with the order's pickup and
// dropoff inserted at their cheapest position, pickup first. The input
// path is not mutated.
func insertOrderWaypoints(path []domain.Waypoint, o domain.Order) []domain.Waypoint {
	pickup := domain.Waypoint{ID: o.ID + "-pickup", Coordinate: o.Pickup}
	dropoff := domain.Waypoint{ID: o.ID + "-dropoff", Coordinate: o.Dropoff}

	if len(path) < 2 {
		out := make([]domain.Waypoint, 0, len(path)+2)
		out = append(out, path...)
		return append(out, pickup, dropoff)
	}

	i := bestInsertionIndex(path, o.Pickup, o.Dropoff)

	out := make([]domain.Waypoint, 0, len(path)+2)
	out = append(out, path[:i+1]...)
	out = append(out, pickup, dropoff)
	out = append(out, path[i+1:]...)
	return out
}
