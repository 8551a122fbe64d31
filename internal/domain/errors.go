package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate marks latitude/longitude values outside the WGS84 range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrEmptyInput marks operations called with an empty point set.
	ErrEmptyInput = errors.New("empty input")

	// ErrInsufficientWaypoints marks route calculations with fewer than two waypoints.
	ErrInsufficientWaypoints = errors.New("at least two waypoints required")
)

// SegmentError reports a route segment that could not produce any distance
// result, not even a great-circle fallback. A route missing one leg is unsafe
// for capacity and time decisions, so the whole calculation fails.
type SegmentError struct {
	Index int
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("route segment %d: %v", e.Index, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// UnreachableSegmentsError reports segments whose computed distance exceeds
// the operational per-segment limit. The calculation itself succeeded; the
// route is rejected as implausible.
type UnreachableSegmentsError struct {
	Segments []int
	LimitKm  float64
}

func (e *UnreachableSegmentsError) Error() string {
	return fmt.Sprintf("segments %v exceed max segment distance %.1f km", e.Segments, e.LimitKm)
}
