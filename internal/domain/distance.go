package domain

// How a distance figure was produced.
type CalculationMethod string

const (
	MethodRoadNetwork CalculationMethod = "road_network"
	MethodGreatCircle CalculationMethod = "great_circle"
	// MethodMixed marks multi-segment results where some segments used the
	// road network and others fell back to great-circle.
	MethodMixed CalculationMethod = "mixed"
)

// Distance and estimated drive time between two points.
// A fallback to great-circle is not an error: Method and DiagnosticNote let
// callers distinguish degraded results from full road-network ones.
type DistanceResult struct {
	DistanceKm      float64
	Method          CalculationMethod
	DriveTimeHours  float64
	UsedRoadNetwork bool
	// DiagnosticNote names the fallback cause when the road network was not
	// used. Empty for road-network results.
	DiagnosticNote string
}

// Aggregate result for a multi-waypoint route.
// TotalDistanceKm equals the sum of SegmentDistancesKm within floating
// tolerance; TotalTimeHours includes per-stop service time on top of driving.
type RouteResult struct {
	TotalDistanceKm    float64
	TotalTimeHours     float64
	SegmentDistancesKm []float64
	Method             CalculationMethod
}
