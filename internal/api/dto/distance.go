package dto

type PointPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type DistanceRequest struct {
	From PointPayload `json:"from"`
	To   PointPayload `json:"to"`
}

type DistanceResponse struct {
	DistanceKm      float64 `json:"distance_km"`
	DriveTimeHours  float64 `json:"drive_time_hours"`
	Method          string  `json:"method"`
	UsedRoadNetwork bool    `json:"used_road_network"`
	DiagnosticNote  string  `json:"diagnostic_note,omitempty"`
}

type WaypointPayload struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RouteDistanceRequest struct {
	Waypoints []WaypointPayload `json:"waypoints"`
	// OptimizeOrder reorders intermediate waypoints before pricing;
	// endpoints stay fixed.
	OptimizeOrder bool `json:"optimize_order"`
	// MaxSegmentKm rejects routes containing a longer segment. Zero
	// disables the check.
	MaxSegmentKm float64 `json:"max_segment_km"`
}

type RouteDistanceResponse struct {
	TotalDistanceKm    float64   `json:"total_distance_km"`
	TotalTimeHours     float64   `json:"total_time_hours"`
	SegmentDistancesKm []float64 `json:"segment_distances_km"`
	Method             string    `json:"method"`
	// StopOrder lists waypoint ids in visit order, reflecting any
	// reordering the optimizer applied.
	StopOrder []string `json:"stop_order"`
}
