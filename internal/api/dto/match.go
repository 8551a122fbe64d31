package dto

type CargoPayload struct {
	VolumeM3  float64 `json:"volume_m3"`
	WeightLbs float64 `json:"weight_lbs"`
	Type      string  `json:"type"`
}

type OrderPayload struct {
	OrderID string         `json:"order_id"`
	Pickup  PointPayload   `json:"pickup"`
	Dropoff PointPayload   `json:"dropoff"`
	Cargo   []CargoPayload `json:"cargo"`
	Revenue float64        `json:"revenue"`
}

type EvaluateMatchRequest struct {
	Order   OrderPayload `json:"order"`
	RouteID string       `json:"route_id"`
}

type ViolationPayload struct {
	Kind          string  `json:"kind"`
	RequiredLimit float64 `json:"required_limit"`
	ActualValue   float64 `json:"actual_value"`
	Severity      string  `json:"severity"`
}

type MatchDecisionResponse struct {
	OrderID    string             `json:"order_id"`
	RouteID    string             `json:"route_id"`
	State      string             `json:"state"`
	Accepted   bool               `json:"accepted"`
	Violations []ViolationPayload `json:"violations,omitempty"`
	// ProfitabilityDelta is null when validation rejected the order
	// before profitability was priced.
	ProfitabilityDelta *float64 `json:"profitability_delta"`
}

type BatchMatchRequest struct {
	// Orders to match. When omitted, the stored pending orders are used.
	Orders []OrderPayload `json:"orders"`
}

type BatchDecisionPayload struct {
	OrderID string `json:"order_id"`
	// Decision is null when no route/truck pair existed to evaluate.
	Decision *MatchDecisionResponse `json:"decision"`
	Pooled   bool                   `json:"pooled"`
}

type RouteProposalPayload struct {
	OrderIDs       []string          `json:"order_ids"`
	Stops          []WaypointPayload `json:"stops"`
	DistanceKm     float64           `json:"distance_km"`
	DriveTimeHours float64           `json:"drive_time_hours"`
	Method         string            `json:"method"`
	CostUSD        float64           `json:"cost_usd"`
	RevenueUSD     float64           `json:"revenue_usd"`
	Delta          float64           `json:"delta"`
	Score          float64           `json:"score"`
}

type BatchMatchResponse struct {
	Decisions []BatchDecisionPayload `json:"decisions"`
	Matched   int                    `json:"matched"`
	Pooled    int                    `json:"pooled"`
	Proposals []RouteProposalPayload `json:"proposals,omitempty"`
}

type PendingOrdersResponse struct {
	Orders []OrderPayload `json:"orders"`
	Count  int            `json:"count"`
}
