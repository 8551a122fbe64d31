package domain

// Constraint dimension an order violated during evaluation.
type ViolationKind string

const (
	ViolationProximity         ViolationKind = "proximity"
	ViolationCapacityVolume    ViolationKind = "capacity_volume"
	ViolationCapacityWeight    ViolationKind = "capacity_weight"
	ViolationTimeBudget        ViolationKind = "time_budget"
	ViolationCargoIncompatible ViolationKind = "cargo_incompatible"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// One failed constraint check, with the limit that applied and the value
// actually measured, so a dispatcher can see exactly why a match failed.
type ConstraintViolation struct {
	Kind          ViolationKind
	RequiredLimit float64
	ActualValue   float64
	Severity      Severity
}

// Evaluation lifecycle of a candidate/route pair. Terminal states are final;
// re-evaluation produces a fresh decision.
type MatchState string

const (
	MatchPending    MatchState = "pending"
	MatchEvaluating MatchState = "evaluating"
	MatchAccepted   MatchState = "accepted"
	MatchRejected   MatchState = "rejected"
)

// Outcome of evaluating one order against one route/truck pair.
// Produced fresh per evaluation and never mutated afterwards.
// ProfitabilityDelta is nil when validation failed before profitability ran.
type MatchDecision struct {
	OrderID            string
	RouteID            string
	State              MatchState
	Accepted           bool
	Violations         []ConstraintViolation
	ProfitabilityDelta *float64
}
