package services

import (
	"context"
	"fmt"
	"log"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

type MatcherConfig struct {
	// RequirePositiveDelta rejects matches whose profitability delta is
	// not strictly positive. Rejected-but-valid orders go to the
	// pending pool for later aggregation.
	RequirePositiveDelta bool
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{RequirePositiveDelta: true}
}

// Matcher runs the full decision pipeline for one order against one
// route/truck pair: constraint validation first, then profitability.
// Each call produces a fresh decision; evaluating the same inputs twice
// yields the same outcome.
type Matcher struct {
	validator *ConstraintValidator
	profit    *ProfitabilityEngine
	pool      *PendingPool
	cfg       MatcherConfig
}

// NewMatcher wires a matcher. pool may be nil; unprofitable orders are
// then dropped instead of pooled.
func NewMatcher(validator *ConstraintValidator, profit *ProfitabilityEngine, pool *PendingPool, cfg MatcherConfig) *Matcher {
	return &Matcher{
		validator: validator,
		profit:    profit,
		pool:      pool,
		cfg:       cfg,
	}
}

// Evaluate decides whether the order joins the route. Constraint
// violations reject without pricing the detour, so the decision's
// profitability delta stays nil. A valid but unprofitable order is
// rejected with its delta attached and offered to the pending pool.
func (m *Matcher) Evaluate(
	ctx context.Context,
	order domain.Order,
	route domain.Route,
	truck *domain.Truck,
) (_ *domain.MatchDecision, err error) {
	defer obs.Time(ctx, "matcher.Evaluate")(&err)

	decision := &domain.MatchDecision{
		OrderID: order.ID,
		RouteID: route.ID,
		State:   domain.MatchEvaluating,
	}

	violations, err := m.validator.Validate(ctx, order, route, truck)
	if err != nil {
		return nil, fmt.Errorf("evaluate order %q on route %q: %w", order.ID, route.ID, err)
	}
	if len(violations) > 0 {
		decision.State = domain.MatchRejected
		decision.Violations = violations
		return decision, nil
	}

	delta, err := m.profit.ProfitabilityDelta(ctx, route, order)
	if err != nil {
		return nil, fmt.Errorf("evaluate order %q on route %q: %w", order.ID, route.ID, err)
	}
	decision.ProfitabilityDelta = &delta

	if m.cfg.RequirePositiveDelta && delta <= 0 {
		decision.State = domain.MatchRejected
		if m.pool != nil && m.pool.Offer(order) {
			log.Printf("order=%s route=%s delta=%.2f not positive, pooled for aggregation", order.ID, route.ID, delta)
		}
		return decision, nil
	}

	decision.State = domain.MatchAccepted
	decision.Accepted = true
	return decision, nil
}
