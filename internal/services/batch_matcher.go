package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
)

type BatchConfig struct {
	// Concurrency caps how many orders are evaluated in parallel.
	Concurrency int
	// GenerateRoutes runs pool aggregation after matching, proposing
	// brand-new routes for orders no existing route could absorb.
	GenerateRoutes bool
	// MaxProposals bounds how many new routes one batch may propose.
	MaxProposals int
}

func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Concurrency:    5,
		GenerateRoutes: true,
		MaxProposals:   10,
	}
}

// One order's outcome within a batch run. Decision is nil when there
// was no route/truck pair to evaluate against.
type BatchDecision struct {
	OrderID  string
	Decision *domain.MatchDecision
	Pooled   bool
}

type BatchResult struct {
	// Decisions preserves input order, one entry per order.
	Decisions []BatchDecision
	Matched   int
	Pooled    int
	// Proposals are profitable new routes aggregated from the pending
	// pool, best delta first. Empty unless route generation is enabled.
	Proposals []RouteProposal
}

type orderMatchResult struct {
	idx      int
	decision *domain.MatchDecision
	pooled   bool
	err      error
}

// BatchMatcher fans a batch of orders out over a bounded worker pool,
// matches each against every route/truck pair, and pools the leftovers
// for aggregation into new routes. The first hard failure cancels the
// remaining work.
type BatchMatcher struct {
	matcher    *Matcher
	profit     *ProfitabilityEngine
	pool       *PendingPool
	aggregator *Aggregator
	generator  *RouteGenerator
	cfg        BatchConfig
}

// NewBatchMatcher wires a batch matcher. aggregator and generator may
// be nil when route generation is disabled.
func NewBatchMatcher(
	matcher *Matcher,
	profit *ProfitabilityEngine,
	pool *PendingPool,
	aggregator *Aggregator,
	generator *RouteGenerator,
	cfg BatchConfig,
) *BatchMatcher {
	if pool == nil {
		pool = NewPendingPool()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	return &BatchMatcher{
		matcher:    matcher,
		profit:     profit,
		pool:       pool,
		aggregator: aggregator,
		generator:  generator,
		cfg:        cfg,
	}
}

// Pool returns the pending pool shared by this batch matcher.
func (b *BatchMatcher) Pool() *PendingPool { return b.pool }

// MatchBatch evaluates every order against every route/truck pair and
// keeps each order's best accepted match by efficiency score. Orders no
// route could absorb go to the pending pool; when route generation is
// on, the pool is then aggregated into new-route proposals.
func (b *BatchMatcher) MatchBatch(
	ctx context.Context,
	orders []domain.Order,
	routes []domain.Route,
	trucks []*domain.Truck,
) (_ *BatchResult, err error) {
	defer obs.Time(ctx, "batch.MatchBatch")(&err)

	trucksByID := make(map[string]*domain.Truck, len(trucks))
	for _, t := range trucks {
		if t != nil {
			trucksByID[t.ID] = t
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, b.cfg.Concurrency)
	resultsCh := make(chan orderMatchResult, len(orders))
	var wg sync.WaitGroup

	for i, order := range orders {
		wg.Add(1)
		go func(idx int, o domain.Order) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			decision, err := b.matchOne(ctx, o, routes, trucksByID)
			if err != nil {
				resultsCh <- orderMatchResult{idx: idx, err: fmt.Errorf("match batch: order %q: %w", o.ID, err)}
				cancel()
				return
			}

			pooled := decision == nil || !decision.Accepted
			if pooled {
				b.pool.Offer(o)
			}
			resultsCh <- orderMatchResult{idx: idx, decision: decision, pooled: pooled}
		}(i, order)
	}

	wg.Wait()
	close(resultsCh)

	decisions := make([]BatchDecision, len(orders))
	var firstErr error
	for res := range resultsCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		decisions[res.idx] = BatchDecision{
			OrderID:  orders[res.idx].ID,
			Decision: res.decision,
			Pooled:   res.pooled,
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	out := &BatchResult{Decisions: decisions}
	for _, d := range decisions {
		if d.Decision != nil && d.Decision.Accepted {
			out.Matched++
		}
		if d.Pooled {
			out.Pooled++
		}
	}

	if b.cfg.GenerateRoutes && b.aggregator != nil && b.generator != nil {
		proposals, err := b.generateFromPool(ctx)
		if err != nil {
			return nil, err
		}
		out.Proposals = proposals
	}

	return out, nil
}

// matchOne evaluates one order against every route/truck pair and
// returns the accepted decision with the best efficiency score. With no
// accepted pair it returns the first rejection so the caller still sees
// why, or nil when there was nothing to evaluate against.
func (b *BatchMatcher) matchOne(
	ctx context.Context,
	order domain.Order,
	routes []domain.Route,
	trucks map[string]*domain.Truck,
) (*domain.MatchDecision, error) {
	var (
		best          *domain.MatchDecision
		bestScore     float64
		firstRejected *domain.MatchDecision
	)

	for _, route := range routes {
		truck, ok := trucks[route.TruckID]
		if !ok {
			log.Printf("route=%s references unknown truck=%s, skipped", route.ID, route.TruckID)
			continue
		}

		decision, err := b.matcher.Evaluate(ctx, order, route, truck)
		if err != nil {
			return nil, err
		}
		if !decision.Accepted {
			if firstRejected == nil {
				firstRejected = decision
			}
			continue
		}

		est, err := b.profit.EstimateDetour(ctx, route, order)
		if err != nil {
			return nil, err
		}

		// Strictly-greater comparison keeps the earlier route on ties,
		// so the winner is deterministic for a given route order.
		score := efficiencyScore(order, truck, est)
		if best == nil || score > bestScore {
			best = decision
			bestScore = score
		}
	}

	if best != nil {
		return best, nil
	}
	return firstRejected, nil
}

// efficiencyScore ranks an accepted match: high truck utilization is
// rewarded, detour cost and added miles are penalized.
func efficiencyScore(order domain.Order, truck *domain.Truck, est DetourEstimate) float64 {
	volumeUtil := order.TotalVolumeM3() / truck.CapacityM3 * 100
	weightUtil := order.TotalWeightLbs() / truck.MaxWeightLbs * 100
	return (volumeUtil+weightUtil)/2 - est.CostUSD*10 - est.AddedMiles*5
}

// generateFromPool aggregates pooled orders into combinations and
// prices a route per combination, best-scored first. Profitable
// proposals claim their orders from the pool; combinations overlapping
// an already-claimed order are skipped.
func (b *BatchMatcher) generateFromPool(ctx context.Context) ([]RouteProposal, error) {
	combos := b.aggregator.FindCombinations(b.pool.Orders())
	if len(combos) == 0 {
		return nil, nil
	}

	used := make(map[string]struct{})
	var proposals []RouteProposal

	for _, combo := range combos {
		if len(proposals) >= b.cfg.MaxProposals {
			break
		}

		overlap := false
		for _, id := range combo.OrderIDs() {
			if _, ok := used[id]; ok {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		prop, err := b.generator.Propose(ctx, combo)
		if err != nil {
			return nil, fmt.Errorf("generate from pool: %w", err)
		}
		// Only strictly profitable routes are worth dispatching a truck for.
		if prop.Delta <= 0 {
			continue
		}

		proposals = append(proposals, prop)
		for _, id := range prop.OrderIDs {
			used[id] = struct{}{}
		}
		b.pool.Remove(prop.OrderIDs...)

		log.Printf("proposed route orders=%d distance_km=%.1f delta_usd=%.2f", len(prop.OrderIDs), prop.DistanceKm, prop.Delta)
	}

	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].Delta > proposals[j].Delta
	})
	return proposals, nil
}
