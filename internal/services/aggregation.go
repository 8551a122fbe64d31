package services

import (
	"math"
	"sort"

	"freight-matching-service/internal/domain"
)

type AggregatorConfig struct {
	// MaxCombinationSize bounds how many orders may share one new
	// route. Combination count grows combinatorially with this.
	MaxCombinationSize int
	CapacityM3         float64
	MaxWeightLbs       float64
}

func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		MaxCombinationSize: 5,
		CapacityM3:         48.0,
		MaxWeightLbs:       9180.0,
	}
}

// A candidate set of pooled orders that fits one truck, scored for how
// well it would fill it.
type OrderCombination struct {
	Orders         []domain.Order
	TotalVolumeM3  float64
	TotalWeightLbs float64
	Score          float64
}

// OrderIDs returns the member order IDs in combination order.
func (c OrderCombination) OrderIDs() []string {
	ids := make([]string, 0, len(c.Orders))
	for _, o := range c.Orders {
		ids = append(ids, o.ID)
	}
	return ids
}

// Aggregator searches pooled orders for combinations worth dedicating a
// new route to. Scoring favors high truck utilization, geographically
// clustered stops and consolidating more orders per truck.
type Aggregator struct {
	cfg AggregatorConfig
}

func NewAggregator(cfg AggregatorConfig) *Aggregator {
	if cfg.MaxCombinationSize < 2 {
		cfg.MaxCombinationSize = 2
	}
	return &Aggregator{cfg: cfg}
}

// FindCombinations enumerates order subsets of size two up to the
// configured maximum, keeps the ones that fit a truck with mutually
// compatible cargo, and returns them sorted by score, best first.
// Ties keep enumeration order, so results are deterministic for a given
// input order.
func (a *Aggregator) FindCombinations(orders []domain.Order) []OrderCombination {
	if len(orders) < 2 {
		return nil
	}

	maxSize := a.cfg.MaxCombinationSize
	if maxSize > len(orders) {
		maxSize = len(orders)
	}

	var combos []OrderCombination
	picked := make([]int, 0, maxSize)

	var walk func(start, size int)
	walk = func(start, size int) {
		if len(picked) == size {
			if c, ok := a.evaluate(orders, picked); ok {
				combos = append(combos, c)
			}
			return
		}
		for i := start; i < len(orders); i++ {
			picked = append(picked, i)
			walk(i+1, size)
			picked = picked[:len(picked)-1]
		}
	}
	for size := 2; size <= maxSize; size++ {
		walk(0, size)
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].Score > combos[j].Score
	})
	return combos
}

// evaluate checks one index set for feasibility and scores it.
func (a *Aggregator) evaluate(orders []domain.Order, idx []int) (OrderCombination, bool) {
	c := OrderCombination{Orders: make([]domain.Order, 0, len(idx))}

	var loaded []domain.Cargo
	for _, i := range idx {
		o := orders[i]
		c.TotalVolumeM3 += o.TotalVolumeM3()
		c.TotalWeightLbs += o.TotalWeightLbs()
		if c.TotalVolumeM3 > a.cfg.CapacityM3 || c.TotalWeightLbs > a.cfg.MaxWeightLbs {
			return OrderCombination{}, false
		}
		if !o.CompatibleWith(loaded) {
			return OrderCombination{}, false
		}
		loaded = append(loaded, o.Cargo...)
		c.Orders = append(c.Orders, o)
	}

	c.Score = a.score(c)
	return c, true
}

// score blends truck utilization (60%), geographic clustering (25%) and
// order count (15%) into a 0..100 ranking value.
func (a *Aggregator) score(c OrderCombination) float64 {
	volumeUtil := c.TotalVolumeM3 / a.cfg.CapacityM3 * 100
	weightUtil := c.TotalWeightLbs / a.cfg.MaxWeightLbs * 100
	countScore := math.Min(float64(len(c.Orders))*5, 20)
	return volumeUtil*0.3 + weightUtil*0.3 + clusteringScore(c.Orders)*0.25 + countScore*0.15
}

// clusteringScore grades how tightly the combination's stops sit
// together: 100 when the mean pairwise distance is within 100 km,
// falling linearly to 10 at 500 km and beyond. Tight clusters make
// short, dense routes.
func clusteringScore(orders []domain.Order) float64 {
	points := make([]domain.Coordinate, 0, 2*len(orders))
	for _, o := range orders {
		points = append(points, o.Pickup, o.Dropoff)
	}

	var sum float64
	pairs := 0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			sum += points[i].DistanceTo(points[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 100
	}

	avg := sum / float64(pairs)
	switch {
	case avg <= 100:
		return 100
	case avg >= 500:
		return 10
	default:
		return 100 - (avg-100)/400*90
	}
}
