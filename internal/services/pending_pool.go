package services

import (
	"sync"

	"freight-matching-service/internal/domain"
)

// PendingPool holds orders that could not be matched to any existing
// route. Batch runs read it back to try aggregation into brand-new
// routes. Orders keep arrival order and are deduplicated by ID.
type PendingPool struct {
	mu     sync.Mutex
	orders []domain.Order
	byID   map[string]struct{}
}

func NewPendingPool() *PendingPool {
	return &PendingPool{byID: make(map[string]struct{})}
}

// Offer adds the order to the pool. Returns false when an order with
// the same ID is already pooled.
func (p *PendingPool) Offer(o domain.Order) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byID[o.ID]; ok {
		return false
	}
	p.byID[o.ID] = struct{}{}
	p.orders = append(p.orders, o)
	return true
}

// Orders returns a snapshot of the pooled orders in arrival order.
func (p *PendingPool) Orders() []domain.Order {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.Order, len(p.orders))
	copy(out, p.orders)
	return out
}

// Remove drops the orders with the given IDs, typically after they were
// placed on a newly generated route. Returns how many were removed.
func (p *PendingPool) Remove(ids ...string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	kept := p.orders[:0]
	for _, o := range p.orders {
		if _, ok := drop[o.ID]; ok {
			delete(p.byID, o.ID)
			removed++
			continue
		}
		kept = append(kept, o)
	}
	p.orders = kept
	return removed
}

func (p *PendingPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.orders)
}
