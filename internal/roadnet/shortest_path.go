package roadnet

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrNoPath marks node pairs with no connecting road path.
var ErrNoPath = errors.New("no road path between nodes")

// ShortestPath runs Dijkstra from one node to another, minimizing total edge
// length. Returns ErrNoPath when the target is unreachable.
func (g *Graph) ShortestPath(from, to NodeID) (*Path, error) {
	if _, ok := g.nodes[from]; !ok {
		return nil, fmt.Errorf("shortest path: unknown start node %d", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return nil, fmt.Errorf("shortest path: unknown goal node %d", to)
	}

	if from == to {
		return &Path{}, nil
	}

	dist := map[NodeID]float64{from: 0}
	cameFrom := make(map[NodeID]Edge)
	visited := make(map[NodeID]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: from, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.node

		if current == to {
			return reconstructPath(cameFrom, from, to), nil
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, e := range g.adj[current] {
			tentative := dist[current] + e.LengthKm
			if old, ok := dist[e.To]; !ok || tentative < old {
				dist[e.To] = tentative
				cameFrom[e.To] = e
				heap.Push(pq, &pqItem{node: e.To, priority: tentative})
			}
		}
	}

	return nil, fmt.Errorf("shortest path from %d to %d: %w", from, to, ErrNoPath)
}

func reconstructPath(cameFrom map[NodeID]Edge, from, to NodeID) *Path {
	var reversed []Edge
	for current := to; current != from; {
		e := cameFrom[current]
		reversed = append(reversed, e)
		current = e.From
	}

	edges := make([]Edge, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		edges = append(edges, reversed[i])
	}
	return &Path{Edges: edges}
}

type pqItem struct {
	node     NodeID
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
