package roadnet

import (
	"freight-matching-service/internal/domain"
)

type NodeID int64

// A graph node, typically a road intersection.
type Node struct {
	ID NodeID
	At domain.Coordinate
}

// A directed road segment between two nodes.
type Edge struct {
	From     NodeID
	To       NodeID
	LengthKm float64
	SpeedKmh float64
}

// Road-network graph: nodes plus adjacency lists of directed edges.
// Read-only after construction; safe for concurrent readers.
type Graph struct {
	nodes map[NodeID]Node
	adj   map[NodeID][]Edge
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]Node),
		adj:   make(map[NodeID][]Edge),
	}
}

// AddNode registers a node. Re-adding an ID overwrites its coordinate.
func (g *Graph) AddNode(id NodeID, at domain.Coordinate) {
	g.nodes[id] = Node{ID: id, At: at}
}

// AddEdge adds a directed edge. The speed is clamped to the valid range so a
// corrupt tag can never produce absurd drive times.
func (g *Graph) AddEdge(from, to NodeID, lengthKm, speedKmh float64) {
	g.adj[from] = append(g.adj[from], Edge{
		From:     from,
		To:       to,
		LengthKm: lengthKm,
		SpeedKmh: clampSpeed(speedKmh),
	})
}

func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.adj {
		count += len(edges)
	}
	return count
}

// NearestNode returns the node closest to the coordinate by great-circle
// distance, scanning all nodes. False when the graph is empty.
func (g *Graph) NearestNode(c domain.Coordinate) (NodeID, bool) {
	var (
		bestID   NodeID
		bestDist float64
		found    bool
	)
	for id, n := range g.nodes {
		d := c.DistanceTo(n.At)
		// Tie-breaker on ID keeps the scan deterministic across map order.
		if !found || d < bestDist || (d == bestDist && id < bestID) {
			bestID = id
			bestDist = d
			found = true
		}
	}
	return bestID, found
}

// An ordered sequence of edges from one node to another.
type Path struct {
	Edges []Edge
}

// DistanceKm sums the edge lengths along the path.
func (p *Path) DistanceKm() float64 {
	var total float64
	for _, e := range p.Edges {
		total += e.LengthKm
	}
	return total
}

// DriveTimeHours sums length/speed per edge along the path.
func (p *Path) DriveTimeHours() float64 {
	var total float64
	for _, e := range p.Edges {
		total += e.LengthKm / e.SpeedKmh
	}
	return total
}
