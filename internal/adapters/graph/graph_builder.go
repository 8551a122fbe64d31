package graph

import (
	"github.com/paulmach/osm"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/roadnet"
)

// Highway classes a truck cannot take. Everything else that carries a
// highway tag is treated as drivable.
var nonDrivable = map[string]struct{}{
	"footway":      {},
	"path":         {},
	"cycleway":     {},
	"steps":        {},
	"pedestrian":   {},
	"bridleway":    {},
	"construction": {},
	"proposed":     {},
}

// buildGraph converts an OSM document into a routable graph. Ways are
// split into one edge per consecutive node pair; edges are added in
// both directions unless the way is tagged oneway.
func buildGraph(doc *osm.OSM) *roadnet.Graph {
	coords := make(map[osm.NodeID]domain.Coordinate, len(doc.Nodes))
	for _, n := range doc.Nodes {
		coords[n.ID] = domain.Coordinate{Lat: n.Lat, Lon: n.Lon}
	}

	g := roadnet.NewGraph()

	for _, w := range doc.Ways {
		highway := w.Tags.Find("highway")
		if highway == "" {
			continue
		}
		if _, skip := nonDrivable[highway]; skip {
			continue
		}

		speed := roadnet.EdgeSpeedKmh(w.Tags.Find("maxspeed"), highway)
		forward, backward := wayDirections(w.Tags.Find("oneway"))

		for i := 0; i+1 < len(w.Nodes); i++ {
			fromID := w.Nodes[i].ID
			toID := w.Nodes[i+1].ID

			from, ok := coords[fromID]
			if !ok {
				continue
			}
			to, ok := coords[toID]
			if !ok {
				continue
			}

			g.AddNode(roadnet.NodeID(fromID), from)
			g.AddNode(roadnet.NodeID(toID), to)

			length := from.DistanceTo(to)
			if forward {
				g.AddEdge(roadnet.NodeID(fromID), roadnet.NodeID(toID), length, speed)
			}
			if backward {
				g.AddEdge(roadnet.NodeID(toID), roadnet.NodeID(fromID), length, speed)
			}
		}
	}

	return g
}

// wayDirections interprets the oneway tag. "-1" marks a way drawn
// against its direction of travel.
func wayDirections(oneway string) (forward, backward bool) {
	switch oneway {
	case "yes", "true", "1":
		return true, false
	case "-1":
		return false, true
	default:
		return true, true
	}
}
