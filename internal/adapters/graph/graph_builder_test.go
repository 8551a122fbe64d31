package graph

import (
	"errors"
	"testing"

	"github.com/paulmach/osm"

	"freight-matching-service/internal/roadnet"
)

func TestBuildGraphSplitsWaysIntoEdges(t *testing.T) {
	doc := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 33.7490, Lon: -84.3880},
			{ID: 2, Lat: 33.7590, Lon: -84.3880},
			{ID: 3, Lat: 33.7690, Lon: -84.3880},
		},
		Ways: osm.Ways{
			{
				ID:    10,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
				Tags: osm.Tags{
					{Key: "highway", Value: "primary"},
					{Key: "maxspeed", Value: "60"},
				},
			},
		},
	}

	g := buildGraph(doc)

	if g.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Fatalf("expected 4 edges (2 segments, both directions), got %d", g.EdgeCount())
	}

	path, err := g.ShortestPath(1, 3)
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if len(path.Edges) != 2 {
		t.Fatalf("expected a 2 edge path, got %d edges", len(path.Edges))
	}
	if path.Edges[0].SpeedKmh != 60 {
		t.Errorf("expected posted speed 60 km/h on edges, got %v", path.Edges[0].SpeedKmh)
	}

	// 0.02 degrees of latitude is roughly 2.2 km.
	dist := path.DistanceKm()
	if dist < 2.1 || dist > 2.3 {
		t.Errorf("expected path distance near 2.2 km, got %v", dist)
	}
}

func TestBuildGraphRespectsOneway(t *testing.T) {
	doc := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 33.7490, Lon: -84.3880},
			{ID: 2, Lat: 33.7590, Lon: -84.3880},
		},
		Ways: osm.Ways{
			{
				ID:    10,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
				Tags: osm.Tags{
					{Key: "highway", Value: "primary"},
					{Key: "oneway", Value: "yes"},
				},
			},
		},
	}

	g := buildGraph(doc)

	if _, err := g.ShortestPath(1, 2); err != nil {
		t.Fatalf("expected a forward path, got error: %v", err)
	}
	if _, err := g.ShortestPath(2, 1); !errors.Is(err, roadnet.ErrNoPath) {
		t.Errorf("expected no reverse path on a oneway road, got %v", err)
	}
}

func TestBuildGraphReversedOneway(t *testing.T) {
	doc := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 33.7490, Lon: -84.3880},
			{ID: 2, Lat: 33.7590, Lon: -84.3880},
		},
		Ways: osm.Ways{
			{
				ID:    10,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
				Tags: osm.Tags{
					{Key: "highway", Value: "residential"},
					{Key: "oneway", Value: "-1"},
				},
			},
		},
	}

	g := buildGraph(doc)

	if _, err := g.ShortestPath(2, 1); err != nil {
		t.Fatalf("expected a path against the drawing direction, got error: %v", err)
	}
	if _, err := g.ShortestPath(1, 2); !errors.Is(err, roadnet.ErrNoPath) {
		t.Errorf("expected no path along the drawing direction, got %v", err)
	}
}

func TestBuildGraphSkipsNonDrivableWays(t *testing.T) {
	doc := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 33.7490, Lon: -84.3880},
			{ID: 2, Lat: 33.7590, Lon: -84.3880},
		},
		Ways: osm.Ways{
			{
				ID:    10,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
				Tags:  osm.Tags{{Key: "highway", Value: "footway"}},
			},
		},
	}

	g := buildGraph(doc)

	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("expected an empty graph for footways only, got %d nodes %d edges",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestBuildGraphSkipsSegmentsWithMissingNodes(t *testing.T) {
	doc := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 33.7490, Lon: -84.3880},
			{ID: 2, Lat: 33.7590, Lon: -84.3880},
		},
		Ways: osm.Ways{
			{
				ID:    10,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 99}, {ID: 2}},
				Tags:  osm.Tags{{Key: "highway", Value: "primary"}},
			},
		},
	}

	g := buildGraph(doc)

	// Both segments touch the unknown node 99, so neither survives.
	if g.EdgeCount() != 0 {
		t.Errorf("expected segments with unknown nodes dropped, got %d edges", g.EdgeCount())
	}
}
