package graph

import (
	"context"
	"fmt"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/roadnet"
)

// MockGraphProvider serves a fixed graph for every box. Fetches counts
// calls so tests can assert when the network cache absorbed a lookup.
type MockGraphProvider struct {
	Graph   *roadnet.Graph
	Err     error
	Offline bool
	Fetches int
}

func NewMockGraphProvider(g *roadnet.Graph) *MockGraphProvider {
	return &MockGraphProvider{Graph: g}
}

func (m *MockGraphProvider) Available() bool {
	return m != nil && !m.Offline
}

func (m *MockGraphProvider) FetchGraph(
	ctx context.Context,
	box domain.BoundingBox,
) (*roadnet.Graph, error) {
	m.Fetches++

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Graph == nil {
		return nil, fmt.Errorf("no graph configured for box %s", box.Key())
	}

	return m.Graph, nil
}
