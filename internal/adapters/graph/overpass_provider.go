package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/obs"
	"freight-matching-service/internal/roadnet"
)

// OverpassProvider fetches road networks from an Overpass API instance
// and converts them into routable graphs.
//
// It coordinates:
//   - Bounding box to Overpass QL query translation
//   - External API calls with retry/backoff
//   - OSM way and node conversion into graph nodes and edges
//
// The provider is safe for concurrent use.
type OverpassProvider struct {
	session *http.Client
	baseURL string
}

func NewOverpassProvider(baseURL string, timeout time.Duration) (*OverpassProvider, error) {
	if baseURL == "" {
		return nil, errors.New("overpass base URL is empty")
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OverpassProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

func (p *OverpassProvider) Available() bool {
	return p != nil && p.session != nil
}

// buildQuery renders an Overpass QL query selecting every highway way
// inside the box, recursing down to the member nodes for coordinates.
func buildQuery(box domain.BoundingBox) string {
	return fmt.Sprintf(
		`[out:json][timeout:25];(way["highway"](%.6f,%.6f,%.6f,%.6f);>;);out body;`,
		box.South, box.West, box.North, box.East,
	)
}

// FetchGraph downloads the road network covering box and builds a graph
// from it. An empty but well-formed response yields an empty graph, not
// an error; the caller decides how to treat a network with no roads.
func (p *OverpassProvider) FetchGraph(
	ctx context.Context,
	box domain.BoundingBox,
) (_ *roadnet.Graph, err error) {
	defer obs.Time(ctx, "overpass.FetchGraph")(&err)

	query := buildQuery(box)
	form := url.Values{"data": {query}}.Encode()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		body := strings.NewReader(form)
		return p.newRequest(ctx, http.MethodPost, p.baseURL, body)
	})
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	var doc osm.OSM
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	return buildGraph(&doc), nil
}
