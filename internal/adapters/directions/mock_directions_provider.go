package directions

import (
	"context"
	"fmt"
	"route-distance-service/internal/domain"
	"route-distance-service/internal/ports"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type MockRoute struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
}

// MockDirectionsProvider answers from a fixed table of routes, shaped like
// an ORS geojson response. Err, when set, is returned for every call.
type MockDirectionsProvider struct {
	Err error

	m map[string]MockRoute

	mu    sync.Mutex
	calls []ports.DirectionsRequest
}

func NewMockDirectionsProvider(routes []MockRoute) *MockDirectionsProvider {
	m := make(map[string]MockRoute, len(routes))
	for _, r := range routes {
		m[routeKey(r.From, r.To)] = r
	}
	return &MockDirectionsProvider{m: m}
}

func (p *MockDirectionsProvider) Directions(
	ctx context.Context,
	req ports.DirectionsRequest,
) (*geojson.FeatureCollection, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}

	if len(req.Coordinates) != 2 {
		return nil, fmt.Errorf("mock supports exactly 2 coordinates, got %d", len(req.Coordinates))
	}

	from, to := req.Coordinates[0], req.Coordinates[1]
	r, ok := p.m[routeKey(from, to)]
	if !ok {
		return nil, fmt.Errorf("missing route %v -> %v", from.CoordsToList(), to.CoordsToList())
	}

	f := geojson.NewFeature(orb.LineString{{from.Lon, from.Lat}, {to.Lon, to.Lat}})
	f.Properties["segments"] = []interface{}{
		map[string]interface{}{"distance": r.Meters, "duration": r.Seconds},
	}
	f.Properties["summary"] = map[string]interface{}{"distance": r.Meters, "duration": r.Seconds}

	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	return fc, nil
}

// Calls returns the requests received so far.
func (p *MockDirectionsProvider) Calls() []ports.DirectionsRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]ports.DirectionsRequest, len(p.calls))
	copy(out, p.calls)
	return out
}

func routeKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%v,%v|%v,%v", from.Lon, from.Lat, to.Lon, to.Lat)
}
