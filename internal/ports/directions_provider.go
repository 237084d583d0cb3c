package ports

import (
	"context"
	"route-distance-service/internal/domain"

	"github.com/paulmach/orb/geojson"
)

const (
	ProfileDrivingCar = "driving-car"
	FormatGeoJSON     = "geojson"
)

// Parameters of a single directions query.
// Coordinates are visited in order; the first is the origin.
type DirectionsRequest struct {
	Coordinates []domain.Coordinates
	Profile     string
	Format      string
}

// Contract for retrieving a driving route between coordinates.
type DirectionsProvider interface {
	// Return the provider's route as a GeoJSON feature collection.
	// Each feature carries a "segments" property with distance (m) and duration (s).
	Directions(ctx context.Context, req DirectionsRequest) (*geojson.FeatureCollection, error)
}
