package services

import (
	"context"
	"errors"
	"fmt"
	"route-distance-service/internal/domain"
	"route-distance-service/internal/platform/obs"
	"route-distance-service/internal/ports"
	"time"

	"github.com/paulmach/orb/geojson"
)

// DistanceService turns a pair of raw coordinate strings into a rounded
// driving distance and duration using a DirectionsProvider.
type DistanceService struct {
	Provider ports.DirectionsProvider
	Metrics  *obs.Metrics
}

func NewDistanceService(provider ports.DirectionsProvider, metrics *obs.Metrics) *DistanceService {
	return &DistanceService{Provider: provider, Metrics: metrics}
}

// Compute validates both coordinates, queries the provider once and
// converts the first route segment to kilometers and minutes.
//
// Errors are either *domain.ValidationError or *ports.ProviderError.
func (s *DistanceService) Compute(
	ctx context.Context,
	origin string,
	destination string,
) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.Compute")(&err)

	from, err := domain.ParseField("origin", origin)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	to, err := domain.ParseField("destination", destination)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	start := time.Now()
	fc, err := s.Provider.Directions(ctx, ports.DirectionsRequest{
		Coordinates: []domain.Coordinates{from, to},
		Profile:     ports.ProfileDrivingCar,
		Format:      ports.FormatGeoJSON,
	})
	s.Metrics.ObserveProvider(time.Since(start), err)
	if err != nil {
		var pe *ports.ProviderError
		if errors.As(err, &pe) {
			return domain.DistanceResult{}, err
		}
		return domain.DistanceResult{}, &ports.ProviderError{Op: "directions", Err: err}
	}

	meters, seconds, err := firstSegment(fc)
	if err != nil {
		return domain.DistanceResult{}, &ports.ProviderError{Op: "extract route", Err: err}
	}

	return domain.DistanceResult{
		Origin:      origin,
		Destination: destination,
		DistanceKm:  domain.Kilometers(meters),
		DurationMin: domain.Minutes(seconds),
	}, nil
}

// firstSegment reads features[0].properties.segments[0].{distance,duration}.
func firstSegment(fc *geojson.FeatureCollection) (meters, seconds float64, err error) {
	if fc == nil || len(fc.Features) == 0 || fc.Features[0] == nil {
		return 0, 0, errors.New("response has no route features")
	}

	raw, ok := fc.Features[0].Properties["segments"]
	if !ok {
		return 0, 0, errors.New("route has no segments")
	}

	segments, ok := raw.([]interface{})
	if !ok || len(segments) == 0 {
		return 0, 0, errors.New("route has no segments")
	}

	segment, ok := segments[0].(map[string]interface{})
	if !ok {
		return 0, 0, fmt.Errorf("unexpected segment type %T", segments[0])
	}

	meters, ok = segment["distance"].(float64)
	if !ok {
		return 0, 0, errors.New("segment is missing distance")
	}

	seconds, ok = segment["duration"].(float64)
	if !ok {
		return 0, 0, errors.New("segment is missing duration")
	}

	return meters, seconds, nil
}
