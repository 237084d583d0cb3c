package services

import (
	"context"
	"errors"
	"route-distance-service/internal/adapters/directions"
	"route-distance-service/internal/domain"
	"route-distance-service/internal/ports"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paris = domain.Coordinates{Lon: 2.3522, Lat: 48.8566}
	lyon  = domain.Coordinates{Lon: 4.8357, Lat: 45.764}
)

type stubProvider struct {
	fc  *geojson.FeatureCollection
	err error
}

func (s stubProvider) Directions(ctx context.Context, req ports.DirectionsRequest) (*geojson.FeatureCollection, error) {
	return s.fc, s.err
}

func TestDistanceServiceComputeParisLyon(t *testing.T) {
	provider := directions.NewMockDirectionsProvider([]directions.MockRoute{
		{From: paris, To: lyon, Meters: 465000, Seconds: 16800},
	})
	svc := NewDistanceService(provider, nil)

	res, err := svc.Compute(context.Background(), "48.8566,2.3522", "45.7640,4.8357")
	require.NoError(t, err)

	assert.Equal(t, domain.DistanceResult{
		Origin:      "48.8566,2.3522",
		Destination: "45.7640,4.8357",
		DistanceKm:  465.0,
		DurationMin: 280,
	}, res)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []domain.Coordinates{paris, lyon}, calls[0].Coordinates)
	assert.Equal(t, ports.ProfileDrivingCar, calls[0].Profile)
	assert.Equal(t, ports.FormatGeoJSON, calls[0].Format)
}

func TestDistanceServiceComputeIsIdempotent(t *testing.T) {
	provider := directions.NewMockDirectionsProvider([]directions.MockRoute{
		{From: paris, To: lyon, Meters: 465123.456, Seconds: 16829.9},
	})
	svc := NewDistanceService(provider, nil)

	first, err := svc.Compute(context.Background(), "48.8566,2.3522", "45.7640,4.8357")
	require.NoError(t, err)
	second, err := svc.Compute(context.Background(), "48.8566,2.3522", "45.7640,4.8357")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 465.12, first.DistanceKm)
	assert.Equal(t, 280.0, first.DurationMin)
}

func TestDistanceServiceValidationSkipsProvider(t *testing.T) {
	provider := directions.NewMockDirectionsProvider(nil)
	svc := NewDistanceService(provider, nil)

	_, err := svc.Compute(context.Background(), "bad", "48.8566,2.3522")

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "origin", ve.Field)
	assert.Contains(t, err.Error(), "latitude,longitude")
	assert.Empty(t, provider.Calls())

	_, err = svc.Compute(context.Background(), "48.8566,2.3522", "abc,2.0")
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "destination", ve.Field)
	assert.Empty(t, provider.Calls())
}

func TestDistanceServiceWrapsProviderError(t *testing.T) {
	provider := directions.NewMockDirectionsProvider(nil)
	provider.Err = errors.New("connection refused")
	svc := NewDistanceService(provider, nil)

	_, err := svc.Compute(context.Background(), "48.8566,2.3522", "45.7640,4.8357")

	var pe *ports.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "directions: connection refused", err.Error())
}

func TestDistanceServiceMalformedResponse(t *testing.T) {
	withProps := func(props geojson.Properties) *geojson.FeatureCollection {
		f := geojson.NewFeature(nil)
		f.Properties = props
		fc := geojson.NewFeatureCollection()
		return fc.Append(f)
	}

	tests := []struct {
		name string
		fc   *geojson.FeatureCollection
		want string
	}{
		{"nil", nil, "no route features"},
		{"empty", geojson.NewFeatureCollection(), "no route features"},
		{"no segments", withProps(geojson.Properties{}), "no segments"},
		{"empty segments", withProps(geojson.Properties{"segments": []interface{}{}}), "no segments"},
		{"bad segment", withProps(geojson.Properties{"segments": []interface{}{"x"}}), "unexpected segment type"},
		{
			"no distance",
			withProps(geojson.Properties{"segments": []interface{}{map[string]interface{}{"duration": 1.0}}}),
			"missing distance",
		},
		{
			"no duration",
			withProps(geojson.Properties{"segments": []interface{}{map[string]interface{}{"distance": 1.0}}}),
			"missing duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDistanceService(stubProvider{fc: tt.fc}, nil)

			_, err := svc.Compute(context.Background(), "48.8566,2.3522", "45.7640,4.8357")

			var pe *ports.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "extract route", pe.Op)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
