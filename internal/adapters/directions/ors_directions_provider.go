package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-distance-service/internal/platform/obs"
	"route-distance-service/internal/ports"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"

	initialBackoff = 200 * time.Millisecond
)

type ORSConfig struct {
	APIKey  string
	BaseURL string
	// Timeout bounds a single HTTP attempt. Zero means no client-side timeout.
	Timeout time.Duration
	// MaxAttempts of 1 (or less) disables retries.
	MaxAttempts int
}

// ORSDirectionsProvider implements DirectionsProvider using the
// OpenRouteService directions API.
//
// The provider is safe for concurrent use.
type ORSDirectionsProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	maxAttempts int
	backoff     time.Duration
	tracer      trace.Tracer
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

func (c ORSConfig) attempts() int {
	if c.MaxAttempts < 1 {
		return 1
	}
	return c.MaxAttempts
}

// MaxCallDuration bounds one Directions call: every attempt running into
// Timeout plus the backoff waits between them. Zero when Timeout is zero.
func (c ORSConfig) MaxCallDuration() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}

	n := c.attempts()
	total := time.Duration(n) * c.Timeout
	wait := initialBackoff
	for i := 1; i < n; i++ {
		total += wait
		wait *= 2
	}
	return total
}

func NewORSDirectionsProvider(cfg ORSConfig) (*ORSDirectionsProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	provider := &ORSDirectionsProvider{
		session: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		maxAttempts: cfg.attempts(),
		backoff:     initialBackoff,
		tracer:      otel.Tracer("route-distance-service/ors"),
	}

	return provider, nil
}

// Directions requests a route through req.Coordinates from /v2/directions.
func (o *ORSDirectionsProvider) Directions(
	ctx context.Context,
	req ports.DirectionsRequest,
) (_ *geojson.FeatureCollection, err error) {
	defer obs.Time(ctx, "ors.Directions")(&err)

	ctx, span := o.tracer.Start(ctx, "ors.Directions")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(req.Coordinates) < 2 {
		return nil, &ports.ProviderError{
			Op:  "directions request",
			Err: fmt.Errorf("need at least 2 coordinates, got %d", len(req.Coordinates)),
		}
	}

	profile := req.Profile
	if profile == "" {
		profile = ports.ProfileDrivingCar
	}
	format := req.Format
	if format == "" {
		format = ports.FormatGeoJSON
	}

	span.SetAttributes(
		attribute.String("ors.profile", profile),
		attribute.String("ors.format", format),
		attribute.Int("ors.coordinates", len(req.Coordinates)),
	)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/%s", o.baseURL, profile, format)

	bodyObj := directionsRequest{Coordinates: make([][]float64, 0, len(req.Coordinates))}
	for _, c := range req.Coordinates {
		bodyObj.Coordinates = append(bodyObj.Coordinates, c.CoordsToList())
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, &ports.ProviderError{Op: "marshal directions request", Err: err}
	}

	resp, err := o.sendWithRetry(ctx, func() (*http.Request, error) {
		return o.buildRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, &ports.ProviderError{Op: "directions request", Err: err}
	}
	defer resp.Body.Close()

	var fc geojson.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, &ports.ProviderError{Op: "decode directions response", Err: err}
	}

	return &fc, nil
}
