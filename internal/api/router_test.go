package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"route-distance-service/internal/adapters/directions"
	"route-distance-service/internal/domain"
	"route-distance-service/internal/platform/obs"
	"route-distance-service/internal/services"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()

	provider := directions.NewMockDirectionsProvider([]directions.MockRoute{{
		From:    domain.Coordinates{Lon: 2.3522, Lat: 48.8566},
		To:      domain.Coordinates{Lon: 4.8357, Lat: 45.764},
		Meters:  465000,
		Seconds: 16800,
	}})
	metrics := obs.NewMetrics()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return NewRouter(services.NewDistanceService(provider, metrics), logger, metrics), &buf
}

func TestRouterDistance(t *testing.T) {
	router, logs := newTestRouter(t)

	for _, path := range []string{"/distance/", "/distance"} {
		body := `{"origin": "48.8566,2.3522", "destination": "45.7640,4.8357"}`
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

		var res map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, 465.0, res["distance_km"])
		assert.Equal(t, 280.0, res["duration_min"])
	}

	assert.Contains(t, logs.String(), `"req_id":"abc-123"`)
	assert.Contains(t, logs.String(), `"message":"request"`)
}

func TestRouterGeneratesRequestID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	assert.JSONEq(t, `{"status":"ok","service":"route-distance-service"}`, w.Body.String())
}

func TestRouterMetricsCountOutcomes(t *testing.T) {
	router, _ := newTestRouter(t)

	bad := httptest.NewRequest(http.MethodPost, "/distance/", strings.NewReader(`{"origin":"bad","destination":"1,2"}`))
	router.ServeHTTP(httptest.NewRecorder(), bad)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route_distance_requests_total{outcome="validation"} 1`)
}

func TestRouterNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, w.Body.String())
}
