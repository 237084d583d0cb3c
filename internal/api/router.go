package api

import (
	"net/http"
	"route-distance-service/internal/api/handlers"
	"route-distance-service/internal/platform/obs"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "route-distance-service"

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of the concrete directions provider.
func NewRouter(svc handlers.DistanceComputer, logger zerolog.Logger, metrics *obs.Metrics) http.Handler {
	r := mux.NewRouter()

	distanceHandler := handlers.NewDistanceHandler(svc, logger, metrics)

	r.HandleFunc("/health", handlers.Health(serviceName))
	r.HandleFunc("/distance/", distanceHandler.Distance)
	r.HandleFunc("/distance", distanceHandler.Distance)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)

	var h http.Handler = loggingMiddleware(r)
	h = requestIDMiddleware(logger, h)
	return otelhttp.NewHandler(h, "http.server")
}
