package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"route-distance-service/internal/api/dto"
	"route-distance-service/internal/domain"
	"route-distance-service/internal/platform/obs"
	"route-distance-service/internal/ports"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// DistanceComputer is implemented by services.DistanceService.
type DistanceComputer interface {
	Compute(ctx context.Context, origin string, destination string) (domain.DistanceResult, error)
}

type DistanceHandler struct {
	Service DistanceComputer
	Logger  zerolog.Logger
	Metrics *obs.Metrics

	validate *validator.Validate
}

func NewDistanceHandler(svc DistanceComputer, logger zerolog.Logger, metrics *obs.Metrics) *DistanceHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &DistanceHandler{
		Service:  svc,
		Logger:   logger,
		Metrics:  metrics,
		validate: v,
	}
}

// Distance handles POST /distance/.
//
// Every failure, whatever its cause, is answered with 400 and the error text
// as detail. The cause is kept in the log line and the metric label.
func (h *DistanceHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	logger := h.Logger.With().Str("req_id", obs.RequestID(r.Context())).Logger()

	var req dto.DistanceRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		h.fail(w, r, logger, fmt.Errorf("invalid json body: %w", err))
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.fail(w, r, logger, errors.New("body must contain only one JSON object"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.fail(w, r, logger, requiredFieldError(err))
		return
	}

	origin, destination := *req.Origin, *req.Destination

	logger.Info().
		Str("origin", origin).
		Str("destination", destination).
		Msg("received distance request")

	res, err := h.Service.Compute(r.Context(), origin, destination)
	if err != nil {
		h.fail(w, r, logger, err)
		return
	}

	logger.Info().
		Float64("distance_km", res.DistanceKm).
		Float64("duration_min", res.DurationMin).
		Msg("calculated distance")
	h.Metrics.ObserveRequest("ok")

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		Origin:      res.Origin,
		Destination: res.Destination,
		DistanceKm:  res.DistanceKm,
		DurationMin: res.DurationMin,
	})
}

func (h *DistanceHandler) fail(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	kind := errorKind(err)

	logger.Error().Err(err).Str("kind", kind).Msg("error processing request")
	h.Metrics.ObserveRequest(kind)

	writeError(w, r, http.StatusBadRequest, err.Error())
}

func errorKind(err error) string {
	var ve *domain.ValidationError
	var pe *ports.ProviderError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &pe):
		return "provider"
	default:
		return "request"
	}
}

// requiredFieldError reports the first failing field as a ValidationError.
func requiredFieldError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	return &domain.ValidationError{Field: fe.Field(), Message: "field required"}
}
