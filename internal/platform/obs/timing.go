package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored by the API middleware, if any.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time logs the duration of a named operation at debug level using the
// request-scoped logger. Usage: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		ev := zerolog.Ctx(ctx).Debug()
		if errp != nil && *errp != nil {
			ev = ev.Err(*errp)
		}
		ev.Str("op", name).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("op finished")
	}
}
