package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of op when the returned func runs.
//
//	defer obs.Time(ctx, logger, "osrm.Route")(&err)
func Time(ctx context.Context, logger *slog.Logger, op string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		OperationDuration.WithLabelValues(op).Observe(dur.Seconds())

		if errp != nil && *errp != nil {
			logger.WarnContext(ctx, "op failed", "req_id", reqID, "op", op, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		logger.DebugContext(ctx, "op done", "req_id", reqID, "op", op, "dur_ms", dur.Milliseconds())
	}
}
