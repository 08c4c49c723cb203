package interaction

import (
	"context"

	"instafeed/internal/observability"
)

// FailureSink receives toggle requests that did not complete. The optimistic
// state has already been kept by the time it is called.
type FailureSink interface {
	ToggleFailed(ctx context.Context, kind, id string, err error)
}

// FailureSinkFunc adapts a function to FailureSink.
type FailureSinkFunc func(ctx context.Context, kind, id string, err error)

func (f FailureSinkFunc) ToggleFailed(ctx context.Context, kind, id string, err error) {
	f(ctx, kind, id, err)
}

// logSink logs through slog and counts the failure in prometheus.
type logSink struct{}

func (logSink) ToggleFailed(ctx context.Context, kind, id string, err error) {
	observability.ClientToggleFailures.WithLabelValues(kind).Inc()
	observability.LogAsyncOperationError(ctx, "toggle_"+kind, err, map[string]interface{}{
		"item_id": id,
	})
}
