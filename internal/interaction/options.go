package interaction

import (
	"context"
	"time"

	"instafeed/internal/featureflags"
)

// DefaultRequestTimeout bounds each persist request.
const DefaultRequestTimeout = 10 * time.Second

// BurstEvent is delivered to burst listeners when a double tap is recognized.
type BurstEvent struct {
	ID    string
	Until time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithSerializedRequests queues persist requests per item so responses for
// the same item apply in request order. Different items still run in parallel.
func WithSerializedRequests(on bool) Option {
	return func(s *Store) { s.serialized = on }
}

// WithFeatureFlags enables request serialization when the serialize_toggles
// flag is on for subject.
func WithFeatureFlags(m *featureflags.Manager, subject string) Option {
	return func(s *Store) {
		if m.Enabled(featureflags.SerializeToggles, subject) {
			s.serialized = true
		}
	}
}

// WithRequestTimeout sets the per-request timeout. Non-positive values keep the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithFailureSink replaces the default slog + prometheus failure sink.
func WithFailureSink(sink FailureSink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithBurstListener registers fn to be called on every like burst.
// Listeners run on the caller's goroutine, outside the store lock.
func WithBurstListener(fn func(BurstEvent)) Option {
	return func(s *Store) {
		if fn != nil {
			s.burstListeners = append(s.burstListeners, fn)
		}
	}
}

// WithBaseContext sets the parent context of every persist request. Values
// such as correlation ids flow into the request goroutines.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Store) {
		if ctx != nil {
			s.baseCtx = ctx
		}
	}
}
