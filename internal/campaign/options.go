package campaign

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-row reporting.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithPause replaces the throttle pause. Tests use it to avoid real sleeps
// and to observe when pauses happen.
func WithPause(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Runner) {
		if fn != nil {
			r.pause = fn
		}
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
