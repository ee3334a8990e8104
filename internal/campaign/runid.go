package campaign

import (
	"context"
	"log/slog"
)

type runIDKey struct{}

// WithRunID stores the run identifier in ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFrom returns the run identifier stored in ctx.
func RunIDFrom(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey{}).(string)
	return runID, ok && runID != ""
}

// RunIDExtractor adds run_id to every log record of a run.
// It satisfies logger.ContextExtractor.
func RunIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if runID, ok := RunIDFrom(ctx); ok {
		return slog.String("run_id", runID), true
	}
	return slog.Attr{}, false
}
