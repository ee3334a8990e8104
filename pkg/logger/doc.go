// Package logger builds the structured slog logger used by the outreach tools.
//
// Records are written to stderr as text (default) or JSON and may be mirrored
// to Sentry. Context extractors add per-run attributes such as the run ID to
// every record without threading them through each call site.
//
// # Usage
//
//	var cfg logger.Config // LOG_FORMAT, LOG_LEVEL, SENTRY_DSN, ...
//	log := logger.New(cfg, logger.WithContextExtractors(campaign.RunIDExtractor))
//	defer logger.Flush(2 * time.Second)
//
//	log.InfoContext(ctx, "email sent", slog.String("email", "ada@example.com"))
//
// # Sentry
//
// When SENTRY_DSN is set, error records become Sentry issues and warnings are
// stored as searchable logs (SENTRY_MIN_LEVEL=ERROR keeps only errors). An
// empty DSN or a failed SDK initialization leaves local logging untouched.
//
// # Context Extractors
//
// A ContextExtractor returns an attribute for the current context, or false
// to add nothing:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every record so they always see the current context.
// LogHandlerDecorator applies them around any slog.Handler.
package logger
