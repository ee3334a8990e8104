package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs one JSON object per record.
	FormatJSON Format = "json"
	// FormatText outputs human-readable key=value records.
	FormatText Format = "text"
)

// Config is the environment-driven logger configuration.
type Config struct {
	Format Format     `env:"LOG_FORMAT" envDefault:"text"`
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Sentry SentryConfig
}

// Option configures logger creation.
type Option func(*options)

type options struct {
	output     io.Writer
	extractors []ContextExtractor
}

// WithOutput sets custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithContextExtractors registers functions that inject attributes from context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a logger writing to stderr in the configured format.
// When cfg.Sentry.DSN is set, warnings and errors are also shipped to Sentry.
func New(cfg Config, opts ...Option) *slog.Logger {
	o := &options{output: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	handler := newHandler(o.output, cfg.Format, cfg.Level)
	if cfg.Sentry.DSN != "" {
		handler = withSentry(handler, cfg.Sentry)
	}
	return slog.New(NewLogHandlerDecorator(handler, o.extractors...))
}

// ParseFormat validates a textual format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatText:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid log format %q: must be %q or %q", s, FormatJSON, FormatText)
	}
}

func newHandler(w io.Writer, format Format, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
