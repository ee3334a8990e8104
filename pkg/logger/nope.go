package logger

import "log/slog"

// NewNope creates a logger that discards all output.
// Components use it when the caller does not pass one.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
