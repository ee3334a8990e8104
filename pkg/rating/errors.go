package rating

import "errors"

var (
	// ErrAPIKeyRequired indicates the completion endpoint has no credentials.
	ErrAPIKeyRequired = errors.New("rating: API key is required")

	// ErrCompletionFailed wraps a failed or empty model response.
	ErrCompletionFailed = errors.New("rating: completion failed")

	// ErrMissingColumn indicates the input sheet lacks the company column.
	ErrMissingColumn = errors.New("rating: company column not found")
)
