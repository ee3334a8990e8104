package rating

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/outreach/pkg/logger"
	"github.com/dmitrymomot/outreach/pkg/sheet"
)

const (
	// DefaultColumn holds company names in the input sheet.
	DefaultColumn = "Company Name"

	// ErrorRating is the rating recorded when the model could not be asked.
	ErrorRating = "Error"

	// NoExplanation is recorded when the answer has no explanation part.
	NoExplanation = "No explanation provided."

	promptFormat = "Rate the company '%s' for a software engineering career on a scale of 1 to 10. " +
		"Respond with only the rating and a brief, one-sentence explanation. " +
		"Your entire response must always be in the format: Rating: [number]/10. Explanation: [text with only one sentence]."

	explanationSep = ". Explanation: "
	ratingPrefix   = "Rating: "
)

// Result is the rating of one company.
type Result struct {
	Company     string
	Rating      string
	Explanation string
}

// Prompt returns the question asked for company.
func Prompt(company string) string {
	return fmt.Sprintf(promptFormat, company)
}

// Parse splits an answer of the form "Rating: 8/10. Explanation: ...".
// Answers that do not follow the format are kept whole as the rating.
func Parse(answer string) (rating, explanation string) {
	head, tail, found := strings.Cut(answer, explanationSep)
	rating = strings.TrimSpace(strings.ReplaceAll(head, ratingPrefix, ""))
	if !found {
		return rating, NoExplanation
	}
	return rating, strings.TrimSpace(tail)
}

// Option configures a Rater.
type Option func(*Rater)

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rater) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithInterval sets the minimum time between two completions.
// Zero or negative disables pacing.
func WithInterval(d time.Duration) Option {
	return func(r *Rater) {
		r.limiter = newLimiter(d)
	}
}

// Rater asks a Completer to rate companies one at a time.
type Rater struct {
	completer Completer
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// New creates a Rater pacing completions to one per second.
func New(c Completer, opts ...Option) *Rater {
	r := &Rater{
		completer: c,
		limiter:   newLimiter(time.Second),
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newLimiter(d time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(d), 1)
}

// Rate asks for one company's rating. A failed completion is not an error:
// it yields ErrorRating with the failure text as explanation. Only context
// cancellation is returned.
func (r *Rater) Rate(ctx context.Context, company string) (Result, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	answer, err := r.completer.Complete(ctx, Prompt(company))
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		r.logger.WarnContext(ctx, "could not get rating",
			slog.String("company", company),
			slog.String("error", err.Error()),
		)
		return Result{Company: company, Rating: ErrorRating, Explanation: err.Error()}, nil
	}

	rating, explanation := Parse(answer)
	return Result{Company: company, Rating: rating, Explanation: explanation}, nil
}

// RateAll rates companies in order. On cancellation the results gathered so
// far are returned with the context error.
func (r *Rater) RateAll(ctx context.Context, companies []string) ([]Result, error) {
	results := make([]Result, 0, len(companies))
	for i, company := range companies {
		r.logger.InfoContext(ctx, "rating company",
			slog.Int("index", i+1),
			slog.Int("total", len(companies)),
			slog.String("company", company),
		)
		res, err := r.Rate(ctx, company)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Companies returns the distinct non-empty values of column in first-seen
// order.
func Companies(t *sheet.Table, column string) ([]string, error) {
	col := t.Column(column)
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	seen := make(map[string]bool, len(t.Rows))
	companies := make([]string, 0, len(t.Rows))
	for row := range t.Rows {
		name := strings.TrimSpace(t.Cell(row, col))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		companies = append(companies, name)
	}
	return companies, nil
}

// Table lays results out as a Company/Rating/Explanation sheet.
func Table(results []Result) *sheet.Table {
	t := &sheet.Table{
		Name:   "Sheet1",
		Header: []string{"Company", "Rating", "Explanation"},
		Rows:   make([][]string, 0, len(results)),
	}
	for _, res := range results {
		t.Rows = append(t.Rows, []string{res.Company, res.Rating, res.Explanation})
	}
	return t
}
