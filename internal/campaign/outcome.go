package campaign

import "fmt"

// Status is the terminal state of one recipient row in a run.
type Status string

const (
	StatusSkippedAlreadySent Status = "skipped_already_sent"
	StatusSkippedNoTemplate  Status = "skipped_no_template"
	StatusSkippedLoadFailed  Status = "skipped_load_failed"
	StatusSkippedBindFailed  Status = "skipped_bind_failed"
	StatusSent               Status = "sent"
	StatusFailed             Status = "failed"
)

// Skipped reports whether the row never reached the transport.
func (s Status) Skipped() bool {
	switch s {
	case StatusSkippedAlreadySent, StatusSkippedNoTemplate, StatusSkippedLoadFailed, StatusSkippedBindFailed:
		return true
	}
	return false
}

// Outcome records what happened to one row.
type Outcome struct {
	Err    error // reason for load/bind skips and failures
	Name   string
	Email  string
	Status Status
	Row    int
}

// Report summarizes a run.
type Report struct {
	Outcomes  []Outcome
	Sent      int
	Skipped   int
	Failed    int
	Persisted bool // the recipients sheet was rewritten
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch {
	case o.Status == StatusSent:
		r.Sent++
	case o.Status == StatusFailed:
		r.Failed++
	case o.Status.Skipped():
		r.Skipped++
	}
}

// HasFailures reports whether any row ended in StatusFailed.
func (r *Report) HasFailures() bool {
	return r != nil && r.Failed > 0
}

// Summary is a one-line human readable description of a report.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d sent, %d skipped, %d failed", r.Sent, r.Skipped, r.Failed)
	if !r.Persisted {
		s += "; recipients sheet left unmodified"
	}
	return s
}
