// Package search implements the best-first exploration over transform
// chains. Starting from the ciphertext, workers repeatedly expand the most
// promising frontier node by applying every applicable transform, feed each
// candidate through the recognizer pipeline, and stop when plaintext is
// identified or the budget runs out.
package search

import (
	"errors"
	"time"
)

// ErrEmptyInput is returned when the search is started on empty text.
var ErrEmptyInput = errors.New("input text is empty")

// ErrInvalidConfig is returned when the engine options fail validation.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// Status is the terminal state of a search run.
type Status string

const (
	// StatusSuccess means at least one plaintext was identified.
	StatusSuccess Status = "success"
	// StatusPartialSuccess means plaintext was found but the time budget
	// expired before the requested number of results was collected.
	StatusPartialSuccess Status = "partial_success"
	// StatusNotFound means the reachable space was exhausted without a hit.
	StatusNotFound Status = "not_found"
	// StatusTimedOut means the time budget expired with no result.
	StatusTimedOut Status = "timed_out"
)

// Result is one identified plaintext with the transform chain that
// produced it. Path lists transform identifiers in application order from
// the original input; an empty path means the input was already plaintext.
type Result struct {
	Path       []string `json:"path"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Depth      int      `json:"depth"`
	Recognizer string   `json:"recognizer"`
}

// Report is the full outcome of one run.
type Report struct {
	RunID    string        `json:"run_id"`
	Status   Status        `json:"status"`
	Results  []Result      `json:"results,omitempty"`
	Expanded int64         `json:"expanded"`
	Duration time.Duration `json:"duration"`
}

// Found reports whether the run identified any plaintext.
func (r *Report) Found() bool {
	return r.Status == StatusSuccess || r.Status == StatusPartialSuccess
}
