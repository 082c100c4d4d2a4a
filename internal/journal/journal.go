// Package journal appends one JSON line per search run, so repeated
// sessions over the same material leave a reviewable trail of what was
// tried and what it yielded.
package journal

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ResultRecord is one recovered plaintext inside a run record.
type ResultRecord struct {
	Path       []string `json:"path"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Depth      int      `json:"depth"`
}

// RunRecord is the journal entry for one search run.
type RunRecord struct {
	Timestamp   time.Time      `json:"timestamp"`
	Tool        string         `json:"tool"`
	RunID       string         `json:"run_id"`
	InputDigest string         `json:"input_digest"`
	Status      string         `json:"status"`
	Results     []ResultRecord `json:"results,omitempty"`
	Expanded    int64          `json:"expanded"`
	DurationMS  int64          `json:"duration_ms"`
}

// Option configures a Journal.
type Option func(*config) error

type config struct {
	writers          []io.Writer
	closers          []io.Closer
	useDefaultWriter bool
}

func defaultConfig() *config {
	return &config{writers: []io.Writer{os.Stdout}, useDefaultWriter: true}
}

// WithWriter adds a destination for journal lines.
func WithWriter(w io.Writer) Option {
	return func(cfg *config) error {
		if w == nil {
			return errors.New("writer cannot be nil")
		}
		cfg.writers = append(cfg.writers, w)
		return nil
	}
}

// WithFile appends journal lines to the file at path, creating it if
// needed.
func WithFile(path string) Option {
	return func(cfg *config) error {
		if strings.TrimSpace(path) == "" {
			return errors.New("file path cannot be empty")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		cfg.writers = append(cfg.writers, f)
		cfg.closers = append(cfg.closers, f)
		return nil
	}
}

// WithoutStdout drops the default stdout destination.
func WithoutStdout() Option {
	return func(cfg *config) error {
		cfg.useDefaultWriter = false
		filtered := cfg.writers[:0]
		for _, w := range cfg.writers {
			if w == os.Stdout {
				continue
			}
			filtered = append(filtered, w)
		}
		cfg.writers = filtered
		return nil
	}
}

// Journal serializes run records to its destinations. It is safe for
// concurrent use.
type Journal struct {
	tool    string
	mu      sync.Mutex
	encoder *json.Encoder
	closers []io.Closer
}

// New builds a journal tagged with the given tool name.
func New(tool string, opts ...Option) (*Journal, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			for _, closer := range cfg.closers {
				_ = closer.Close()
			}
			return nil, err
		}
	}
	if !cfg.useDefaultWriter && len(cfg.writers) == 0 {
		return nil, errors.New("no writers configured for journal")
	}
	enc := json.NewEncoder(io.MultiWriter(cfg.writers...))
	enc.SetEscapeHTML(false)
	return &Journal{tool: tool, encoder: enc, closers: cfg.closers}, nil
}

// Append writes one record. A zero timestamp is filled in with the current
// time; an empty tool name inherits the journal's.
func (j *Journal) Append(record RunRecord) error {
	if j == nil {
		return errors.New("nil journal")
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	} else {
		record.Timestamp = record.Timestamp.UTC()
	}
	if record.Tool == "" {
		record.Tool = j.tool
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.encoder.Encode(record)
}

// Close releases any file destinations the journal opened.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	var firstErr error
	for _, closer := range j.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	j.closers = nil
	return firstErr
}
