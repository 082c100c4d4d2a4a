package stats

import "log/slog"

// SlogObserver writes each event as a structured log record. Transform and
// verdict events log at debug to keep default output quiet; run completion
// logs at info.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver builds a log observer; a nil logger uses slog.Default.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

// OnTransformApplied implements Observer.
func (o *SlogObserver) OnTransformApplied(e TransformEvent) {
	o.logger.Debug("transform applied",
		"run_id", e.RunID,
		"transform", e.TransformID,
		"depth", e.Depth,
		"outcome", string(e.Outcome),
		"outputs", e.Outputs,
	)
}

// OnCheckResult implements Observer.
func (o *SlogObserver) OnCheckResult(e CheckEvent) {
	o.logger.Debug("check result",
		"run_id", e.RunID,
		"recognizer", e.Recognizer,
		"depth", e.Depth,
		"classification", e.Classification,
		"confidence", e.Confidence,
	)
}

// OnSearchFinished implements Observer.
func (o *SlogObserver) OnSearchFinished(e FinishEvent) {
	o.logger.Info("search finished",
		"run_id", e.RunID,
		"status", e.Status,
		"results", e.Results,
		"expanded", e.Expanded,
		"duration", e.Duration,
	)
}
