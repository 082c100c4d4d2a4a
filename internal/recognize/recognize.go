// Package recognize classifies candidate text as plaintext, gibberish, or
// undetermined. Recognizers are composed into an ordered pipeline, cheapest
// first, and the pipeline short-circuits on the first confident
// identification.
package recognize

import "fmt"

// Classification is the three-way outcome of a recognizer.
type Classification int

const (
	// Undetermined means the recognizer could not decide either way.
	Undetermined Classification = iota
	// Gibberish means the text is confidently not plaintext.
	Gibberish
	// Plaintext means the text was identified as meaningful.
	Plaintext
)

// String returns the lowercase classification name.
func (c Classification) String() string {
	switch c {
	case Plaintext:
		return "plaintext"
	case Gibberish:
		return "gibberish"
	default:
		return "undetermined"
	}
}

// Verdict is the result of evaluating one candidate text.
type Verdict struct {
	Classification Classification
	// Confidence is in [0,1] and qualifies the classification.
	Confidence float64
	// Reason names the matched rule or scoring summary.
	Reason string
	// Recognizer is the name of the recognizer that produced the verdict.
	Recognizer string
}

// Recognizer scores a single candidate text.
type Recognizer interface {
	// Name returns the recognizer's identifier for verdicts and stats.
	Name() string

	// Evaluate classifies text. It must be side-effect free.
	Evaluate(text string) Verdict
}

// Sensitivity tunes how eagerly the statistical recognizers accept text.
type Sensitivity int

const (
	// SensitivityLow minimizes false positives.
	SensitivityLow Sensitivity = iota
	// SensitivityMedium is the default balance.
	SensitivityMedium
	// SensitivityHigh accepts marginal candidates.
	SensitivityHigh
)

// ParseSensitivity maps a config string onto a Sensitivity.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch s {
	case "low":
		return SensitivityLow, nil
	case "", "medium":
		return SensitivityMedium, nil
	case "high":
		return SensitivityHigh, nil
	}
	return SensitivityMedium, fmt.Errorf("unknown sensitivity %q", s)
}

// Pipeline runs recognizers in registration order and short-circuits on the
// first Plaintext verdict. When no recognizer identifies the text, the
// strongest Gibberish verdict wins, otherwise Undetermined.
type Pipeline struct {
	recognizers []Recognizer
}

// NewPipeline builds a pipeline. Order matters: put cheap recognizers first.
func NewPipeline(recognizers ...Recognizer) *Pipeline {
	return &Pipeline{recognizers: recognizers}
}

// Evaluate classifies text through the ordered recognizer set.
func (p *Pipeline) Evaluate(text string) Verdict {
	best := Verdict{Classification: Undetermined, Recognizer: "pipeline"}
	for _, r := range p.recognizers {
		v := r.Evaluate(text)
		if v.Classification == Plaintext {
			return v
		}
		if v.Classification == Gibberish && v.Confidence > best.Confidence {
			best = v
		}
	}
	return best
}

// Len returns the number of recognizers in the pipeline.
func (p *Pipeline) Len() int { return len(p.recognizers) }
