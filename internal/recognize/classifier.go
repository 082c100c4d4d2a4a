package recognize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/RowanDark/decipher/internal/textscore"
)

// classifierPattern is one weighted signal in the heavyweight ensemble.
type classifierPattern struct {
	re      *regexp.Regexp
	literal string
	weight  float64
	message string
}

// Classifier is the optional heavyweight recognizer. It combines literal
// and regex evidence of structured plaintext with a full fitness pass, and
// is deliberately last in the pipeline: it only runs on candidates nothing
// cheaper could decide. It is feature-flagged and never a correctness
// dependency of the search.
type Classifier struct {
	patterns []classifierPattern
}

// NewClassifier builds the ensemble with its built-in pattern table.
func NewClassifier() *Classifier {
	return &Classifier{
		patterns: []classifierPattern{
			{literal: "the ", weight: 0.15, message: "common English article"},
			{literal: " and ", weight: 0.15, message: "common English conjunction"},
			{literal: "password", weight: 0.3, message: "credential keyword"},
			{literal: "secret", weight: 0.3, message: "credential keyword"},
			{re: regexp.MustCompile(`(?i)\b(user(name)?|login|token|api[_-]?key)\b`), weight: 0.35, message: "credential keyword"},
			{re: regexp.MustCompile(`(?m)^\s*[{\[].*[}\]]\s*$`), weight: 0.25, message: "JSON-shaped payload"},
			{re: regexp.MustCompile(`(?i)<[a-z][a-z0-9]*(\s[^>]*)?>`), weight: 0.2, message: "markup tag"},
			{re: regexp.MustCompile(`(?i)\b(select|insert|update|delete)\b.+\bfrom\b`), weight: 0.3, message: "SQL statement"},
		},
	}
}

// Name implements Recognizer.
func (c *Classifier) Name() string { return "classifier" }

// Evaluate implements Recognizer.
func (c *Classifier) Evaluate(text string) Verdict {
	lower := strings.ToLower(text)

	evidence := 0.0
	var reasons []string
	for _, p := range c.patterns {
		matched := false
		if p.literal != "" {
			matched = strings.Contains(lower, p.literal)
		} else {
			matched = p.re.MatchString(text)
		}
		if matched {
			evidence += p.weight
			reasons = append(reasons, p.message)
		}
	}

	// Structural evidence alone can identify the text.
	if evidence >= 0.5 {
		confidence := 0.6 + evidence*0.3
		if confidence > 0.92 {
			confidence = 0.92
		}
		return Verdict{
			Classification: Plaintext,
			Confidence:     confidence,
			Reason:         fmt.Sprintf("structural evidence: %s", strings.Join(reasons, ", ")),
			Recognizer:     c.Name(),
		}
	}

	fitness := textscore.Fitness(text)
	entropy := textscore.Entropy(text)
	switch {
	case fitness > -100 && evidence > 0:
		return Verdict{
			Classification: Plaintext,
			Confidence:     0.65,
			Reason:         "fitness and structural evidence combined",
			Recognizer:     c.Name(),
		}
	case entropy > 5.5 && textscore.WordScore(text) == 0:
		return Verdict{
			Classification: Gibberish,
			Confidence:     0.75,
			Reason:         fmt.Sprintf("high entropy (%.2f bits/byte), no word coverage", entropy),
			Recognizer:     c.Name(),
		}
	default:
		return Verdict{Classification: Undetermined, Recognizer: c.Name()}
	}
}
