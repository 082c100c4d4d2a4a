package recognize

import (
	"fmt"
	"regexp"
)

// knownPatterns are high-signal formats that identify text outright, in the
// spirit of the format identifiers security tooling runs first.
var knownPatterns = []struct {
	name       string
	confidence float64
	re         *regexp.Regexp
}{
	{"ctf flag", 0.98, regexp.MustCompile(`(?i)\b(flag|ctf|htb|thm|picoctf)\{[^}]{1,128}\}`)},
	{"url", 0.92, regexp.MustCompile(`\bhttps?://[A-Za-z0-9][A-Za-z0-9.-]*(?::\d{1,5})?(?:/[^\s]*)?`)},
	{"ipv4 address", 0.90, regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\b`)},
	{"email address", 0.90, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"uuid", 0.88, regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)},
	{"jwt", 0.85, regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`)},
}

// PatternRecognizer identifies well-known formats (flags, URLs, addresses)
// with a fixed rule table. It never reports gibberish; absence of a match
// is not evidence.
type PatternRecognizer struct{}

// NewPatternRecognizer builds the format recognizer.
func NewPatternRecognizer() *PatternRecognizer { return &PatternRecognizer{} }

// Name implements Recognizer.
func (r *PatternRecognizer) Name() string { return "pattern" }

// Evaluate implements Recognizer.
func (r *PatternRecognizer) Evaluate(text string) Verdict {
	for _, p := range knownPatterns {
		if p.re.MatchString(text) {
			return Verdict{
				Classification: Plaintext,
				Confidence:     p.confidence,
				Reason:         fmt.Sprintf("matched %s pattern", p.name),
				Recognizer:     r.Name(),
			}
		}
	}
	return Verdict{Classification: Undetermined, Recognizer: r.Name()}
}

// RegexRecognizer matches a single user-supplied expression. When the user
// configures one, it replaces every other recognizer: they are looking for
// one specific shape of answer.
type RegexRecognizer struct {
	re *regexp.Regexp
}

// NewRegexRecognizer compiles the user expression.
func NewRegexRecognizer(expr string) (*RegexRecognizer, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile custom regex: %w", err)
	}
	return &RegexRecognizer{re: re}, nil
}

// Name implements Recognizer.
func (r *RegexRecognizer) Name() string { return "regex" }

// Evaluate implements Recognizer.
func (r *RegexRecognizer) Evaluate(text string) Verdict {
	if r.re.MatchString(text) {
		return Verdict{
			Classification: Plaintext,
			Confidence:     1.0,
			Reason:         fmt.Sprintf("matched custom regex %s", r.re.String()),
			Recognizer:     r.Name(),
		}
	}
	return Verdict{Classification: Undetermined, Recognizer: r.Name()}
}
