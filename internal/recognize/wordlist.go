package recognize

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordlistRecognizer identifies text by exact match against a user-supplied
// wordlist. It is the cheapest possible check and runs first when enabled.
type WordlistRecognizer struct {
	words map[string]struct{}
}

// NewWordlistRecognizer builds a recognizer over the given entries.
// Entries are matched exactly after trimming surrounding whitespace.
func NewWordlistRecognizer(entries []string) *WordlistRecognizer {
	words := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			words[e] = struct{}{}
		}
	}
	return &WordlistRecognizer{words: words}
}

// LoadWordlist reads one entry per line from path and builds a recognizer.
func LoadWordlist(path string) (*WordlistRecognizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return NewWordlistRecognizer(entries), nil
}

// Name implements Recognizer.
func (r *WordlistRecognizer) Name() string { return "wordlist" }

// Len returns the number of loaded entries.
func (r *WordlistRecognizer) Len() int { return len(r.words) }

// Evaluate implements Recognizer.
func (r *WordlistRecognizer) Evaluate(text string) Verdict {
	if _, ok := r.words[strings.TrimSpace(text)]; ok {
		return Verdict{
			Classification: Plaintext,
			Confidence:     1.0,
			Reason:         "exact wordlist match",
			Recognizer:     r.Name(),
		}
	}
	return Verdict{Classification: Undetermined, Recognizer: r.Name()}
}
