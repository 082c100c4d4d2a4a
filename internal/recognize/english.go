package recognize

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/RowanDark/decipher/internal/textscore"
)

// englishThresholds holds the per-sensitivity cutoffs for the statistical
// checks. Low sensitivity is the strictest.
type englishThresholds struct {
	icLow, icHigh float64
	chiMax        float64
	wordPctMin    float64
	bigramAvgMin  float64
}

var thresholdsBySensitivity = map[Sensitivity]englishThresholds{
	SensitivityLow:    {icLow: 0.055, icHigh: 0.075, chiMax: 100, wordPctMin: 50, bigramAvgMin: -5.5},
	SensitivityMedium: {icLow: 0.040, icHigh: 0.090, chiMax: 150, wordPctMin: 35, bigramAvgMin: -6.0},
	SensitivityHigh:   {icLow: 0.035, icHigh: 0.095, chiMax: 220, wordPctMin: 25, bigramAvgMin: -6.5},
}

// EnglishRecognizer scores text with letter statistics and dictionary
// coverage. It is the workhorse recognizer when no exact format matches.
type EnglishRecognizer struct {
	sensitivity Sensitivity
}

// NewEnglishRecognizer builds the statistical recognizer.
func NewEnglishRecognizer(sensitivity Sensitivity) *EnglishRecognizer {
	return &EnglishRecognizer{sensitivity: sensitivity}
}

// Name implements Recognizer.
func (r *EnglishRecognizer) Name() string { return "english" }

// normalize lowercases and strips punctuation so statistics see only the
// letter stream.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range strings.ToLower(text) {
		if !unicode.IsPunct(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Evaluate implements Recognizer.
func (r *EnglishRecognizer) Evaluate(text string) Verdict {
	normalized := normalize(text)
	letters := 0
	for _, c := range normalized {
		if unicode.IsLetter(c) {
			letters++
		}
	}
	if letters < 3 {
		return Verdict{Classification: Undetermined, Recognizer: r.Name()}
	}

	th := thresholdsBySensitivity[r.sensitivity]
	ic := textscore.IndexOfCoincidence(normalized)
	chi := textscore.ChiSquared(normalized)
	wordPct := textscore.WordScore(normalized)
	bigramAvg := textscore.BigramScore(normalized)
	if !math.IsInf(bigramAvg, -1) && letters > 1 {
		bigramAvg /= float64(letters - 1)
	}

	icOK := ic >= th.icLow && ic <= th.icHigh
	chiOK := chi <= th.chiMax
	bigramOK := bigramAvg >= th.bigramAvgMin

	// Coverage percentage alone is weak evidence on short text: a lone
	// two-letter word inside a dozen junk bytes can clear the cutoff.
	// Require at least two recognized words spanning five letters before
	// coverage can identify plaintext.
	matchedWords, matchedLetters := textscore.WordMatches(normalized)
	wordsOK := wordPct >= th.wordPctMin && matchedWords >= 2 && matchedLetters >= 5

	statPasses := 0
	for _, ok := range []bool{icOK, chiOK, bigramOK} {
		if ok {
			statPasses++
		}
	}

	switch {
	case wordsOK && statPasses >= 1:
		confidence := 0.6 + wordPct/100*0.3 + float64(statPasses)*0.02
		if confidence > 0.98 {
			confidence = 0.98
		}
		return Verdict{
			Classification: Plaintext,
			Confidence:     confidence,
			Reason:         fmt.Sprintf("word coverage %.0f%%, %d/3 statistics in range", wordPct, statPasses),
			Recognizer:     r.Name(),
		}
	case statPasses == 3 && letters >= 20:
		// Concatenated text without word boundaries can still read as
		// English from letter statistics alone.
		return Verdict{
			Classification: Plaintext,
			Confidence:     0.62,
			Reason:         "letter statistics consistent with English",
			Recognizer:     r.Name(),
		}
	case letters >= 10 && !wordsOK && !chiOK && !bigramOK:
		return Verdict{
			Classification: Gibberish,
			Confidence:     0.7,
			Reason:         fmt.Sprintf("no word coverage, chi-squared %.0f", chi),
			Recognizer:     r.Name(),
		}
	default:
		return Verdict{Classification: Undetermined, Recognizer: r.Name()}
	}
}
