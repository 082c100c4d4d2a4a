// Package textscore provides cheap statistical signals over candidate text:
// letter-frequency fit, index of coincidence, bigram scoring, dictionary
// word coverage, and Shannon entropy. The recognizers and the search
// priority heuristic both build on these.
package textscore

import (
	"math"
	"strings"
	"unicode"
)

// englishLetterFreq holds expected English letter frequencies (A-Z) as
// percentages.
var englishLetterFreq = [26]float64{
	8.167, 1.492, 2.782, 4.253, 12.702, 2.228, 2.015, // A-G
	6.094, 6.966, 0.153, 0.772, 4.025, 2.406, 6.749, // H-N
	7.507, 1.929, 0.095, 5.987, 6.327, 9.056, 2.758, // O-U
	0.978, 2.360, 0.150, 1.974, 0.074, // V-Z
}

// bigramLogProbs holds approximate log probabilities for the most common
// English bigrams. Anything absent scores -10.
var bigramLogProbs = map[string]float64{
	"TH": -2.0, "HE": -2.1, "IN": -2.3, "ER": -2.4, "AN": -2.5,
	"RE": -2.6, "ON": -2.7, "AT": -2.8, "EN": -2.8, "ND": -2.9,
	"TI": -3.0, "ES": -3.0, "OR": -3.1, "TE": -3.1, "OF": -3.2,
	"ED": -3.2, "IS": -3.3, "IT": -3.3, "AL": -3.4, "AR": -3.4,
	"ST": -3.5, "TO": -3.5, "NT": -3.6, "NG": -3.6, "SE": -3.7,
	"HA": -3.7, "AS": -3.8, "OU": -3.8, "IO": -3.9, "LE": -3.9,
	"VE": -4.0, "CO": -4.0, "ME": -4.1, "DE": -4.1, "HI": -4.2,
	"RI": -4.2, "RO": -4.3, "IC": -4.3, "NE": -4.4, "EA": -4.4,
	"RA": -4.5, "CE": -4.5, "LI": -4.6, "CH": -4.6, "LL": -4.7,
	"BE": -4.7, "MA": -4.8, "SI": -4.8, "OM": -4.9, "UR": -4.9,
}

// commonWords is a small set of very common English words used for fast
// word-coverage scoring. Longer wordlists belong to the wordlist recognizer.
var commonWords = buildWordSet(
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	"is", "was", "are", "been", "has", "had", "were", "said", "each", "here",
	"hello", "world", "test", "flag", "password", "secret", "key", "code", "cipher",
	"main", "function", "need", "somebody", "help", "general", "attack", "dawn",
)

func buildWordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// letterCounts returns per-letter counts and the total letter count after
// uppercasing and dropping non-alphabetic runes.
func letterCounts(text string) ([26]int, int) {
	var freq [26]int
	total := 0
	for _, r := range strings.ToUpper(text) {
		if r >= 'A' && r <= 'Z' {
			freq[r-'A']++
			total++
		}
	}
	return freq, total
}

// IndexOfCoincidence computes the IC of the alphabetic portion of text.
// English sits near 0.0667, uniformly random letters near 0.0385.
func IndexOfCoincidence(text string) float64 {
	freq, n := letterCounts(text)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for _, f := range freq {
		sum += float64(f) * float64(f-1)
	}
	return sum / (float64(n) * float64(n-1))
}

// ChiSquared compares the letter distribution of text against expected
// English frequencies. Lower is closer to English.
func ChiSquared(text string) float64 {
	freq, n := letterCounts(text)
	if n == 0 {
		return math.MaxFloat64
	}
	chi := 0.0
	for i := 0; i < 26; i++ {
		expected := float64(n) * englishLetterFreq[i] / 100.0
		if expected > 0 {
			diff := float64(freq[i]) - expected
			chi += diff * diff / expected
		}
	}
	return chi
}

// BigramScore sums log probabilities over adjacent letter pairs. Higher is
// more English-like; text with fewer than two letters scores -inf.
func BigramScore(text string) float64 {
	letters := make([]rune, 0, len(text))
	for _, r := range strings.ToUpper(text) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
	}
	if len(letters) < 2 {
		return math.Inf(-1)
	}
	score := 0.0
	for i := 0; i+1 < len(letters); i++ {
		p, ok := bigramLogProbs[string(letters[i:i+2])]
		if !ok {
			p = -10.0
		}
		score += p
	}
	return score
}

// WordScore returns the percentage of alphabetic text covered by common
// English words, weighted by word length.
func WordScore(text string) float64 {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	recognized, total := 0, 0
	for _, w := range fields {
		if len(w) < 2 {
			continue
		}
		total += len(w)
		if _, ok := commonWords[w]; ok {
			recognized += len(w)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(recognized) / float64(total) * 100.0
}

// WordMatches reports how many common English words appear in text and the
// total letters those matches cover. Words shorter than two letters are
// ignored, as in WordScore.
func WordMatches(text string) (words, letters int) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range fields {
		if len(w) < 2 {
			continue
		}
		if _, ok := commonWords[w]; ok {
			words++
			letters += len(w)
		}
	}
	return words, letters
}

// Entropy computes Shannon entropy in bits per byte.
func Entropy(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	var freq [256]int
	for i := 0; i < len(text); i++ {
		freq[text[i]]++
	}
	entropy := 0.0
	n := float64(len(text))
	for _, count := range freq {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// PrintableRatio returns the fraction of runes that are printable.
func PrintableRatio(text string) float64 {
	if text == "" {
		return 0
	}
	printable, total := 0, 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

// AlphaRatio returns the fraction of runes that are letters or spaces.
func AlphaRatio(text string) float64 {
	if text == "" {
		return 0
	}
	alpha, total := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || r == ' ' {
			alpha++
		}
	}
	return float64(alpha) / float64(total)
}

// Fitness combines the individual signals into a single score where higher
// means more plaintext-like. The weights are tuned, not derived.
func Fitness(text string) float64 {
	if text == "" {
		return math.Inf(-1)
	}
	icScore := -math.Abs(IndexOfCoincidence(text)-0.0667) * 1000.0
	chiScore := -ChiSquared(text)
	wordBonus := WordScore(text) * 10.0
	bigram := BigramScore(text)
	if math.IsInf(bigram, -1) {
		bigram = -1000
	}
	return icScore + chiScore + wordBonus + bigram
}
