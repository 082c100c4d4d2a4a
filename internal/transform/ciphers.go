package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/RowanDark/decipher/internal/textscore"
)

var (
	a1z26Pattern = regexp.MustCompile(`^[0-9]{1,2}([ \-][0-9]{1,2})+$`)
	morsePattern = regexp.MustCompile(`^[.\-/ ]+$`)
)

// A1Z26 decodes numbers 1-26 into letters.
func A1Z26() Transform {
	return New("a1z26", "A1Z26", 1.0,
		func(text string) bool {
			return a1z26Pattern.MatchString(strings.TrimSpace(text))
		},
		func(text string) ([]string, error) {
			fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
				return r == ' ' || r == '-'
			})
			var b strings.Builder
			for _, f := range fields {
				if f == "" {
					continue
				}
				n, err := strconv.Atoi(f)
				if err != nil || n < 1 || n > 26 {
					return nil, fmt.Errorf("value %q outside 1-26", f)
				}
				b.WriteByte(byte('a' + n - 1))
			}
			return single(b.String()), nil
		})
}

var morseToChar = map[string]byte{
	".-": 'a', "-...": 'b', "-.-.": 'c', "-..": 'd', ".": 'e',
	"..-.": 'f', "--.": 'g', "....": 'h', "..": 'i', ".---": 'j',
	"-.-": 'k', ".-..": 'l', "--": 'm', "-.": 'n', "---": 'o',
	".--.": 'p', "--.-": 'q', ".-.": 'r', "...": 's', "-": 't',
	"..-": 'u', "...-": 'v', ".--": 'w', "-..-": 'x', "-.--": 'y',
	"--..": 'z',
	"-----": '0', ".----": '1', "..---": '2', "...--": '3', "....-": '4',
	".....": '5', "-....": '6', "--...": '7', "---..": '8', "----.": '9',
}

var charToMorse = func() map[byte]string {
	m := make(map[byte]string, len(morseToChar))
	for code, c := range morseToChar {
		m[c] = code
	}
	return m
}()

// Morse decodes International Morse code. Letters are separated by spaces,
// words by a slash.
func Morse() Transform {
	return New("morse", "Morse code", 1.0,
		func(text string) bool {
			s := strings.TrimSpace(text)
			return len(s) >= 3 && strings.ContainsAny(s, ".-") && morsePattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			var b strings.Builder
			for i, word := range strings.Split(strings.TrimSpace(text), "/") {
				if i > 0 {
					b.WriteByte(' ')
				}
				for _, symbol := range strings.Fields(word) {
					c, ok := morseToChar[symbol]
					if !ok {
						return nil, fmt.Errorf("unknown morse symbol %q", symbol)
					}
					b.WriteByte(c)
				}
			}
			return single(b.String()), nil
		})
}

// Reverse reverses the rune order; its own inverse.
func Reverse() Transform {
	return New("reverse", "Reverse", 0.4,
		func(text string) bool { return len(text) >= 2 },
		func(text string) ([]string, error) {
			runes := []rune(text)
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return single(string(runes)), nil
		})
}

// xorBruteCandidates caps how many single-byte XOR candidates are emitted
// per expansion.
const xorBruteCandidates = 5

// XORBrute tries every single-byte key and keeps the few most
// plaintext-like outputs.
func XORBrute() Transform {
	return New("xor", "XOR (single-byte brute force)", 3.0,
		func(text string) bool { return len(text) >= 4 },
		func(text string) ([]string, error) {
			type scored struct {
				text  string
				score float64
			}
			var candidates []scored
			for key := 1; key < 256; key++ {
				b := []byte(text)
				for i := range b {
					b[i] ^= byte(key)
				}
				out := string(b)
				if !usable(out) {
					continue
				}
				candidates = append(candidates, scored{out, textscore.Fitness(out)})
			}
			sort.Slice(candidates, func(i, j int) bool {
				return candidates[i].score > candidates[j].score
			})
			if len(candidates) > xorBruteCandidates {
				candidates = candidates[:xorBruteCandidates]
			}
			outputs := make([]string, len(candidates))
			for i, c := range candidates {
				outputs[i] = c.text
			}
			return outputs, nil
		})
}

// EncodeA1Z26 encodes letters as dash-separated positions 1-26; everything
// that is not a letter is dropped.
func EncodeA1Z26(text string) string {
	var parts []string
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			parts = append(parts, strconv.Itoa(int(r-'a')+1))
		}
	}
	return strings.Join(parts, "-")
}

// EncodeMorse encodes letters and digits as Morse; words are separated by a
// slash, anything unmappable is dropped.
func EncodeMorse(text string) string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		var symbols []string
		for i := 0; i < len(word); i++ {
			if code, ok := charToMorse[word[i]]; ok {
				symbols = append(symbols, code)
			}
		}
		if len(symbols) > 0 {
			words = append(words, strings.Join(symbols, " "))
		}
	}
	return strings.Join(words, " / ")
}

// EncodeReverse reverses rune order; also an involution.
func EncodeReverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// EncodeXOR applies a single-byte XOR key.
func EncodeXOR(text string, key byte) string {
	b := []byte(text)
	for i := range b {
		b[i] ^= key
	}
	return string(b)
}
