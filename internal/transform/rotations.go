package transform

import (
	"strings"
	"unicode"
)

func hasLetter(text string) bool {
	return strings.IndexFunc(text, unicode.IsLetter) >= 0
}

func hasDigit(text string) bool {
	return strings.IndexFunc(text, unicode.IsDigit) >= 0
}

// shiftLetters rotates A-Z/a-z forward by n positions, leaving everything
// else untouched.
func shiftLetters(text string, n int) string {
	n = ((n % 26) + 26) % 26
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune('a' + (r-'a'+rune(n))%26)
		case r >= 'A' && r <= 'Z':
			b.WriteRune('A' + (r-'A'+rune(n))%26)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// shiftDigits rotates 0-9 forward by n positions.
func shiftDigits(text string, n int) string {
	n = ((n % 10) + 10) % 10
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune('0' + (r-'0'+rune(n))%10)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Rot13 applies the ROT13 involution to letters.
func Rot13() Transform {
	return New("rot13", "ROT13", 0.5,
		hasLetter,
		func(text string) ([]string, error) {
			return single(shiftLetters(text, 13)), nil
		})
}

// Rot5 applies the ROT5 involution to digits.
func Rot5() Transform {
	return New("rot5", "ROT5", 0.5,
		hasDigit,
		func(text string) ([]string, error) {
			return single(shiftDigits(text, 5)), nil
		})
}

// Rot18 applies ROT13 to letters and ROT5 to digits in one pass.
func Rot18() Transform {
	return New("rot18", "ROT18", 0.6,
		func(text string) bool { return hasLetter(text) && hasDigit(text) },
		func(text string) ([]string, error) {
			return single(shiftDigits(shiftLetters(text, 13), 5)), nil
		})
}

// Rot47 rotates all printable ASCII (33-126) by 47, another involution.
func Rot47() Transform {
	return New("rot47", "ROT47", 0.8,
		func(text string) bool {
			for i := 0; i < len(text); i++ {
				if text[i] >= 33 && text[i] <= 126 {
					return true
				}
			}
			return false
		},
		func(text string) ([]string, error) {
			b := []byte(text)
			for i, c := range b {
				if c >= 33 && c <= 126 {
					b[i] = 33 + (c-33+47)%94
				}
			}
			return single(string(b)), nil
		})
}

// Caesar tries every non-trivial shift and returns each candidate. ROT13 is
// covered by the cheaper dedicated transform but is included here too; the
// duplicate child is dropped by the visited set.
func Caesar() Transform {
	return New("caesar", "Caesar (all shifts)", 2.0,
		hasLetter,
		func(text string) ([]string, error) {
			outputs := make([]string, 0, 25)
			for shift := 1; shift < 26; shift++ {
				if out := shiftLetters(text, shift); usable(out) {
					outputs = append(outputs, out)
				}
			}
			return outputs, nil
		})
}

// Atbash mirrors the alphabet (A<->Z, B<->Y, ...).
func Atbash() Transform {
	return New("atbash", "Atbash", 0.7,
		hasLetter,
		func(text string) ([]string, error) {
			var b strings.Builder
			b.Grow(len(text))
			for _, r := range text {
				switch {
				case r >= 'a' && r <= 'z':
					b.WriteRune('z' - (r - 'a'))
				case r >= 'A' && r <= 'Z':
					b.WriteRune('Z' - (r - 'A'))
				default:
					b.WriteRune(r)
				}
			}
			return single(b.String()), nil
		})
}

// CaesarShift encodes text with a forward Caesar shift. Decoding a shift of
// n is encoding with 26-n.
func CaesarShift(text string, n int) string {
	return shiftLetters(text, n)
}

// EncodeRot13 applies ROT13; the transform is its own inverse.
func EncodeRot13(text string) string { return shiftLetters(text, 13) }

// EncodeRot5 applies ROT5 to digits; also an involution.
func EncodeRot5(text string) string { return shiftDigits(text, 5) }

// EncodeRot18 applies ROT13 and ROT5 together.
func EncodeRot18(text string) string { return shiftDigits(shiftLetters(text, 13), 5) }

// EncodeRot47 applies ROT47; also an involution.
func EncodeRot47(text string) string {
	b := []byte(text)
	for i, c := range b {
		if c >= 33 && c <= 126 {
			b[i] = 33 + (c-33+47)%94
		}
	}
	return string(b)
}

// EncodeAtbash mirrors the alphabet; also an involution.
func EncodeAtbash(text string) string {
	out, _ := Atbash().Apply(text)
	if len(out) == 0 {
		return text
	}
	return out[0]
}
