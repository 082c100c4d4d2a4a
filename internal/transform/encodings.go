package transform

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"mime/quotedprintable"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	base64Pattern    = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
	base64URLPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+={0,2}$`)
	base32Pattern    = regexp.MustCompile(`^[A-Z2-7]+={0,6}$`)
	base32HexPattern = regexp.MustCompile(`^[0-9A-V]+={0,6}$`)
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	binaryPattern    = regexp.MustCompile(`^[01]+$`)
	decimalPattern   = regexp.MustCompile(`^[0-9]{1,3}([ ,][0-9]{1,3})+$`)
	percentPattern   = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
	entityPattern    = regexp.MustCompile(`&[a-zA-Z]+;|&#[0-9]+;|&#x[0-9a-fA-F]+;`)
	qpPattern        = regexp.MustCompile(`=[0-9A-F]{2}|=\r?\n`)
)

// Base64 decodes standard Base64, tolerating missing padding.
func Base64() Transform {
	return New("base64", "Base64", 1.0,
		func(text string) bool {
			s := strings.TrimSpace(text)
			return len(s) >= 4 && base64Pattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			s := strings.TrimSpace(text)
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				decoded, err = base64.RawStdEncoding.DecodeString(s)
				if err != nil {
					return nil, fmt.Errorf("base64 decode failed: %w", err)
				}
			}
			return single(string(decoded)), nil
		})
}

// Base64URL decodes URL-safe Base64, tolerating missing padding.
func Base64URL() Transform {
	return New("base64url", "Base64 (URL-safe)", 1.0,
		func(text string) bool {
			s := strings.TrimSpace(text)
			return len(s) >= 4 && base64URLPattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			s := strings.TrimSpace(text)
			decoded, err := base64.URLEncoding.DecodeString(s)
			if err != nil {
				decoded, err = base64.RawURLEncoding.DecodeString(s)
				if err != nil {
					return nil, fmt.Errorf("base64url decode failed: %w", err)
				}
			}
			return single(string(decoded)), nil
		})
}

// Base32 decodes standard (RFC 4648) Base32.
func Base32() Transform {
	return New("base32", "Base32", 1.1,
		func(text string) bool {
			s := strings.TrimSpace(text)
			return len(s) >= 8 && base32Pattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			s := strings.TrimSpace(text)
			decoded, err := base32.StdEncoding.DecodeString(s)
			if err != nil {
				decoded, err = base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
				if err != nil {
					return nil, fmt.Errorf("base32 decode failed: %w", err)
				}
			}
			return single(string(decoded)), nil
		})
}

// Base32Hex decodes the extended-hex Base32 alphabet.
func Base32Hex() Transform {
	return New("base32hex", "Base32 (extended hex)", 1.2,
		func(text string) bool {
			s := strings.TrimSpace(text)
			return len(s) >= 8 && base32HexPattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			s := strings.TrimSpace(text)
			decoded, err := base32.HexEncoding.DecodeString(s)
			if err != nil {
				decoded, err = base32.HexEncoding.WithPadding(base32.NoPadding).DecodeString(s)
				if err != nil {
					return nil, fmt.Errorf("base32hex decode failed: %w", err)
				}
			}
			return single(string(decoded)), nil
		})
}

// stripHex removes common hex prefixes and separators.
func stripHex(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, `\x`)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ":", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// Hex decodes hexadecimal text, tolerating 0x prefixes and separators.
func Hex() Transform {
	return New("hex", "Hexadecimal", 1.0,
		func(text string) bool {
			s := stripHex(text)
			return len(s) >= 4 && len(s)%2 == 0 && hexPattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			decoded, err := hex.DecodeString(stripHex(text))
			if err != nil {
				return nil, fmt.Errorf("hex decode failed: %w", err)
			}
			return single(string(decoded)), nil
		})
}

// Binary decodes a string of 8-bit binary groups.
func Binary() Transform {
	return New("binary", "Binary", 1.0,
		func(text string) bool {
			s := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
			return len(s) >= 8 && len(s)%8 == 0 && binaryPattern.MatchString(s)
		},
		func(text string) ([]string, error) {
			s := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
			out := make([]byte, 0, len(s)/8)
			for i := 0; i < len(s); i += 8 {
				val, err := strconv.ParseUint(s[i:i+8], 2, 8)
				if err != nil {
					return nil, fmt.Errorf("invalid binary group at %d: %w", i, err)
				}
				out = append(out, byte(val))
			}
			return single(string(out)), nil
		})
}

// Decimal decodes space- or comma-separated byte values.
func Decimal() Transform {
	return New("decimal", "Decimal bytes", 1.2,
		func(text string) bool {
			return decimalPattern.MatchString(strings.TrimSpace(text))
		},
		func(text string) ([]string, error) {
			fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
				return r == ' ' || r == ','
			})
			out := make([]byte, 0, len(fields))
			for _, f := range fields {
				if f == "" {
					continue
				}
				val, err := strconv.ParseUint(f, 10, 8)
				if err != nil {
					return nil, fmt.Errorf("invalid decimal byte %q: %w", f, err)
				}
				out = append(out, byte(val))
			}
			return single(string(out)), nil
		})
}

// URL decodes percent-encoded text.
func URL() Transform {
	return New("url", "URL percent-encoding", 0.8,
		func(text string) bool {
			return percentPattern.MatchString(text)
		},
		func(text string) ([]string, error) {
			decoded, err := url.QueryUnescape(text)
			if err != nil {
				return nil, fmt.Errorf("url decode failed: %w", err)
			}
			return single(decoded), nil
		})
}

// HTMLEntities decodes HTML character entities.
func HTMLEntities() Transform {
	return New("html", "HTML entities", 0.8,
		func(text string) bool {
			return entityPattern.MatchString(text)
		},
		func(text string) ([]string, error) {
			decoded := html.UnescapeString(text)
			if decoded == text {
				return nil, nil
			}
			return single(decoded), nil
		})
}

// QuotedPrintable decodes MIME quoted-printable text.
func QuotedPrintable() Transform {
	return New("quoted-printable", "Quoted-printable", 1.0,
		func(text string) bool {
			return qpPattern.MatchString(text)
		},
		func(text string) ([]string, error) {
			decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(text)))
			if err != nil {
				return nil, fmt.Errorf("quoted-printable decode failed: %w", err)
			}
			return single(string(decoded)), nil
		})
}

// Encode helpers used by the CLI encode mode and round-trip tests.

// EncodeBase64 encodes text as standard Base64.
func EncodeBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBase64URL encodes text as URL-safe Base64.
func EncodeBase64URL(text string) string {
	return base64.URLEncoding.EncodeToString([]byte(text))
}

// EncodeBase32 encodes text as standard Base32.
func EncodeBase32(text string) string {
	return base32.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBase32Hex encodes text with the extended-hex Base32 alphabet.
func EncodeBase32Hex(text string) string {
	return base32.HexEncoding.EncodeToString([]byte(text))
}

// EncodeHex encodes text as lowercase hexadecimal.
func EncodeHex(text string) string {
	return hex.EncodeToString([]byte(text))
}

// EncodeBinary encodes text as space-separated 8-bit binary groups.
func EncodeBinary(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%08b", text[i])
	}
	return b.String()
}

// EncodeDecimal encodes text as space-separated decimal byte values.
func EncodeDecimal(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(text[i])))
	}
	return b.String()
}

// EncodeURL percent-encodes text.
func EncodeURL(text string) string {
	return url.QueryEscape(text)
}

// EncodeHTML escapes HTML special characters as entities.
func EncodeHTML(text string) string {
	return html.EscapeString(text)
}

// EncodeQuotedPrintable encodes text as MIME quoted-printable.
func EncodeQuotedPrintable(text string) string {
	var b strings.Builder
	w := quotedprintable.NewWriter(&b)
	_, _ = w.Write([]byte(text))
	_ = w.Close()
	return b.String()
}
