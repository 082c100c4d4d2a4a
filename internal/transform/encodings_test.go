package transform

import (
	"strings"
	"testing"
)

var roundTripInputs = []struct {
	name string
	text string
}{
	{"simple text", "Hello, World!"},
	{"sentence", "attack at dawn over the east ridge"},
	{"mixed case and digits", "Flag 1234 is Here"},
}

func TestEncodingRoundTrips(t *testing.T) {
	pairs := []struct {
		name   string
		encode func(string) string
		decode Transform
	}{
		{"base64", EncodeBase64, Base64()},
		{"base64url", EncodeBase64URL, Base64URL()},
		{"base32", EncodeBase32, Base32()},
		{"base32hex", EncodeBase32Hex, Base32Hex()},
		{"hex", EncodeHex, Hex()},
		{"binary", EncodeBinary, Binary()},
		{"decimal", EncodeDecimal, Decimal()},
		{"url", EncodeURL, URL()},
		{"quoted-printable", func(s string) string { return EncodeQuotedPrintable(s + " = done") }, QuotedPrintable()},
	}

	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			for _, tt := range roundTripInputs {
				encoded := pair.encode(tt.text)
				if pair.name == "url" && !strings.Contains(encoded, "%") {
					// Applicability requires at least one percent escape.
					continue
				}
				if !pair.decode.Applicable(encoded) {
					t.Errorf("%s: applicability rejected %q", tt.name, encoded)
					continue
				}
				outputs, err := pair.decode.Apply(encoded)
				if err != nil {
					t.Errorf("%s: decode failed: %v", tt.name, err)
					continue
				}
				found := false
				for _, out := range outputs {
					want := tt.text
					if pair.name == "quoted-printable" {
						want = tt.text + " = done"
					}
					if out == want {
						found = true
					}
				}
				if !found {
					t.Errorf("%s: round trip lost %q, got %q", tt.name, tt.text, outputs)
				}
			}
		})
	}
}

func TestHTMLEntitiesDecode(t *testing.T) {
	tr := HTMLEntities()
	encoded := EncodeHTML("<flag value=\"found & verified\">")
	if !tr.Applicable(encoded) {
		t.Fatalf("applicability rejected %q", encoded)
	}
	outputs, err := tr.Apply(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != "<flag value=\"found & verified\">" {
		t.Errorf("unexpected outputs %q", outputs)
	}

	// Text without entities produces no edge at all.
	if tr.Applicable("plain text") {
		t.Error("text without entities should not be applicable")
	}
}

func TestBase64ApplicabilityRejectsProse(t *testing.T) {
	tr := Base64()
	for _, text := range []string{"hello world", "not base64!", "a b c", ""} {
		if tr.Applicable(text) {
			t.Errorf("applicability accepted %q", text)
		}
	}
}

func TestHexDecodeToleratesPrefixesAndSeparators(t *testing.T) {
	tr := Hex()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "68656c6c6f", "hello"},
		{"0x prefix", "0x68656c6c6f", "hello"},
		{"colon separated", "68:65:6c:6c:6f", "hello"},
		{"space separated", "68 65 6c 6c 6f", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tr.Applicable(tt.input) {
				t.Fatalf("applicability rejected %q", tt.input)
			}
			outputs, err := tr.Apply(tt.input)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if len(outputs) != 1 || outputs[0] != tt.want {
				t.Errorf("got %q, want [%q]", outputs, tt.want)
			}
		})
	}
}

func TestBinaryRequiresWholeBytes(t *testing.T) {
	tr := Binary()
	if tr.Applicable("0101010") {
		t.Error("7 bits should not be applicable")
	}
	if !tr.Applicable("01101000 01101001") {
		t.Error("two spaced bytes should be applicable")
	}
	outputs, err := tr.Apply("01101000 01101001")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != "hi" {
		t.Errorf("got %q, want [hi]", outputs)
	}
}
