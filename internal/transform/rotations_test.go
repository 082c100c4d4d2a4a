package transform

import "testing"

func TestInvolutions(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		encode    func(string) string
		input     string
	}{
		{"rot13", Rot13(), EncodeRot13, "Rotate me thirteen places"},
		{"rot5", Rot5(), EncodeRot5, "call 555 0123"},
		{"rot18", Rot18(), EncodeRot18, "agent 007 reporting"},
		{"rot47", Rot47(), EncodeRot47, "The secret is out!"},
		{"atbash", Atbash(), EncodeAtbash, "mirror the alphabet"},
		{"reverse", Reverse(), EncodeReverse, "palindrome hunter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.encode(tt.input)
			if encoded == tt.input {
				t.Fatalf("encoding did not change %q", tt.input)
			}
			if !tt.transform.Applicable(encoded) {
				t.Fatalf("applicability rejected %q", encoded)
			}
			outputs, err := tt.transform.Apply(encoded)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if len(outputs) != 1 || outputs[0] != tt.input {
				t.Errorf("round trip got %q, want [%q]", outputs, tt.input)
			}
		})
	}
}

func TestRot13KnownAnswer(t *testing.T) {
	outputs, err := Rot13().Apply("Uryyb, Jbeyq!")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != "Hello, World!" {
		t.Errorf("got %q, want [Hello, World!]", outputs)
	}
}

func TestCaesarProducesAllShifts(t *testing.T) {
	ciphertext := CaesarShift("meet me at the harbor", 7)
	outputs, err := Caesar().Apply(ciphertext)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(outputs) != 25 {
		t.Fatalf("got %d outputs, want 25", len(outputs))
	}
	found := false
	for _, out := range outputs {
		if out == "meet me at the harbor" {
			found = true
		}
	}
	if !found {
		t.Error("plaintext missing from caesar candidates")
	}
}

func TestRot18AppliesBothAlphabets(t *testing.T) {
	if Rot18().Applicable("letters only") {
		t.Error("rot18 needs digits too")
	}
	if Rot18().Applicable("12345") {
		t.Error("rot18 needs letters too")
	}
	outputs, err := Rot18().Apply(EncodeRot18("abc 123"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != "abc 123" {
		t.Errorf("got %q, want [abc 123]", outputs)
	}
}
