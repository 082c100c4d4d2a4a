package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RowanDark/decipher/internal/journal"
	"github.com/RowanDark/decipher/internal/transform"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunDecodesBase64Argument(t *testing.T) {
	input := transform.EncodeBase64("The main function")

	code, stdout, stderr := runCLI(t, "", "-text", input)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "The main function") {
		t.Errorf("stdout missing recovered text:\n%s", stdout)
	}
	if !strings.Contains(stdout, "chain: base64") {
		t.Errorf("stdout missing transform chain:\n%s", stdout)
	}
}

func TestRunReadsStdin(t *testing.T) {
	input := transform.EncodeBase64("The main function") + "\n"

	code, stdout, _ := runCLI(t, input)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "The main function") {
		t.Errorf("stdout missing recovered text:\n%s", stdout)
	}
}

func TestRunEncodeHelper(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-encode", "rot13", "-text", "Hello, World!")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := strings.TrimSpace(stdout); got != "Uryyb, Jbeyq!" {
		t.Errorf("encoded = %q, want %q", got, "Uryyb, Jbeyq!")
	}
}

func TestRunEncodeUnknownTransform(t *testing.T) {
	code, _, stderr := runCLI(t, "", "-encode", "nonsense", "-text", "hi")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "nonsense") {
		t.Errorf("stderr should name the transform:\n%s", stderr)
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	cases := [][]string{
		{"-no-such-flag"},
		{"-sensitivity", "extreme", "-text", "hi"},
		{"-depth", "-3", "-text", "hi"},
		{"-config", "/no/such/file.yaml", "-text", "hi"},
	}
	for _, args := range cases {
		if code, _, _ := runCLI(t, "", args...); code != 2 {
			t.Errorf("run(%v) = %d, want 2", args, code)
		}
	}
}

func TestRunNothingFound(t *testing.T) {
	code, _, stderr := runCLI(t, "",
		"-text", "zzqqj xkvwp mmbrt",
		"-budget", "500ms",
		"-depth", "2",
	)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1, stderr:\n%s", code, stderr)
	}
}

func TestRunHumanVerify(t *testing.T) {
	input := transform.EncodeBase64("The main function")

	t.Run("accepted", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "y\n", "-verify", "-text", input)
		if code != 0 {
			t.Fatalf("exit code = %d, want 0", code)
		}
		if !strings.Contains(stdout, "The main function") {
			t.Errorf("accepted result not printed:\n%s", stdout)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		code, _, stderr := runCLI(t, "n\n", "-verify", "-text", input)
		if code != 1 {
			t.Fatalf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr, "rejected") {
			t.Errorf("stderr should report the rejection:\n%s", stderr)
		}
	})
}

func TestRunWritesJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	input := transform.EncodeBase64("The main function")

	code, _, stderr := runCLI(t, "", "-journal", path, "-text", input)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	var record journal.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal journal: %v", err)
	}
	if record.Status != "success" || record.RunID == "" {
		t.Errorf("record = %+v", record)
	}
	if strings.Contains(string(data), input) {
		t.Error("journal must record the input digest, not the raw input")
	}
	if len(record.Results) == 0 || record.Results[0].Text != "The main function" {
		t.Errorf("results = %+v", record.Results)
	}
}

func TestReadInputPrecedence(t *testing.T) {
	got, err := readInput("from-flag", "", []string{"positional"}, strings.NewReader("stdin"))
	if err != nil || got != "from-flag" {
		t.Errorf("readInput = %q, %v; want the -text value", got, err)
	}
	got, err = readInput("", "", []string{"two", "words"}, strings.NewReader("stdin"))
	if err != nil || got != "two words" {
		t.Errorf("readInput = %q, %v; want joined positional args", got, err)
	}
	got, err = readInput("", "", nil, strings.NewReader("from stdin\n"))
	if err != nil || got != "from stdin" {
		t.Errorf("readInput = %q, %v; want trimmed stdin", got, err)
	}
}
