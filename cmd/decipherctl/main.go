// Command decipherctl identifies and reverses layered text encodings. It
// reads ciphertext from an argument, a file, or stdin, searches for a chain
// of transforms that yields recognizable plaintext, and prints the chain and
// the recovered text.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"

	"github.com/RowanDark/decipher/internal/cache"
	"github.com/RowanDark/decipher/internal/config"
	"github.com/RowanDark/decipher/internal/journal"
	"github.com/RowanDark/decipher/internal/recognize"
	"github.com/RowanDark/decipher/internal/search"
	"github.com/RowanDark/decipher/internal/stats"
	"github.com/RowanDark/decipher/internal/transform"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, input, code := parseArgs(args, stdin, stdout, stderr)
	if code >= 0 {
		return code
	}

	logLevel := slog.LevelInfo
	if opts.cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	observers := []stats.Observer{stats.NewSlogObserver(logger)}
	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		prom, err := stats.NewPromObserver(reg)
		if err != nil {
			fmt.Fprintf(stderr, "register metrics: %v\n", err)
			return 1
		}
		observers = append(observers, prom)
		go serveMetrics(opts.metricsAddr, reg, logger)
	}
	bus := stats.NewBus(observers...)
	defer bus.Close()

	pipeline, err := recognize.BuildPipeline(recognize.PipelineOptions{
		Sensitivity:      opts.sensitivity,
		WordlistPath:     opts.cfg.WordlistPath,
		CustomRegex:      opts.cfg.Regex,
		EnableClassifier: opts.cfg.EnableClassifier,
	})
	if err != nil {
		fmt.Fprintf(stderr, "build recognizers: %v\n", err)
		return 2
	}

	pathCache, err := buildCache(opts.cfg)
	if err != nil {
		fmt.Fprintf(stderr, "build cache: %v\n", err)
		return 1
	}

	engine, err := search.New(transform.DefaultCatalog(), pipeline, pathCache, bus, search.Options{
		MaxDepth:            opts.cfg.MaxDepth,
		TimeBudget:          opts.cfg.TimeBudget,
		Workers:             opts.cfg.Workers,
		ConfidenceThreshold: opts.cfg.ConfidenceThreshold,
		TopResults:          opts.cfg.TopResults,
	})
	if err != nil {
		fmt.Fprintf(stderr, "configure engine: %v\n", err)
		return 2
	}

	report, err := engine.Run(context.Background(), input)
	if err != nil {
		fmt.Fprintf(stderr, "search: %v\n", err)
		return 1
	}

	if opts.journalPath != "" {
		if err := appendJournal(opts.journalPath, input, report); err != nil {
			fmt.Fprintf(stderr, "write journal: %v\n", err)
		}
	}

	return printReport(report, opts.cfg.HumanVerify, stdin, stdout, stderr)
}

// cliOptions carries the resolved configuration plus CLI-only settings.
type cliOptions struct {
	cfg         config.Config
	sensitivity recognize.Sensitivity
	metricsAddr string
	journalPath string
}

// parseArgs resolves flags over the config file and gathers the input text.
// A non-negative return code means run should exit with it immediately.
func parseArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) (cliOptions, string, int) {
	fs := flag.NewFlagSet("decipherctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a YAML config file")
	text := fs.String("text", "", "Ciphertext to identify (defaults to stdin)")
	file := fs.String("file", "", "Read ciphertext from a file")
	depth := fs.Int("depth", 0, "Maximum transform chain length")
	budget := fs.Duration("budget", 0, "Time budget for the search")
	workers := fs.Int("workers", 0, "Concurrent expansion workers (0 = CPU count)")
	sensitivity := fs.String("sensitivity", "", "Recognizer sensitivity: low, medium, high")
	threshold := fs.Float64("threshold", 0, "Minimum confidence for a result")
	top := fs.Int("top", 0, "Number of distinct plaintexts to collect (-1 for all)")
	wordlist := fs.String("wordlist", "", "Wordlist file of expected plaintexts")
	regex := fs.String("regex", "", "Accept only text matching this expression")
	classifier := fs.Bool("classifier", false, "Enable the heavyweight classifier")
	verify := fs.Bool("verify", false, "Confirm each result interactively")
	redisAddr := fs.String("redis", "", "Redis address for the transform cache")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	journalPath := fs.String("journal", "", "Append a JSON record of this run to a file")
	verbose := fs.Bool("verbose", false, "Log every transform and verdict")
	encodeWith := fs.String("encode", "", "Encode instead of decode, using this transform id")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, "", 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return cliOptions{}, "", 2
	}

	// Flags the user actually passed win over the file and environment.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["depth"] {
		cfg.MaxDepth = *depth
	}
	if set["budget"] {
		cfg.TimeBudget = *budget
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if set["sensitivity"] {
		cfg.Sensitivity = *sensitivity
	}
	if set["threshold"] {
		cfg.ConfidenceThreshold = *threshold
	}
	if set["top"] {
		cfg.TopResults = *top
	}
	if set["wordlist"] {
		cfg.WordlistPath = *wordlist
	}
	if set["regex"] {
		cfg.Regex = *regex
	}
	if set["classifier"] {
		cfg.EnableClassifier = *classifier
	}
	if set["verify"] {
		cfg.HumanVerify = *verify
	}
	if set["redis"] {
		cfg.RedisAddr = *redisAddr
	}
	if set["verbose"] {
		cfg.Verbose = *verbose
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return cliOptions{}, "", 2
	}

	sens, err := recognize.ParseSensitivity(cfg.Sensitivity)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return cliOptions{}, "", 2
	}

	input, err := readInput(*text, *file, fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return cliOptions{}, "", 2
	}

	if *encodeWith != "" {
		return cliOptions{}, "", encodeText(*encodeWith, input, stdout, stderr)
	}

	return cliOptions{cfg: cfg, sensitivity: sens, metricsAddr: *metricsAddr, journalPath: *journalPath}, input, -1
}

// readInput picks the ciphertext source: -text, -file, a positional
// argument, or stdin, in that order.
func readInput(text, file string, positional []string, stdin io.Reader) (string, error) {
	switch {
	case text != "":
		return text, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	case len(positional) > 0:
		return strings.Join(positional, " "), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
}

// buildCache selects the cache store: Redis when configured, otherwise the
// in-memory LRU.
func buildCache(cfg config.Config) (*cache.PathCache, error) {
	if cfg.RedisAddr == "" {
		return cache.New(cache.NewLRUStore(cfg.CacheCapacity)), nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return cache.New(cache.NewRedisStore(client, "", cfg.RedisTTL)), nil
}

// encodeText applies one transform's inverse for building test inputs.
func encodeText(id, input string, stdout, stderr io.Writer) int {
	encoders := map[string]func(string) string{
		"base64":           transform.EncodeBase64,
		"base64url":        transform.EncodeBase64URL,
		"base32":           transform.EncodeBase32,
		"base32hex":        transform.EncodeBase32Hex,
		"hex":              transform.EncodeHex,
		"binary":           transform.EncodeBinary,
		"decimal":          transform.EncodeDecimal,
		"url":              transform.EncodeURL,
		"html":             transform.EncodeHTML,
		"quoted-printable": transform.EncodeQuotedPrintable,
		"rot13":            transform.EncodeRot13,
		"rot5":             transform.EncodeRot5,
		"rot18":            transform.EncodeRot18,
		"rot47":            transform.EncodeRot47,
		"atbash":           transform.EncodeAtbash,
		"a1z26":            transform.EncodeA1Z26,
		"morse":            transform.EncodeMorse,
		"reverse":          transform.EncodeReverse,
	}
	enc, ok := encoders[id]
	if !ok {
		fmt.Fprintf(stderr, "no encoder for transform %q\n", id)
		return 2
	}
	fmt.Fprintln(stdout, enc(input))
	return 0
}

// appendJournal records the run outcome without the raw input, only its
// digest, so journals can be shared without leaking material.
func appendJournal(path, input string, report *search.Report) error {
	j, err := journal.New("decipherctl", journal.WithoutStdout(), journal.WithFile(path))
	if err != nil {
		return err
	}
	defer j.Close()

	results := make([]journal.ResultRecord, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, journal.ResultRecord{
			Path:       r.Path,
			Text:       r.Text,
			Confidence: r.Confidence,
			Depth:      r.Depth,
		})
	}
	return j.Append(journal.RunRecord{
		RunID:       report.RunID,
		InputDigest: fmt.Sprintf("%016x", cache.ContentFingerprint(input)),
		Status:      string(report.Status),
		Results:     results,
		Expanded:    report.Expanded,
		DurationMS:  report.Duration.Milliseconds(),
	})
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

// printReport writes the outcome and returns the process exit code.
func printReport(report *search.Report, humanVerify bool, stdin io.Reader, stdout, stderr io.Writer) int {
	switch report.Status {
	case search.StatusNotFound:
		fmt.Fprintf(stderr, "no plaintext found after expanding %d nodes (%s)\n", report.Expanded, report.Duration.Round(time.Millisecond))
		return 1
	case search.StatusTimedOut:
		fmt.Fprintf(stderr, "time budget exhausted after expanding %d nodes\n", report.Expanded)
		return 1
	}

	results := report.Results
	if humanVerify {
		results = confirmResults(results, stdin, stdout)
		if len(results) == 0 {
			fmt.Fprintln(stderr, "all candidates rejected")
			return 1
		}
	}

	for i, r := range results {
		chain := "(none)"
		if len(r.Path) > 0 {
			chain = strings.Join(r.Path, " -> ")
		}
		fmt.Fprintf(stdout, "result %d: confidence %.2f via %s\n", i+1, r.Confidence, r.Recognizer)
		fmt.Fprintf(stdout, "  chain: %s\n", chain)
		fmt.Fprintf(stdout, "  text:  %s\n", r.Text)
	}
	if report.Status == search.StatusPartialSuccess {
		fmt.Fprintln(stderr, "time budget expired before all requested results were found")
	}
	return 0
}

// confirmResults asks the operator to accept or reject each candidate.
func confirmResults(results []search.Result, stdin io.Reader, stdout io.Writer) []search.Result {
	scanner := bufio.NewScanner(stdin)
	var kept []search.Result
	for _, r := range results {
		fmt.Fprintf(stdout, "candidate: %s\naccept? [y/N] ", r.Text)
		if !scanner.Scan() {
			break
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer == "y" || answer == "yes" {
			kept = append(kept, r)
		}
	}
	return kept
}
