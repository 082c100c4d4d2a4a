package recognize

// PipelineOptions selects and tunes the recognizers for one search.
type PipelineOptions struct {
	Sensitivity Sensitivity
	// WordlistPath enables the exact-match recognizer when non-empty.
	WordlistPath string
	// CustomRegex, when set, replaces every other recognizer.
	CustomRegex string
	// EnableClassifier turns on the heavyweight ensemble.
	EnableClassifier bool
}

// BuildPipeline composes the recognizer pipeline, cheapest first: wordlist
// exact match, known-format patterns, English statistics, then the optional
// classifier. A custom regex disables everything else.
func BuildPipeline(opts PipelineOptions) (*Pipeline, error) {
	if opts.CustomRegex != "" {
		r, err := NewRegexRecognizer(opts.CustomRegex)
		if err != nil {
			return nil, err
		}
		return NewPipeline(r), nil
	}

	var recognizers []Recognizer
	if opts.WordlistPath != "" {
		w, err := LoadWordlist(opts.WordlistPath)
		if err != nil {
			return nil, err
		}
		recognizers = append(recognizers, w)
	}
	recognizers = append(recognizers,
		NewPatternRecognizer(),
		NewEnglishRecognizer(opts.Sensitivity),
	)
	if opts.EnableClassifier {
		recognizers = append(recognizers, NewClassifier())
	}
	return NewPipeline(recognizers...), nil
}
