package langseg

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
// Segment itself never produces them; they come from New.
var (
	// ErrModelNotFound indicates the classifier model is absent and could not
	// be downloaded.
	ErrModelNotFound = errors.New("langseg: model file not found")

	// ErrInvalidModel indicates the model file exists but could not be loaded.
	ErrInvalidModel = errors.New("langseg: invalid model format")

	// ErrTokenizerFailed indicates tokenizer initialization failed.
	ErrTokenizerFailed = errors.New("langseg: tokenizer initialization failed")

	// ErrLexiconFailed indicates the Japanese lexicon could not be loaded.
	ErrLexiconFailed = errors.New("langseg: lexicon initialization failed")
)
