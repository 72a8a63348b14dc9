package langseg

import (
	"log/slog"
	"runtime"

	"github.com/jamesainslie/go-langseg/modelfile"
	"github.com/jamesainslie/go-langseg/splitter"
)

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	langMap   LanguageMap
	splitter  Splitter
	detector  splitter.Detector
	noLexicon bool
	logger    *slog.Logger

	model         *modelfile.Source
	tokenizerPath string
	ortLibrary    string
	poolSize      int
	labels        []string
	minConfidence float32
}

func defaultConfig() config {
	return config{
		langMap:  DefaultLanguageMap(),
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
}

// WithLanguageMap replaces the raw-to-canonical language mapping
// (default: DefaultLanguageMap). The map is copied.
func WithLanguageMap(m LanguageMap) Option {
	return func(c *config) {
		if m != nil {
			c.langMap = m
		}
	}
}

// WithSplitter sets the primary splitter. When set, the detector, lexicon and
// model options are ignored and no dictionary is loaded.
func WithSplitter(s Splitter) Option {
	return func(c *config) {
		c.splitter = s
	}
}

// WithDetector sets the detector used by the default splitter for chunks
// whose script does not decide the language (default: splitter.ScriptDetector).
func WithDetector(d splitter.Detector) Option {
	return func(c *config) {
		c.detector = d
	}
}

// WithoutJapaneseLexicon skips loading the IPA dictionary. Han chunks are
// then always tagged by script, which splits kanji out of Japanese text as
// Chinese.
func WithoutJapaneseLexicon() Option {
	return func(c *config) {
		c.noLexicon = true
	}
}

// WithModel makes the default splitter detect languages with an ONNX
// sequence-classification model and its SentencePiece tokenizer. The model
// is downloaded when missing and a download URL is set.
func WithModel(src modelfile.Source, tokenizerPath string) Option {
	return func(c *config) {
		c.model = &src
		c.tokenizerPath = tokenizerPath
	}
}

// WithONNXLibrary sets the path of the onnxruntime shared library.
func WithONNXLibrary(path string) Option {
	return func(c *config) {
		c.ortLibrary = path
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLabels sets the model's output labels, in logit order
// (default: classifier.DefaultLabels).
func WithLabels(labels []string) Option {
	return func(c *config) {
		c.labels = labels
	}
}

// WithMinConfidence sets the probability under which a model prediction is
// reported as unknown (default: 0, always trust the model).
func WithMinConfidence(p float32) Option {
	return func(c *config) {
		c.minConfidence = p
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
