package langseg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jamesainslie/go-langseg/classifier"
	"github.com/jamesainslie/go-langseg/inference"
	"github.com/jamesainslie/go-langseg/modelfile"
	"github.com/jamesainslie/go-langseg/splitter"
	"github.com/jamesainslie/go-langseg/tokenizer"
)

// English is the tag forced onto spans that pass IsPlainEnglish.
const English = "en"

// Splitter is the primary splitter: it tags raw text coarsely by language.
// The returned substrings must cover text exactly and in order.
type Splitter interface {
	Split(ctx context.Context, text string) ([]splitter.Substring, error)
}

// Segmenter refines a primary splitter's output into merged language spans.
// It is safe for concurrent use.
type Segmenter struct {
	splitter Splitter
	langMap  LanguageMap
	logger   *slog.Logger
	closers  []io.Closer
}

// New creates a Segmenter. Model loading, and downloading when configured,
// happens here; ctx bounds that work.
func New(ctx context.Context, opts ...Option) (*Segmenter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Segmenter{
		splitter: cfg.splitter,
		langMap:  cfg.langMap.clone(),
		logger:   cfg.logger,
	}
	if s.splitter != nil {
		return s, nil
	}

	var splitOpts []splitter.Option
	if cfg.detector != nil {
		splitOpts = append(splitOpts, splitter.WithDetector(cfg.detector))
	}

	if cfg.model != nil {
		det, err := openClassifier(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, det)
		splitOpts = append(splitOpts, splitter.WithDetector(det))
	}

	if !cfg.noLexicon {
		lex, err := splitter.NewLexicon()
		if err != nil {
			_ = s.Close() // Best-effort cleanup; original error takes precedence
			return nil, fmt.Errorf("%w: %w", ErrLexiconFailed, err)
		}
		splitOpts = append(splitOpts, splitter.WithHanResolver(lex))
	}

	s.splitter = splitter.New(splitOpts...)
	return s, nil
}

// openClassifier resolves the model file, then builds the tokenizer and the
// session pool around it.
func openClassifier(ctx context.Context, cfg config) (*classifier.Detector, error) {
	file, err := modelfile.Open(ctx, *cfg.model, cfg.logger)
	if err != nil {
		if errors.Is(err, modelfile.ErrNotFound) || errors.Is(err, modelfile.ErrDownload) {
			return nil, fmt.Errorf("%w: %w", ErrModelNotFound, err)
		}
		return nil, fmt.Errorf("opening model: %w", err)
	}
	// Sessions keep the model in memory, so a temp copy can go once they exist.
	defer func() { _ = file.Close() }()

	tok, err := tokenizer.New(cfg.tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}

	pool, err := inference.NewPool(file.Path(), cfg.poolSize, inference.WithSharedLibrary(cfg.ortLibrary))
	if err != nil {
		_ = tok.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	var detOpts []classifier.Option
	if len(cfg.labels) > 0 {
		detOpts = append(detOpts, classifier.WithLabels(cfg.labels))
	}
	detOpts = append(detOpts, classifier.WithMinConfidence(cfg.minConfidence))

	cfg.logger.Info("language model loaded",
		"model", cfg.model.Path,
		"pool_size", pool.Size(),
		"vocab_size", tok.VocabSize(),
	)
	return classifier.New(tok, pool, detOpts...), nil
}

// Segment splits text into spans of a single language each. Adjacent spans
// never share a language and spans the splitter cannot attribute are
// dropped. Errors come only from the primary splitter and are returned as is.
func (s *Segmenter) Segment(ctx context.Context, text string) ([]Span, error) {
	all, err := s.SegmentAll(ctx, text)
	if err != nil {
		return nil, err
	}

	var out []Span
	for _, span := range all {
		if span.Lang == Unknown {
			s.logger.Debug("dropping unattributed span", "bytes", len(span.Text))
			continue
		}
		out = Merge(out, span)
	}
	return out, nil
}

// SegmentAll is Segment without the final drop: spans tagged Unknown are
// kept, so the returned spans concatenate to text exactly.
func (s *Segmenter) SegmentAll(ctx context.Context, text string) ([]Span, error) {
	if text == "" {
		return nil, nil
	}

	subs, err := s.splitter.Split(ctx, text)
	if err != nil {
		return nil, err
	}

	var out []Span
	for _, sub := range subs {
		out = s.refine(out, Span{Lang: s.langMap.Lookup(sub.Lang), Text: sub.Text})
	}
	return out, nil
}

// refine merges one splitter span into out after the ASCII override and the
// kana/hangul extraction cascade. A span that yields a single fragment keeps
// its own tag, so an Unknown span made only of kana or hangul stays Unknown
// as a whole.
func (s *Segmenter) refine(out []Span, span Span) []Span {
	if span.Text == "" {
		return out
	}

	if IsPlainEnglish(span.Text) {
		span.Lang = English
		return Merge(out, span)
	}

	var fragments []Span
	if span.Lang != Japanese.Lang {
		fragments = ExtractRuns(span, Japanese)
	}
	if len(fragments) == 0 {
		fragments = []Span{span}
	}

	var cascaded []Span
	for _, f := range fragments {
		var ko []Span
		if f.Lang != Korean.Lang {
			ko = ExtractRuns(f, Korean)
		}
		if len(ko) == 0 {
			cascaded = append(cascaded, f)
			continue
		}
		cascaded = append(cascaded, ko...)
	}

	if len(cascaded) == 1 {
		return Merge(out, span)
	}
	for _, f := range cascaded {
		out = Merge(out, f)
	}
	return out
}

// Close releases model resources. It is safe to call more than once.
func (s *Segmenter) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
