package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jamesainslie/go-langseg"
)

// Config holds evaluation parameters.
type Config struct {
	MinConfidence   float32
	Tolerance       int // boundary match tolerance, in runes
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       1,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64

	Chars        int
	CorrectChars int
	CharAccuracy float64
}

// Segmenter is the part of langseg.Segmenter the benchmark needs.
type Segmenter interface {
	Segment(ctx context.Context, text string) ([]langseg.Span, error)
}

// fullSegmenter also returns dropped spans, so predictions cover the text
// exactly and no dropped text has to be guessed.
type fullSegmenter interface {
	SegmentAll(ctx context.Context, text string) ([]langseg.Span, error)
}

// Evaluate compares predicted boundaries against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return score(Metrics{
		TruePositives:  tp,
		FalsePositives: len(predicted) - tp,
		FalseNegatives: len(truth) - tp,
	}, cfg)
}

// EvaluateCase segments one annotated case and scores it against the gold
// spans: language-change boundaries and per-rune language agreement.
func EvaluateCase(ctx context.Context, seg Segmenter, c Case, cfg Config) (Metrics, error) {
	var spans []langseg.Span
	var err error
	if full, ok := seg.(fullSegmenter); ok {
		spans, err = full.SegmentAll(ctx, c.Text)
	} else {
		spans, err = seg.Segment(ctx, c.Text)
	}
	if err != nil {
		return Metrics{}, err
	}

	predicted, err := Labels(c.Text, spans)
	if err != nil {
		return Metrics{}, err
	}
	gold, err := Labels(c.Text, c.Gold)
	if err != nil {
		return Metrics{}, fmt.Errorf("gold spans: %w", err)
	}

	m := Evaluate(Boundaries(predicted), Boundaries(gold), cfg)
	m.Chars = len(gold)
	for i := range gold {
		if predicted[i] == gold[i] {
			m.CorrectChars++
		}
	}
	return score(m, cfg), nil
}

// Labels assigns a language to every rune of text. Spans must appear in
// text in order; runes no span covers are labeled langseg.Unknown. Each span
// is placed at its first match after the previous one, so gaps are only
// exact when the spans cover text without them.
func Labels(text string, spans []langseg.Span) ([]string, error) {
	labels := make([]string, 0, utf8.RuneCountInString(text))
	rest := text
	for _, s := range spans {
		if s.Text == "" {
			return nil, errors.New("empty span")
		}
		idx := strings.Index(rest, s.Text)
		if idx < 0 {
			return nil, fmt.Errorf("span %q not found in order", s.Text)
		}
		for range utf8.RuneCountInString(rest[:idx]) {
			labels = append(labels, langseg.Unknown)
		}
		for range utf8.RuneCountInString(s.Text) {
			labels = append(labels, s.Lang)
		}
		rest = rest[idx+len(s.Text):]
	}
	for range utf8.RuneCountInString(rest) {
		labels = append(labels, langseg.Unknown)
	}
	return labels, nil
}

// Boundaries returns the rune offsets where the label changes.
func Boundaries(labels []string) []int {
	var out []int
	for i := 1; i < len(labels); i++ {
		if labels[i] != labels[i-1] {
			out = append(out, i)
		}
	}
	return out
}

// Aggregate sums per-case counts and recomputes the rates.
func Aggregate(results []Metrics, cfg Config) Metrics {
	var agg Metrics
	for _, m := range results {
		agg.TruePositives += m.TruePositives
		agg.FalsePositives += m.FalsePositives
		agg.FalseNegatives += m.FalseNegatives
		agg.Chars += m.Chars
		agg.CorrectChars += m.CorrectChars
	}
	return score(agg, cfg)
}

func score(m Metrics, cfg Config) Metrics {
	tp, fp, fn := m.TruePositives, m.FalsePositives, m.FalseNegatives

	// No boundaries expected and none predicted is a perfect score.
	if tp+fp+fn == 0 {
		m.Precision, m.Recall = 1, 1
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	if m.Chars > 0 {
		m.CharAccuracy = float64(m.CorrectChars) / float64(m.Chars)
	}
	return m
}
