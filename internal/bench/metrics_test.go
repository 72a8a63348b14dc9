package bench

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/jamesainslie/go-langseg"
)

// cannedSegmenter returns fixed spans regardless of input.
type cannedSegmenter struct {
	spans []langseg.Span
	err   error
}

func (c cannedSegmenter) Segment(context.Context, string) ([]langseg.Span, error) {
	return c.spans, c.err
}

// fullCannedSegmenter also reports the spans Segment drops.
type fullCannedSegmenter struct {
	all []langseg.Span
}

func (c fullCannedSegmenter) Segment(context.Context, string) ([]langseg.Span, error) {
	var out []langseg.Span
	for _, s := range c.all {
		if s.Lang != langseg.Unknown {
			out = langseg.Merge(out, s)
		}
	}
	return out, nil
}

func (c fullCannedSegmenter) SegmentAll(context.Context, string) ([]langseg.Span, error) {
	return c.all, nil
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		predicted []int
		truth     []int
		tolerance int
		wantTP    int
		wantFP    int
		wantFN    int
	}{
		{
			name:      "perfect match",
			predicted: []int{10, 20, 30},
			truth:     []int{10, 20, 30},
			tolerance: 0,
			wantTP:    3,
		},
		{
			name:      "within tolerance",
			predicted: []int{11, 19, 31},
			truth:     []int{10, 20, 30},
			tolerance: 2,
			wantTP:    3,
		},
		{
			name:      "false positive",
			predicted: []int{10, 15, 20},
			truth:     []int{10, 20},
			tolerance: 0,
			wantTP:    2,
			wantFP:    1,
		},
		{
			name:      "false negative",
			predicted: []int{10},
			truth:     []int{10, 20},
			tolerance: 0,
			wantTP:    1,
			wantFN:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Tolerance: tt.tolerance}
			got := Evaluate(tt.predicted, tt.truth, cfg)

			if got.TruePositives != tt.wantTP {
				t.Errorf("TruePositives = %d, want %d", got.TruePositives, tt.wantTP)
			}
			if got.FalsePositives != tt.wantFP {
				t.Errorf("FalsePositives = %d, want %d", got.FalsePositives, tt.wantFP)
			}
			if got.FalseNegatives != tt.wantFN {
				t.Errorf("FalseNegatives = %d, want %d", got.FalseNegatives, tt.wantFN)
			}
		})
	}
}

func TestEvaluate_NoBoundaries(t *testing.T) {
	got := Evaluate(nil, nil, DefaultConfig())
	if got.F1 != 1 {
		t.Errorf("F1 = %v, want 1 when nothing is expected or predicted", got.F1)
	}
}

func TestLabels(t *testing.T) {
	spans := []langseg.Span{{Lang: "en", Text: "ab"}, {Lang: "ja", Text: "ね"}}

	got, err := Labels("ab-ねc", spans)
	if err != nil {
		t.Fatalf("Labels() error = %v", err)
	}
	want := []string{"en", "en", "x", "ja", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestLabels_OutOfOrder(t *testing.T) {
	spans := []langseg.Span{{Lang: "ja", Text: "ね"}, {Lang: "en", Text: "ab"}}
	if _, err := Labels("abね", spans); err == nil {
		t.Error("expected error for out-of-order spans")
	}
}

func TestBoundaries(t *testing.T) {
	got := Boundaries([]string{"en", "en", "zh", "zh", "ja", "zh"})
	if want := []int{2, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Boundaries() = %v, want %v", got, want)
	}
	if got := Boundaries(nil); got != nil {
		t.Errorf("Boundaries(nil) = %v, want nil", got)
	}
}

func TestEvaluateCase(t *testing.T) {
	c := Case{
		Text: "MyGO你好まい",
		Gold: []langseg.Span{
			{Lang: "en", Text: "MyGO"},
			{Lang: "zh", Text: "你好"},
			{Lang: "ja", Text: "まい"},
		},
	}
	seg := cannedSegmenter{spans: []langseg.Span{
		{Lang: "en", Text: "MyGO"},
		{Lang: "zh", Text: "你好まい"},
	}}

	m, err := EvaluateCase(context.Background(), seg, c, Config{Tolerance: 0, PrecisionWeight: 1, RecallWeight: 1})
	if err != nil {
		t.Fatalf("EvaluateCase() error = %v", err)
	}

	if m.TruePositives != 1 || m.FalsePositives != 0 || m.FalseNegatives != 1 {
		t.Errorf("boundary counts = %d/%d/%d, want 1/0/1", m.TruePositives, m.FalsePositives, m.FalseNegatives)
	}
	if m.Chars != 8 || m.CorrectChars != 6 {
		t.Errorf("chars = %d/%d, want 6/8", m.CorrectChars, m.Chars)
	}
	if math.Abs(m.CharAccuracy-0.75) > 1e-9 {
		t.Errorf("CharAccuracy = %v, want 0.75", m.CharAccuracy)
	}
}

func TestEvaluateCase_SegmenterError(t *testing.T) {
	wantErr := errors.New("boom")
	c := Case{Text: "hi", Gold: []langseg.Span{{Lang: "en", Text: "hi"}}}

	_, err := EvaluateCase(context.Background(), cannedSegmenter{err: wantErr}, c, DefaultConfig())
	if !errors.Is(err, wantErr) {
		t.Errorf("expected segmenter error, got %v", err)
	}
}

func TestAggregate(t *testing.T) {
	cfg := DefaultConfig()
	got := Aggregate([]Metrics{
		{TruePositives: 1, FalseNegatives: 1, Chars: 4, CorrectChars: 4},
		{TruePositives: 1, FalsePositives: 2, Chars: 6, CorrectChars: 3},
	}, cfg)

	if got.TruePositives != 2 || got.FalsePositives != 2 || got.FalseNegatives != 1 {
		t.Errorf("counts = %+v", got)
	}
	if math.Abs(got.Precision-0.5) > 1e-9 {
		t.Errorf("Precision = %v, want 0.5", got.Precision)
	}
	if math.Abs(got.CharAccuracy-0.7) > 1e-9 {
		t.Errorf("CharAccuracy = %v, want 0.7", got.CharAccuracy)
	}
}

func TestEvaluateCase_Pipeline(t *testing.T) {
	seg, err := langseg.New(context.Background(), langseg.WithoutJapaneseLexicon())
	if err != nil {
		t.Fatalf("langseg.New() error = %v", err)
	}
	defer func() { _ = seg.Close() }()

	c := Case{
		Text: "MyGO?,你也喜欢まいご吗？",
		Gold: []langseg.Span{
			{Lang: "en", Text: "MyGO?,"},
			{Lang: "zh", Text: "你也喜欢"},
			{Lang: "ja", Text: "まいご"},
			{Lang: "zh", Text: "吗？"},
		},
	}

	m, err := EvaluateCase(context.Background(), seg, c, DefaultConfig())
	if err != nil {
		t.Fatalf("EvaluateCase() error = %v", err)
	}
	if m.F1 != 1 || m.CharAccuracy != 1 {
		t.Errorf("F1 = %v, CharAccuracy = %v; want perfect scores", m.F1, m.CharAccuracy)
	}
}

func TestEvaluateCase_DroppedTextRepeatsSpan(t *testing.T) {
	// The dropped prefix contains a copy of the zh span that follows it.
	all := []langseg.Span{
		{Lang: langseg.Unknown, Text: "你好吗"},
		{Lang: "zh", Text: "你好"},
		{Lang: "ja", Text: "まいご"},
	}
	c := Case{Text: "你好吗你好まいご", Gold: all}

	m, err := EvaluateCase(context.Background(), fullCannedSegmenter{all: all}, c, DefaultConfig())
	if err != nil {
		t.Fatalf("EvaluateCase() error = %v", err)
	}
	if m.CharAccuracy != 1 || m.F1 != 1 {
		t.Errorf("CharAccuracy = %v, F1 = %v; want perfect scores", m.CharAccuracy, m.F1)
	}

	// Without the dropped spans the zh span lands on the first copy.
	filtered := cannedSegmenter{spans: all[1:]}
	m, err = EvaluateCase(context.Background(), filtered, c, DefaultConfig())
	if err != nil {
		t.Fatalf("EvaluateCase() error = %v", err)
	}
	if m.CharAccuracy == 1 {
		t.Error("expected guessed gaps to cost accuracy")
	}
}

func TestLabels_EmptySpan(t *testing.T) {
	if _, err := Labels("ab", []langseg.Span{{Lang: "en", Text: ""}}); err == nil {
		t.Error("expected error for an empty span")
	}
}
