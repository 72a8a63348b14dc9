package classifier

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/jamesainslie/go-langseg/tokenizer"
)

type fakeModel struct {
	logits []float32
	err    error
	calls  int
	ids    []int64
	closed bool
}

func (m *fakeModel) Infer(_ context.Context, ids, _ []int64) ([]float32, error) {
	m.calls++
	m.ids = ids
	return m.logits, m.err
}

func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}

func newTestTokenizer(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()
	tok, err := tokenizer.FromModel(&tokenizer.Model{
		ModelType: tokenizer.ModelUnigram,
		Pieces: []tokenizer.Piece{
			{Piece: "<unk>", Type: tokenizer.TypeUnknown},
			{Piece: "<s>", Type: tokenizer.TypeControl},
			{Piece: "</s>", Type: tokenizer.TypeControl},
			{Piece: "▁bonjour", Score: -1, Type: tokenizer.TypeNormal},
			{Piece: "▁", Score: -2, Type: tokenizer.TypeNormal},
		},
	})
	if err != nil {
		t.Fatalf("FromModel failed: %v", err)
	}
	return tok
}

func TestDetector_Detect(t *testing.T) {
	model := &fakeModel{logits: []float32{0.1, 3.0, -1.0}}
	d := New(newTestTokenizer(t), model, WithLabels([]string{"en", "fr", "de"}))

	got, err := d.Detect(context.Background(), "bonjour")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got.Lang != "fr" {
		t.Errorf("Lang = %q, want fr", got.Lang)
	}
	if got.Confidence < 0.9 || got.Confidence > 1 {
		t.Errorf("Confidence = %f, want in [0.9, 1]", got.Confidence)
	}
	if want := []int64{int64(tokenizer.BOSID), 4, int64(tokenizer.EOSID)}; !slices.Equal(model.ids, want) {
		t.Errorf("model input = %v, want %v", model.ids, want)
	}
}

func TestDetector_Detect_MinConfidence(t *testing.T) {
	model := &fakeModel{logits: []float32{1.0, 1.1}}
	d := New(newTestTokenizer(t), model,
		WithLabels([]string{"en", "fr"}),
		WithMinConfidence(0.9),
	)

	got, err := d.Detect(context.Background(), "bonjour")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got.Lang != "x" {
		t.Errorf("Lang = %q, want x below the confidence floor", got.Lang)
	}
}

func TestDetector_Detect_Blank(t *testing.T) {
	for _, text := range []string{"", "  \n"} {
		model := &fakeModel{}
		d := New(newTestTokenizer(t), model)

		got, err := d.Detect(context.Background(), text)
		if err != nil {
			t.Fatalf("Detect(%q) failed: %v", text, err)
		}
		if got.Lang != "x" || model.calls != 0 {
			t.Errorf("Detect(%q) = %+v after %d model calls, want x without inference", text, got, model.calls)
		}
	}
}

func TestDetector_Detect_LabelMismatch(t *testing.T) {
	model := &fakeModel{logits: []float32{1, 2, 3}}
	d := New(newTestTokenizer(t), model, WithLabels([]string{"en", "fr"}))

	if _, err := d.Detect(context.Background(), "bonjour"); err == nil {
		t.Error("expected error when logits and labels disagree")
	}
}

func TestDetector_Detect_ModelError(t *testing.T) {
	wantErr := errors.New("boom")
	d := New(newTestTokenizer(t), &fakeModel{err: wantErr})

	if _, err := d.Detect(context.Background(), "bonjour"); !errors.Is(err, wantErr) {
		t.Errorf("expected model error, got %v", err)
	}
}

func TestDetector_Close(t *testing.T) {
	model := &fakeModel{}
	d := New(newTestTokenizer(t), model)

	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !model.closed {
		t.Error("expected model to be closed")
	}
}

func TestArgmaxSoftmax(t *testing.T) {
	tests := []struct {
		logits   []float32
		wantIdx  int
		wantProb float32
	}{
		{[]float32{0, 0}, 0, 0.5},
		{[]float32{0, 0, 0, 0}, 0, 0.25},
		{[]float32{-1, 5, 2}, 1, 0.9503},
	}

	for _, tt := range tests {
		idx, prob := argmaxSoftmax(tt.logits)
		if idx != tt.wantIdx {
			t.Errorf("argmaxSoftmax(%v) index = %d, want %d", tt.logits, idx, tt.wantIdx)
		}
		if prob < tt.wantProb-0.001 || prob > tt.wantProb+0.001 {
			t.Errorf("argmaxSoftmax(%v) prob = %f, want ~%f", tt.logits, prob, tt.wantProb)
		}
	}
}
