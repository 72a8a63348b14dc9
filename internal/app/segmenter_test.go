package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jamesainslie/go-langseg"
	"github.com/jamesainslie/go-langseg/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want int
	}{
		{
			name: "lexicon skipped, no model",
			cfg:  config.Config{Segmenter: config.SegmenterConfig{SkipJapaneseLexicon: true}},
			want: 2,
		},
		{
			name: "lexicon and language map",
			cfg: config.Config{Segmenter: config.SegmenterConfig{
				LanguageMap: map[string]string{"zh-tw": "zh"},
			}},
			want: 2,
		},
		{
			name: "model",
			cfg: config.Config{
				Model:     config.ModelConfig{Path: "m.onnx", Tokenizer: "t.model"},
				Segmenter: config.SegmenterConfig{SkipJapaneseLexicon: true},
			},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Options(&tt.cfg, discardLogger())); got != tt.want {
				t.Errorf("got %d options, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSegmenter_ScriptOnly(t *testing.T) {
	cfg := &config.Config{Segmenter: config.SegmenterConfig{
		SkipJapaneseLexicon: true,
		LanguageMap:         map[string]string{"en": "en", "zh": "zh", "ja": "ja", "ko": "ko"},
	}}

	seg, err := NewSegmenter(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("NewSegmenter failed: %v", err)
	}
	defer func() { _ = seg.Close() }()

	got, err := seg.Segment(context.Background(), "我说안녕하세요。你好")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	want := []langseg.Span{
		{Lang: "zh", Text: "我说"},
		{Lang: "ko", Text: "안녕하세요"},
		{Lang: "zh", Text: "。你好"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment() = %+v, want %+v", got, want)
	}
}

func TestNewSegmenter_MissingModel(t *testing.T) {
	cfg := &config.Config{
		Model: config.ModelConfig{
			Path:      filepath.Join(t.TempDir(), "missing.onnx"),
			Tokenizer: "t.model",
		},
		Segmenter: config.SegmenterConfig{SkipJapaneseLexicon: true},
	}

	_, err := NewSegmenter(context.Background(), cfg, discardLogger())
	if !errors.Is(err, langseg.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}
