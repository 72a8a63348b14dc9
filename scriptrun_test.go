package langseg

import (
	"reflect"
	"testing"
)

func TestExtractRuns(t *testing.T) {
	tests := []struct {
		name   string
		span   Span
		script Script
		want   []Span
	}{
		{
			name:   "run inside foreign text",
			span:   Span{Lang: "zh", Text: "你也喜欢まいご吗？"},
			script: Japanese,
			want: []Span{
				{Lang: "zh", Text: "你也喜欢"},
				{Lang: "ja", Text: "まいご"},
				{Lang: "zh", Text: "吗？"},
			},
		},
		{
			name:   "interior separators stay in the run",
			span:   Span{Lang: "zh", Text: "你まい、ご吗"},
			script: Japanese,
			want: []Span{
				{Lang: "zh", Text: "你"},
				{Lang: "ja", Text: "まい、ご"},
				{Lang: "zh", Text: "吗"},
			},
		},
		{
			name:   "several separator groups",
			span:   Span{Lang: "en", Text: "xあ! い 12う.x"},
			script: Japanese,
			want: []Span{
				{Lang: "en", Text: "x"},
				{Lang: "ja", Text: "あ! い 12う"},
				{Lang: "en", Text: ".x"},
			},
		},
		{
			name:   "trailing separators are left out",
			span:   Span{Lang: "zh", Text: "我说안녕하세요。你好"},
			script: Korean,
			want: []Span{
				{Lang: "zh", Text: "我说"},
				{Lang: "ko", Text: "안녕하세요"},
				{Lang: "zh", Text: "。你好"},
			},
		},
		{
			name:   "no leading gap",
			span:   Span{Lang: "zh", Text: "まいご吗"},
			script: Japanese,
			want:   []Span{{Lang: "ja", Text: "まいご"}, {Lang: "zh", Text: "吗"}},
		},
		{
			name:   "whole span",
			span:   Span{Lang: "x", Text: "한국어"},
			script: Korean,
			want:   []Span{{Lang: "ko", Text: "한국어"}},
		},
		{
			name:   "separate runs",
			span:   Span{Lang: "en", Text: "aまbいc"},
			script: Japanese,
			want: []Span{
				{Lang: "en", Text: "a"},
				{Lang: "ja", Text: "ま"},
				{Lang: "en", Text: "b"},
				{Lang: "ja", Text: "い"},
				{Lang: "en", Text: "c"},
			},
		},
		{
			name:   "prolonged sound mark",
			span:   Span{Lang: "zh", Text: "喝コーヒー"},
			script: Japanese,
			want:   []Span{{Lang: "zh", Text: "喝"}, {Lang: "ja", Text: "コーヒー"}},
		},
		{
			name:   "no run",
			span:   Span{Lang: "zh", Text: "你好"},
			script: Japanese,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRuns(tt.span, tt.script)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractRuns(%q) = %+v, want %+v", tt.span.Text, got, tt.want)
			}
		})
	}
}

func TestScript_Contains(t *testing.T) {
	tests := []struct {
		script Script
		r      rune
		want   bool
	}{
		{Japanese, 'あ', true},
		{Japanese, 'ア', true},
		{Japanese, 'ー', true},
		{Japanese, '漢', false},
		{Japanese, '・', false},
		{Korean, '가', true},
		{Korean, 'ㄱ', true},
		{Korean, 'ᄀ', true},
		{Korean, 'あ', false},
	}

	for _, tt := range tests {
		if got := tt.script.Contains(tt.r); got != tt.want {
			t.Errorf("%s.Contains(%q) = %v, want %v", tt.script.Lang, tt.r, got, tt.want)
		}
	}
}
