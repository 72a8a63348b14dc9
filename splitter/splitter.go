// Package splitter cuts text into script-homogeneous chunks and tags each
// chunk with a raw language code.
//
// Kana and hangul chunks are tagged directly. Han, Latin and other chunks are
// handed to a Detector; a HanResolver may claim Han chunks for Japanese when
// the text also contains kana. Adjacent chunks with equal codes are merged, so
// the output covers the input exactly, in order, without overlaps.
package splitter

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Substring is a piece of the input tagged with a raw language code.
type Substring struct {
	Lang string
	Text string
}

// Detection is a detector's verdict for one chunk.
type Detection struct {
	Lang       string
	Confidence float32
}

// Detector assigns a raw language code to a chunk of text.
type Detector interface {
	Detect(ctx context.Context, text string) (Detection, error)
}

// HanResolver decides whether a Han chunk found next to kana reads as Japanese.
type HanResolver interface {
	IsJapanese(text string) bool
}

// Option configures a ScriptSplitter.
type Option func(*ScriptSplitter)

// WithDetector sets the detector for chunks whose script does not fix the
// language (default: ScriptDetector).
func WithDetector(d Detector) Option {
	return func(s *ScriptSplitter) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithHanResolver sets the resolver consulted for Han chunks in kana-bearing text.
func WithHanResolver(r HanResolver) Option {
	return func(s *ScriptSplitter) {
		s.han = r
	}
}

// ScriptSplitter is the default primary splitter. It is safe for concurrent
// use when its Detector and HanResolver are.
type ScriptSplitter struct {
	detector Detector
	han      HanResolver
}

// New creates a ScriptSplitter.
func New(opts ...Option) *ScriptSplitter {
	s := &ScriptSplitter{detector: ScriptDetector{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split tags every chunk of text. An empty text yields no substrings.
func (s *ScriptSplitter) Split(ctx context.Context, text string) ([]Substring, error) {
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks := chunk(text)
	hasKana := false
	for _, c := range chunks {
		if c.class == classKana {
			hasKana = true
			break
		}
	}

	var out []Substring
	for _, c := range chunks {
		piece := text[c.start:c.end]
		lang, err := s.tag(ctx, c.class, piece, hasKana)
		if err != nil {
			return nil, fmt.Errorf("detecting chunk at byte %d: %w", c.start, err)
		}
		if n := len(out); n > 0 && out[n-1].Lang == lang {
			out[n-1].Text += piece
			continue
		}
		out = append(out, Substring{Lang: lang, Text: piece})
	}
	return out, nil
}

func (s *ScriptSplitter) tag(ctx context.Context, class runeClass, text string, hasKana bool) (string, error) {
	switch class {
	case classKana:
		return "ja", nil
	case classHangul:
		return "ko", nil
	case classHan:
		if hasKana && s.han != nil && s.han.IsJapanese(text) {
			return "ja", nil
		}
	}
	d, err := s.detector.Detect(ctx, text)
	if err != nil {
		return "", err
	}
	return d.Lang, nil
}

type runeClass int

const (
	classNeutral runeClass = iota
	classKana
	classHangul
	classHan
	classLatin
	classOther
)

func classify(r rune) runeClass {
	switch {
	case unicode.In(r, unicode.Hiragana, unicode.Katakana), r == 0x30fc, r == 0x3099, r == 0x309a:
		return classKana
	case unicode.Is(unicode.Hangul, r):
		return classHangul
	case unicode.Is(unicode.Han, r):
		return classHan
	case unicode.Is(unicode.Latin, r):
		return classLatin
	case unicode.IsLetter(r):
		return classOther
	default:
		return classNeutral
	}
}

type span struct {
	class      runeClass
	start, end int
}

// chunk groups text into same-class spans and folds neutral runs (digits,
// punctuation, spaces) into a neighbour. A neutral run goes to the preceding
// chunk, unless that chunk is kana or hangul and another chunk follows: then
// it opens the following chunk instead.
func chunk(text string) []span {
	var runs []span
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		c := classify(r)
		if n := len(runs); n > 0 && runs[n-1].class == c {
			runs[n-1].end = i + size
		} else {
			runs = append(runs, span{class: c, start: i, end: i + size})
		}
		i += size
	}
	if len(runs) == 1 {
		return runs
	}

	var out []span
	for i := 0; i < len(runs); i++ {
		r := runs[i]
		if r.class != classNeutral {
			out = appendSpan(out, r)
			continue
		}
		last := len(out) - 1
		hasNext := i+1 < len(runs)
		switch {
		case last < 0 || (hasNext && (out[last].class == classKana || out[last].class == classHangul)):
			// Leading run, or a run trailing kana/hangul: open the next chunk.
			next := runs[i+1]
			next.start = r.start
			runs[i+1] = next
		default:
			out[last].end = r.end
		}
	}
	return out
}

func appendSpan(out []span, s span) []span {
	if n := len(out); n > 0 && out[n-1].class == s.class {
		out[n-1].end = s.end
		return out
	}
	return append(out, s)
}
