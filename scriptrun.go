package langseg

import (
	"unicode"
	"unicode/utf8"
)

// Script describes a writing system whose runs can be lifted out of a span
// tagged with another language.
type Script struct {
	// Lang is the tag given to extracted runs.
	Lang string
	core *unicode.RangeTable
}

var (
	// Japanese matches hiragana and katakana, including the combining voicing
	// marks and the prolonged sound mark.
	Japanese = Script{
		Lang: "ja",
		core: &unicode.RangeTable{
			R16: []unicode.Range16{
				{Lo: 0x3041, Hi: 0x3096, Stride: 1},
				{Lo: 0x3099, Hi: 0x309a, Stride: 1},
				{Lo: 0x30a1, Hi: 0x30fa, Stride: 1},
				{Lo: 0x30fc, Hi: 0x30fc, Stride: 1},
			},
		},
	}

	// Korean matches hangul jamo, compatibility jamo and syllables.
	Korean = Script{
		Lang: "ko",
		core: &unicode.RangeTable{
			R16: []unicode.Range16{
				{Lo: 0x1100, Hi: 0x11ff, Stride: 1},
				{Lo: 0x3130, Hi: 0x318f, Stride: 1},
				{Lo: 0xac00, Hi: 0xd7af, Stride: 1},
			},
		},
	}
)

// runSeparators may appear inside a run when script characters follow them.
var runSeparators = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x0021, Stride: 1}, // space, !
		{Lo: 0x002e, Hi: 0x002e, Stride: 1}, // .
		{Lo: 0x0030, Hi: 0x0039, Stride: 1}, // 0-9
		{Lo: 0x003f, Hi: 0x003f, Stride: 1}, // ?
		{Lo: 0x2026, Hi: 0x2026, Stride: 1}, // …
		{Lo: 0x3001, Hi: 0x301c, Stride: 1}, // 、 through 〜
		{Lo: 0xff01, Hi: 0xff01, Stride: 1}, // ！
		{Lo: 0xff1f, Hi: 0xff1f, Stride: 1}, // ？
	},
}

// Contains reports whether r is a core character of the script.
func (s Script) Contains(r rune) bool {
	return unicode.Is(s.core, r)
}

// ExtractRuns splits span around the runs of script it contains. Runs are
// tagged script.Lang and the text between them keeps span.Lang. It returns
// nil when span holds no run at all.
func ExtractRuns(span Span, script Script) []Span {
	runs := script.runs(span.Text)
	if len(runs) == 0 {
		return nil
	}

	out := make([]Span, 0, 2*len(runs)+1)
	prev := 0
	for _, r := range runs {
		if r[0] > prev {
			out = append(out, Span{Lang: span.Lang, Text: span.Text[prev:r[0]]})
		}
		out = append(out, Span{Lang: script.Lang, Text: span.Text[r[0]:r[1]]})
		prev = r[1]
	}
	if prev < len(span.Text) {
		out = append(out, Span{Lang: span.Lang, Text: span.Text[prev:]})
	}
	return out
}

// runs returns the byte ranges of every maximal run in text. A run is one or
// more script characters, optionally continued by separator groups that are
// each followed by at least one more script character.
func (s Script) runs(text string) [][2]int {
	var out [][2]int
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !s.Contains(r) {
			i += size
			continue
		}

		start := i
		end := advance(text, i, s.Contains)
		for {
			sepEnd := advance(text, end, isRunSeparator)
			if sepEnd == end {
				break
			}
			next := advance(text, sepEnd, s.Contains)
			if next == sepEnd {
				break
			}
			end = next
		}
		out = append(out, [2]int{start, end})
		i = end
	}
	return out
}

// advance moves from i over runes accepted by match and returns the new offset.
func advance(text string, i int, match func(rune) bool) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !match(r) {
			break
		}
		i += size
	}
	return i
}

func isRunSeparator(r rune) bool {
	return unicode.Is(runSeparators, r)
}
