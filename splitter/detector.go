package splitter

import (
	"context"
	"unicode"
)

// scriptCodes maps a dominant script to the language it most likely writes.
var scriptCodes = []struct {
	table *unicode.RangeTable
	lang  string
}{
	{unicode.Latin, "en"},
	{unicode.Han, "zh"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Hangul, "ko"},
	{unicode.Cyrillic, "ru"},
	{unicode.Greek, "el"},
	{unicode.Arabic, "ar"},
	{unicode.Hebrew, "he"},
	{unicode.Thai, "th"},
	{unicode.Devanagari, "hi"},
}

// ScriptDetector tags text by its dominant script. Text without letters, or
// dominated by an unlisted script, gets "x".
type ScriptDetector struct{}

// Detect implements Detector. It never fails.
func (ScriptDetector) Detect(_ context.Context, text string) (Detection, error) {
	counts := make(map[string]int)
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for _, sc := range scriptCodes {
			if unicode.Is(sc.table, r) {
				counts[sc.lang]++
				break
			}
		}
	}

	best, bestCount := "x", 0
	for _, sc := range scriptCodes {
		if n := counts[sc.lang]; n > bestCount {
			best, bestCount = sc.lang, n
		}
	}
	if bestCount == 0 {
		return Detection{Lang: "x"}, nil
	}
	return Detection{Lang: best, Confidence: float32(bestCount) / float32(letters)}, nil
}
