package langseg

import "unicode"

// plainEnglish lists the blocks a span may draw from and still be read as
// English: printable ASCII, general punctuation, CJK symbols and punctuation,
// and the halfwidth/fullwidth forms.
var plainEnglish = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007e, Stride: 1},
		{Lo: 0x2000, Hi: 0x206f, Stride: 1},
		{Lo: 0x3000, Hi: 0x303f, Stride: 1},
		{Lo: 0xff00, Hi: 0xffef, Stride: 1},
	},
}

// IsPlainEnglish reports whether text is non-empty and made only of Latin
// letters, digits, whitespace and the punctuation blocks above. Statistical
// splitters tend to mislabel short acronyms; such spans are forced to "en".
func IsPlainEnglish(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.Is(plainEnglish, r) {
			continue
		}
		return false
	}
	return true
}
