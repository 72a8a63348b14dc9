package langseg

// Unknown is the language tag for text that could not be attributed to any
// configured language. Spans carrying it are dropped from Segment output.
const Unknown = "x"

// Span is a contiguous piece of text in a single language.
type Span struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// Merge appends next to result, folding it into the last element when both
// share a language. The returned slice must replace result.
func Merge(result []Span, next Span) []Span {
	if n := len(result); n > 0 && result[n-1].Lang == next.Lang {
		result[n-1].Text += next.Text
		return result
	}
	return append(result, next)
}
