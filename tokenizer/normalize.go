package tokenizer

import "strings"

const sentencePieceSpace = "▁" // ▁ LOWER ONE EIGHTH BLOCK

// normalize applies the XLM-RoBERTa whitespace conventions: whitespace runs
// collapse to a single ▁, leading and trailing whitespace is dropped, and a
// dummy ▁ prefix marks the start of the text.
func normalize(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	return sentencePieceSpace + strings.Join(words, sentencePieceSpace)
}
