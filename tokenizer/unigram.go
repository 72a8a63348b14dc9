package tokenizer

// Encode tokenizes text with the Viterbi algorithm over the unigram lattice.
func (t *Tokenizer) Encode(text string) []Token {
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}

	runes := []rune(normalized)
	n := len(runes)

	// best[i] is the best log probability of runes[:i]; from[i] is where the
	// token ending at i starts.
	best := make([]float64, n+1)
	from := make([]int, n+1)

	for i := 1; i <= n; i++ {
		// Fall back to a single unknown rune; any known piece beats it.
		best[i] = best[i-1] + t.unkScore
		from[i] = i - 1

		maxLen := min(t.maxRunes, i)
		for length := 1; length <= maxLen; length++ {
			j := i - length
			e, ok := t.pieces[string(runes[j:i])]
			if !ok {
				continue
			}
			if candidate := best[j] + e.score; candidate > best[i] {
				best[i] = candidate
				from[i] = j
			}
		}
	}

	var tokens []Token
	for i := n; i > 0; i = from[i] {
		piece := string(runes[from[i]:i])
		id := UnkID
		if e, ok := t.pieces[piece]; ok {
			id = hfID(e.index)
		}
		tokens = append(tokens, Token{ID: id, Piece: piece})
	}

	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return tokens
}

// EncodeIDs returns HuggingFace-compatible token IDs for text.
func (t *Tokenizer) EncodeIDs(text string) []int32 {
	tokens := t.Encode(text)
	ids := make([]int32, len(tokens))
	for i, tok := range tokens {
		ids[i] = tok.ID
	}
	return ids
}

// EncodeForModel returns model inputs for text: <s> tokens </s>, truncated to
// at most maxLen IDs, and a matching all-ones attention mask.
func (t *Tokenizer) EncodeForModel(text string, maxLen int) (inputIDs, attentionMask []int64) {
	ids := t.EncodeIDs(text)
	if maxLen < 2 {
		maxLen = 2
	}
	if len(ids) > maxLen-2 {
		ids = ids[:maxLen-2]
	}

	inputIDs = make([]int64, 0, len(ids)+2)
	inputIDs = append(inputIDs, int64(BOSID))
	for _, id := range ids {
		inputIDs = append(inputIDs, int64(id))
	}
	inputIDs = append(inputIDs, int64(EOSID))

	attentionMask = make([]int64, len(inputIDs))
	for i := range attentionMask {
		attentionMask[i] = 1
	}
	return inputIDs, attentionMask
}
