package splitter

import (
	"fmt"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Lexicon resolves Han chunks against the IPA Japanese dictionary. A chunk
// reads as Japanese when kagome finds every Han-bearing token in the
// dictionary; simplified-only hanzi fall outside it and surface as unknown
// tokens.
type Lexicon struct {
	tok *tokenizer.Tokenizer
}

// NewLexicon loads the IPA dictionary. The dictionary is large; build one
// Lexicon per process and share it.
func NewLexicon() (*Lexicon, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("loading IPA dictionary: %w", err)
	}
	return &Lexicon{tok: tok}, nil
}

// IsJapanese implements HanResolver.
func (l *Lexicon) IsJapanese(text string) bool {
	found := false
	for _, t := range l.tok.Tokenize(text) {
		if !hasHan(t.Surface) {
			continue
		}
		if t.Class == tokenizer.UNKNOWN {
			return false
		}
		found = true
	}
	return found
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
