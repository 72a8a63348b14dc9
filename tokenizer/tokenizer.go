// Package tokenizer implements XLM-RoBERTa compatible SentencePiece Unigram
// tokenization for the language-ID classifier.
package tokenizer

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// HuggingFace XLM-RoBERTa special token IDs.
const (
	BOSID int32 = 0 // <s>
	PadID int32 = 1 // <pad>
	EOSID int32 = 2 // </s>
	UnkID int32 = 3 // <unk>
)

// unkPenalty is subtracted from the lowest piece score to price unknown runes,
// as SentencePiece does.
const unkPenalty = 10.0

// Tokenizer implements SentencePiece Unigram tokenization with token IDs
// remapped to the HuggingFace XLM-RoBERTa convention:
//   - HF[0] = <s>   (SP[1])
//   - HF[1] = <pad> (not in SentencePiece)
//   - HF[2] = </s>  (SP[2])
//   - HF[3] = <unk> (SP[0])
//   - HF[n+1] = SP[n] for n >= 3
//
// A Tokenizer is read-only after New and safe for concurrent use.
type Tokenizer struct {
	pieces    map[string]entry // matchable pieces only
	vocabSize int
	unkScore  float64
	maxRunes  int
}

type entry struct {
	index int32
	score float64
}

// Token is one unit of the tokenized text.
type Token struct {
	ID    int32
	Piece string
}

// New loads a tokenizer from a SentencePiece .model file.
func New(modelPath string) (*Tokenizer, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	return FromModel(model)
}

// FromModel builds a tokenizer from an already parsed model.
func FromModel(model *Model) (*Tokenizer, error) {
	if len(model.Pieces) == 0 {
		return nil, ErrNoPieces
	}
	if model.ModelType != ModelUnigram {
		return nil, fmt.Errorf("unsupported model type %d, want unigram", model.ModelType)
	}

	t := &Tokenizer{
		pieces:    make(map[string]entry, len(model.Pieces)),
		vocabSize: len(model.Pieces) + 2,
	}

	minScore := math.Inf(1)
	for i, p := range model.Pieces {
		score := float64(p.Score)
		if score < minScore {
			minScore = score
		}
		// Control, unknown and byte pieces never match literal text.
		if p.Type != TypeNormal && p.Type != TypeUserDefined {
			continue
		}
		t.pieces[p.Piece] = entry{index: int32(i), score: score}
		if n := utf8.RuneCountInString(p.Piece); n > t.maxRunes {
			t.maxRunes = n
		}
	}
	t.unkScore = minScore - unkPenalty

	return t, nil
}

// hfID converts a SentencePiece index to a HuggingFace XLM-RoBERTa token ID.
func hfID(spIndex int32) int32 {
	switch spIndex {
	case 0:
		return UnkID
	case 1:
		return BOSID
	case 2:
		return EOSID
	default:
		return spIndex + 1
	}
}

// VocabSize returns the HuggingFace vocabulary size: the SentencePiece pieces
// plus the inserted <pad> and the trailing <mask>.
func (t *Tokenizer) VocabSize() int {
	return t.vocabSize
}

// Close releases tokenizer resources.
func (t *Tokenizer) Close() error {
	return nil
}
