package tokenizer

import (
	"errors"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// PieceType mirrors SentencePiece's ModelProto.SentencePiece.Type.
type PieceType int32

// Piece types, numbered as in sentencepiece_model.proto.
const (
	TypeNormal      PieceType = 1
	TypeUnknown     PieceType = 2
	TypeControl     PieceType = 3
	TypeUserDefined PieceType = 4
	TypeUnused      PieceType = 5
	TypeByte        PieceType = 6
)

// ModelType mirrors SentencePiece's TrainerSpec.ModelType.
type ModelType int32

// Model types, numbered as in sentencepiece_model.proto.
const (
	ModelUnigram ModelType = 1
	ModelBPE     ModelType = 2
	ModelWord    ModelType = 3
	ModelChar    ModelType = 4
)

// Field numbers used from sentencepiece_model.proto.
const (
	fieldPieces      protowire.Number = 1 // ModelProto.pieces
	fieldTrainerSpec protowire.Number = 2 // ModelProto.trainer_spec

	fieldPiece     protowire.Number = 1 // SentencePiece.piece
	fieldScore     protowire.Number = 2 // SentencePiece.score
	fieldPieceType protowire.Number = 3 // SentencePiece.type

	fieldModelType protowire.Number = 3 // TrainerSpec.model_type
)

// ErrNoPieces indicates a model file without vocabulary.
var ErrNoPieces = errors.New("tokenizer: model has no pieces")

// Piece represents a vocabulary piece from the model.
type Piece struct {
	Piece string
	Score float32
	Type  PieceType
}

// Model represents a loaded SentencePiece model.
type Model struct {
	Pieces    []Piece
	ModelType ModelType
}

// LoadModel loads a SentencePiece model from a .model file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes a serialized ModelProto. Only the vocabulary and the
// trainer's model type are kept; other fields are skipped.
func ParseModel(data []byte) (*Model, error) {
	m := &Model{ModelType: ModelUnigram}
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldPieces && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			p, err := parsePiece(v)
			if err != nil {
				return 0, fmt.Errorf("piece %d: %w", len(m.Pieces), err)
			}
			m.Pieces = append(m.Pieces, p)
			return n, nil
		case num == fieldTrainerSpec && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			mt, err := parseModelType(v)
			if err != nil {
				return 0, fmt.Errorf("trainer spec: %w", err)
			}
			m.ModelType = mt
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing protobuf: %w", err)
	}
	if len(m.Pieces) == 0 {
		return nil, ErrNoPieces
	}
	return m, nil
}

func parsePiece(data []byte) (Piece, error) {
	p := Piece{Type: TypeNormal}
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldPiece && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			p.Piece = v
			return n, nil
		case num == fieldScore && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			p.Score = math.Float32frombits(v)
			return n, nil
		case num == fieldPieceType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			p.Type = PieceType(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return p, err
}

func parseModelType(data []byte) (ModelType, error) {
	mt := ModelUnigram
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldModelType && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			mt = ModelType(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return mt, err
}

// walkFields calls fn for every field in a message. fn returns the number of
// value bytes it consumed, or a negative protowire error code.
func walkFields(data []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		m, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		data = data[m:]
	}
	return nil
}
