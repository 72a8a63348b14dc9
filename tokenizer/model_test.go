package tokenizer

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// testPieces is a tiny XLM-R style vocabulary: <unk>, <s>, </s> first, then
// normal pieces.
var testPieces = []Piece{
	{Piece: "<unk>", Score: 0, Type: TypeUnknown},
	{Piece: "<s>", Score: 0, Type: TypeControl},
	{Piece: "</s>", Score: 0, Type: TypeControl},
	{Piece: "▁hello", Score: -1, Type: TypeNormal},
	{Piece: "▁", Score: -2, Type: TypeNormal},
	{Piece: "h", Score: -5, Type: TypeNormal},
	{Piece: "e", Score: -5, Type: TypeNormal},
	{Piece: "l", Score: -5, Type: TypeNormal},
	{Piece: "o", Score: -5, Type: TypeNormal},
	{Piece: "▁world", Score: -1.5, Type: TypeNormal},
}

// encodeModel serializes pieces as a SentencePiece ModelProto.
func encodeModel(pieces []Piece, modelType ModelType) []byte {
	var out []byte
	for _, p := range pieces {
		var msg []byte
		msg = protowire.AppendTag(msg, fieldPiece, protowire.BytesType)
		msg = protowire.AppendString(msg, p.Piece)
		msg = protowire.AppendTag(msg, fieldScore, protowire.Fixed32Type)
		msg = protowire.AppendFixed32(msg, math.Float32bits(p.Score))
		msg = protowire.AppendTag(msg, fieldPieceType, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(p.Type))

		out = protowire.AppendTag(out, fieldPieces, protowire.BytesType)
		out = protowire.AppendBytes(out, msg)
	}

	var spec []byte
	spec = protowire.AppendTag(spec, 1, protowire.BytesType) // input file, skipped
	spec = protowire.AppendString(spec, "corpus.txt")
	spec = protowire.AppendTag(spec, fieldModelType, protowire.VarintType)
	spec = protowire.AppendVarint(spec, uint64(modelType))

	out = protowire.AppendTag(out, fieldTrainerSpec, protowire.BytesType)
	out = protowire.AppendBytes(out, spec)
	return out
}

func writeModel(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.model")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func TestParseModel(t *testing.T) {
	model, err := ParseModel(encodeModel(testPieces, ModelUnigram))
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}

	if len(model.Pieces) != len(testPieces) {
		t.Fatalf("expected %d pieces, got %d", len(testPieces), len(model.Pieces))
	}
	for i, want := range testPieces {
		if model.Pieces[i] != want {
			t.Errorf("piece[%d] = %+v, want %+v", i, model.Pieces[i], want)
		}
	}
	if model.ModelType != ModelUnigram {
		t.Errorf("expected UNIGRAM model type, got %d", model.ModelType)
	}
}

func TestParseModel_DefaultPieceType(t *testing.T) {
	var msg []byte
	msg = protowire.AppendTag(msg, fieldPiece, protowire.BytesType)
	msg = protowire.AppendString(msg, "▁a")

	var data []byte
	data = protowire.AppendTag(data, fieldPieces, protowire.BytesType)
	data = protowire.AppendBytes(data, msg)

	model, err := ParseModel(data)
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if model.Pieces[0].Type != TypeNormal {
		t.Errorf("expected NORMAL default type, got %d", model.Pieces[0].Type)
	}
	if model.ModelType != ModelUnigram {
		t.Errorf("expected UNIGRAM default model type, got %d", model.ModelType)
	}
}

func TestParseModel_Empty(t *testing.T) {
	_, err := ParseModel(nil)
	if !errors.Is(err, ErrNoPieces) {
		t.Errorf("expected ErrNoPieces, got %v", err)
	}
}

func TestParseModel_Truncated(t *testing.T) {
	data := encodeModel(testPieces, ModelUnigram)
	_, err := ParseModel(data[:len(data)-3])
	if err == nil {
		t.Error("expected error for truncated protobuf data")
	}
}

func TestLoadModel_FileNotFound(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nonexistent.model"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadModel_InvalidProtobuf(t *testing.T) {
	path := writeModel(t, []byte(`{"not": "protobuf"}`))
	if _, err := LoadModel(path); err == nil {
		t.Error("expected error for invalid protobuf data")
	}
}
