// Package classifier detects the language of a text chunk with an ONNX
// sequence-classification model.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jamesainslie/go-langseg/splitter"
	"github.com/jamesainslie/go-langseg/tokenizer"
)

// maxSeqLen is the longest input the XLM-R encoder accepts, special tokens
// included.
const maxSeqLen = 512

// DefaultLabels are the output labels of the papluca XLM-R language-detection
// model, in logit order.
var DefaultLabels = []string{
	"ja", "nl", "ar", "pl", "de", "it", "pt", "tr", "es", "hi",
	"el", "ur", "bg", "en", "fr", "zh", "ru", "th", "sw", "vi",
}

// Inferer runs the model on one tokenized sequence.
type Inferer interface {
	Infer(ctx context.Context, inputIDs, attentionMask []int64) ([]float32, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithLabels sets the labels matching the model's logits.
func WithLabels(labels []string) Option {
	return func(d *Detector) {
		if len(labels) > 0 {
			d.labels = append([]string(nil), labels...)
		}
	}
}

// WithMinConfidence makes predictions below p come out as "x".
func WithMinConfidence(p float32) Option {
	return func(d *Detector) {
		d.minConfidence = p
	}
}

// Detector implements splitter.Detector on top of a tokenizer and a model.
// It is safe for concurrent use when the Inferer is; *inference.Pool is.
type Detector struct {
	tok           *tokenizer.Tokenizer
	model         Inferer
	labels        []string
	minConfidence float32
}

var _ splitter.Detector = (*Detector)(nil)

// New creates a Detector. It takes ownership of tok and model: Close closes
// both.
func New(tok *tokenizer.Tokenizer, model Inferer, opts ...Option) *Detector {
	d := &Detector{
		tok:    tok,
		model:  model,
		labels: DefaultLabels,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the most probable label for text. Text that tokenizes to
// nothing is "x" with zero confidence.
func (d *Detector) Detect(ctx context.Context, text string) (splitter.Detection, error) {
	ids, mask := d.tok.EncodeForModel(text, maxSeqLen)
	if len(ids) <= 2 {
		return splitter.Detection{Lang: "x"}, nil
	}

	logits, err := d.model.Infer(ctx, ids, mask)
	if err != nil {
		return splitter.Detection{}, err
	}
	if len(logits) != len(d.labels) {
		return splitter.Detection{}, fmt.Errorf("model returned %d logits for %d labels", len(logits), len(d.labels))
	}

	best, prob := argmaxSoftmax(logits)
	if prob < d.minConfidence {
		return splitter.Detection{Lang: "x", Confidence: prob}, nil
	}
	return splitter.Detection{Lang: d.labels[best], Confidence: prob}, nil
}

// Close releases the model and the tokenizer.
func (d *Detector) Close() error {
	var errs []error
	if c, ok := d.model.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := d.tok.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// argmaxSoftmax returns the index of the largest logit and its softmax
// probability.
func argmaxSoftmax(logits []float32) (int, float32) {
	best := 0
	for i, l := range logits {
		if l > logits[best] {
			best = i
		}
	}

	var sum float64
	for _, l := range logits {
		sum += math.Exp(float64(l - logits[best]))
	}
	return best, float32(1 / sum)
}
