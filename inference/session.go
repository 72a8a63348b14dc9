// Package inference provides ONNX Runtime integration for language-ID
// sequence classification.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ErrSessionClosed is returned by Infer after Close.
var ErrSessionClosed = errors.New("inference: session is closed")

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes the ONNX Runtime environment once per process. The
// shared library path only matters on the first call.
func initORT(libraryPath string) error {
	ortEnvOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Option configures sessions.
type Option func(*sessionConfig)

type sessionConfig struct {
	libraryPath    string
	intraOpThreads int
	inputNames     []string
	outputName     string
}

func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		// Names from the exported XLM-R classifier.
		inputNames: []string{"input_ids", "attention_mask"},
		outputName: "logits",
	}
}

// WithSharedLibrary sets the onnxruntime shared library to load.
func WithSharedLibrary(path string) Option {
	return func(c *sessionConfig) {
		c.libraryPath = path
	}
}

// WithIntraOpThreads limits the threads a session uses per inference.
func WithIntraOpThreads(n int) Option {
	return func(c *sessionConfig) {
		if n > 0 {
			c.intraOpThreads = n
		}
	}
}

// WithOutputName sets the name of the logits output.
func WithOutputName(name string) Option {
	return func(c *sessionConfig) {
		if name != "" {
			c.outputName = name
		}
	}
}

// Session wraps an ONNX Runtime session for classification.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string, opts ...Option) (*Session, error) {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newSession(modelPath, cfg)
}

func newSession(modelPath string, cfg sessionConfig) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(cfg.libraryPath); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	if cfg.intraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.intraOpThreads); err != nil {
			return nil, fmt.Errorf("setting intra-op threads: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		cfg.inputNames,
		[]string{cfg.outputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on one tokenized sequence and returns the logits for
// that sequence, one per label.
func (s *Session) Infer(ctx context.Context, inputIDs, attentionMask []int64) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(inputIDs) == 0 || len(inputIDs) != len(attentionMask) {
		return nil, fmt.Errorf("invalid input: %d ids, %d mask values", len(inputIDs), len(attentionMask))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	shape := ort.NewShape(1, int64(len(inputIDs)))

	inputIDsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("creating input_ids tensor: %w", err)
	}
	defer func() { _ = inputIDsTensor.Destroy() }()

	attentionMaskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("creating attention_mask tensor: %w", err)
	}
	defer func() { _ = attentionMaskTensor.Destroy() }()

	inputs := []ort.Value{inputIDsTensor, attentionMaskTensor}
	// nil entries are allocated by Run.
	outputs := []ort.Value{nil}

	if err := s.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, errors.New("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("unexpected output tensor type")
	}

	// Output shape is [1, labels].
	data := logitsTensor.GetData()
	logits := make([]float32, len(data))
	copy(logits, data)

	return logits, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
