package app

import (
	"context"
	"log/slog"

	"github.com/jamesainslie/go-langseg"
	"github.com/jamesainslie/go-langseg/internal/config"
	"github.com/jamesainslie/go-langseg/modelfile"
)

// Options translates cfg into segmenter options. A zero Model.Path leaves the
// script-based detector in place.
func Options(cfg *config.Config, logger *slog.Logger) []langseg.Option {
	opts := []langseg.Option{langseg.WithLogger(logger)}

	if len(cfg.Segmenter.LanguageMap) > 0 {
		opts = append(opts, langseg.WithLanguageMap(langseg.LanguageMap(cfg.Segmenter.LanguageMap)))
	}
	if cfg.Segmenter.SkipJapaneseLexicon {
		opts = append(opts, langseg.WithoutJapaneseLexicon())
	}

	m := cfg.Model
	if m.Path == "" {
		return opts
	}
	opts = append(opts,
		langseg.WithModel(modelfile.Source{
			Path:        m.Path,
			DownloadURL: m.DownloadURL,
			Proxy:       m.Proxy,
			MD5:         m.MD5,
			TempCopy:    m.TempCopy,
		}, m.Tokenizer),
		langseg.WithONNXLibrary(m.ONNXLibrary),
		langseg.WithPoolSize(m.PoolSize),
		langseg.WithLabels(m.Labels),
		langseg.WithMinConfidence(m.MinConfidence),
	)
	return opts
}

// NewSegmenter builds a segmenter from cfg. Extra options apply last.
func NewSegmenter(ctx context.Context, cfg *config.Config, logger *slog.Logger, extra ...langseg.Option) (*langseg.Segmenter, error) {
	return langseg.New(ctx, append(Options(cfg, logger), extra...)...)
}
