// Package config loads the CLI configuration from YAML and the environment.
package config

// Config is the root application configuration.
type Config struct {
	Model     ModelConfig     `yaml:"model"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Log       LogConfig       `yaml:"log"`
}

// ModelConfig holds the language-ID model settings. An empty Path disables
// the model; chunks are then tagged by script.
type ModelConfig struct {
	Path          string   `yaml:"path"           env:"LANGSEG_MODEL_PATH"`
	DownloadURL   string   `yaml:"download_url"   env:"LANGSEG_MODEL_URL"`
	Proxy         string   `yaml:"proxy"          env:"LANGSEG_MODEL_PROXY"`
	MD5           string   `yaml:"md5"            env:"LANGSEG_MODEL_MD5"`
	TempCopy      bool     `yaml:"temp_copy"      env:"LANGSEG_MODEL_TEMP_COPY"      env-default:"false"`
	Tokenizer     string   `yaml:"tokenizer"      env:"LANGSEG_TOKENIZER_PATH"`
	ONNXLibrary   string   `yaml:"onnx_library"   env:"LANGSEG_ONNX_LIBRARY"`
	PoolSize      int      `yaml:"pool_size"      env:"LANGSEG_POOL_SIZE"            env-default:"0"`
	Labels        []string `yaml:"labels"         env:"LANGSEG_MODEL_LABELS"         env-separator:","`
	MinConfidence float32  `yaml:"min_confidence" env:"LANGSEG_MIN_CONFIDENCE"       env-default:"0"`
}

// SegmenterConfig holds pipeline settings. The Japanese lexicon is loaded
// unless skipped.
type SegmenterConfig struct {
	SkipJapaneseLexicon bool              `yaml:"skip_japanese_lexicon" env:"LANGSEG_SKIP_JAPANESE_LEXICON" env-default:"false"`
	LanguageMap         map[string]string `yaml:"language_map"          env:"LANGSEG_LANGUAGE_MAP"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
