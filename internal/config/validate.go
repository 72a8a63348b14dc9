package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Model.validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (m *ModelConfig) validate() error {
	if m.Path == "" {
		if m.DownloadURL != "" {
			return errors.New("download_url requires path")
		}
		return nil
	}
	if m.Tokenizer == "" {
		return errors.New("tokenizer is required with a model")
	}
	if m.PoolSize < 0 {
		return fmt.Errorf("pool_size must be >= 0 (got %d)", m.PoolSize)
	}
	if m.MinConfidence < 0 || m.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be within [0, 1] (got %v)", m.MinConfidence)
	}
	if m.MD5 != "" {
		if sum, err := hex.DecodeString(m.MD5); err != nil || len(sum) != 16 {
			return fmt.Errorf("md5 must be 32 hex digits (got %q)", m.MD5)
		}
	}
	return nil
}
