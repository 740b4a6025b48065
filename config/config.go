// Package config loads pipeline configuration — the ordered stage list
// and each stage's bounds — from a TOML file, grounded on memvra's
// internal/config (GlobalConfig/LoadGlobal/DefaultGlobal pattern). Unlike
// memvra, there is no global-vs-project split: a tokseq pipeline config
// is always a single self-contained file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// StageConfig describes one pipeline stage. Kind selects which bounds
// apply; unused fields are ignored for a given Kind.
type StageConfig struct {
	Kind string `toml:"kind"` // "bpe", "lz", "hlz", or "contextual"

	MaxOutputVocab int `toml:"max_output_vocab"` // bpe
	MaxMerges      int `toml:"max_merges"`        // bpe
	VocabSize      int `toml:"vocab_size"`        // lz, hlz; <=0 means unbounded
}

// Config is the top-level pipeline configuration: an ordered list of
// stages built left-to-right via pipeline.New.
type Config struct {
	Stages []StageConfig `toml:"stage"`
}

// DefaultConfig is a single bounded BPE stage, a reasonable starting
// point for `tokseq learn` when no config file is supplied.
func DefaultConfig() Config {
	return Config{
		Stages: []StageConfig{
			{Kind: "bpe", MaxOutputVocab: 512},
		},
	}
}

// Load reads a pipeline config from path. A missing file is not an
// error: DefaultConfig is returned instead, matching memvra's
// LoadGlobal fallback behavior.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
