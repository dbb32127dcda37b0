// Package config manages the global (~/.config/compression-prompt/config.toml)
// configuration for the compress CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hivellm/compression-prompt/internal/compressor"
	"github.com/hivellm/compression-prompt/internal/filter"
)

// GlobalConfig holds user-wide settings.
type GlobalConfig struct {
	Compression CompressionConfig `toml:"compression"`
	Weights     WeightsConfig     `toml:"weights"`
	Keys        KeysConfig        `toml:"keys"`
	Eval        EvalConfig        `toml:"eval"`
}

// CompressionConfig mirrors the pipeline options a user may override.
type CompressionConfig struct {
	TargetRatio               float64  `toml:"target_ratio"`
	EnableProtectionMasks     bool     `toml:"enable_protection_masks"`
	EnableContextualStopwords bool     `toml:"enable_contextual_stopwords"`
	PreserveNegations         bool     `toml:"preserve_negations"`
	PreserveComparators       bool     `toml:"preserve_comparators"`
	DomainTerms               []string `toml:"domain_terms"`
	MinGapBetweenCritical     int      `toml:"min_gap_between_critical"`
	MinInputTokens            int      `toml:"min_input_tokens"`
	MinInputBytes             int      `toml:"min_input_bytes"`
}

// WeightsConfig holds the five fusion weights.
type WeightsConfig struct {
	IDF      float64 `toml:"idf"`
	Position float64 `toml:"position"`
	POS      float64 `toml:"pos"`
	Entity   float64 `toml:"entity"`
	Entropy  float64 `toml:"entropy"`
}

// KeysConfig holds provider API keys for the evaluate command.
type KeysConfig struct {
	Anthropic string `toml:"anthropic"`
	OpenAI    string `toml:"openai"`
}

// EvalConfig controls the LLM-judged evaluation.
type EvalConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// DefaultGlobal returns sensible defaults matching the validated filter
// configuration.
func DefaultGlobal() GlobalConfig {
	fc := filter.DefaultConfig()
	cc := compressor.DefaultConfig()
	return GlobalConfig{
		Compression: CompressionConfig{
			TargetRatio:               fc.TargetRatio,
			EnableProtectionMasks:     fc.EnableProtectionMasks,
			EnableContextualStopwords: fc.EnableContextualStopwords,
			PreserveNegations:         fc.PreserveNegations,
			PreserveComparators:       fc.PreserveComparators,
			DomainTerms:               fc.DomainTerms,
			MinGapBetweenCritical:     fc.MinGapBetweenCritical,
			MinInputTokens:            cc.MinInputTokens,
			MinInputBytes:             cc.MinInputBytes,
		},
		Weights: WeightsConfig{
			IDF:      fc.IDFWeight,
			Position: fc.PositionWeight,
			POS:      fc.POSWeight,
			Entity:   fc.EntityWeight,
			Entropy:  fc.EntropyWeight,
		},
		Eval: EvalConfig{
			Provider: "claude",
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "compression-prompt", "config.toml"), nil
}

// HistoryDBPath returns the path to the run-history SQLite database.
func HistoryDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "compression-prompt", "history.db"), nil
}

// LoadGlobal loads the global config, applying defaults for any missing
// values and letting env vars override API keys.
func LoadGlobal() (GlobalConfig, error) {
	cfg := DefaultGlobal()

	// Defaults stand if we can't determine the home dir or the file
	// doesn't exist yet.
	if path, err := GlobalConfigPath(); err == nil {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("config: load global: %w", err)
			}
		}
	}

	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Keys.Anthropic = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Keys.OpenAI = v
	}

	return cfg, nil
}

// SaveGlobal writes the global config to disk.
func SaveGlobal(cfg GlobalConfig) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create global config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// CompressorConfig converts the file representation into the pipeline
// configuration.
func (c GlobalConfig) CompressorConfig() compressor.Config {
	cfg := compressor.DefaultConfig()
	cfg.Filter = filter.Config{
		TargetRatio:               c.Compression.TargetRatio,
		IDFWeight:                 c.Weights.IDF,
		PositionWeight:            c.Weights.Position,
		POSWeight:                 c.Weights.POS,
		EntityWeight:              c.Weights.Entity,
		EntropyWeight:             c.Weights.Entropy,
		EnableProtectionMasks:     c.Compression.EnableProtectionMasks,
		EnableContextualStopwords: c.Compression.EnableContextualStopwords,
		PreserveNegations:         c.Compression.PreserveNegations,
		PreserveComparators:       c.Compression.PreserveComparators,
		DomainTerms:               c.Compression.DomainTerms,
		MinGapBetweenCritical:     c.Compression.MinGapBetweenCritical,
	}
	cfg.MinInputTokens = c.Compression.MinInputTokens
	cfg.MinInputBytes = c.Compression.MinInputBytes
	return cfg
}
