// Package config provides configuration loading and structs for the
// summarizer server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Upload     UploadConfig     `yaml:"upload"`
	Extract    ExtractConfig    `yaml:"extract"`
	Detect     DetectConfig     `yaml:"detect"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Storage    StorageConfig    `yaml:"storage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// UploadConfig holds caller-side file limits. Size enforcement happens at
// the HTTP boundary, not inside the extractors.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// ExtractConfig holds the PDF engine thresholds.
type ExtractConfig struct {
	DocTimeoutSeconds  int `yaml:"doc_timeout_seconds"`
	PageTimeoutSeconds int `yaml:"page_timeout_seconds"`
	MinPDFTextLen      int `yaml:"min_pdf_text_len"`
	MinRecoveredLen    int `yaml:"min_recovered_len"`
}

// DocTimeout returns the document-open budget as a duration.
func (e *ExtractConfig) DocTimeout() time.Duration {
	return time.Duration(e.DocTimeoutSeconds) * time.Second
}

// PageTimeout returns the per-page budget as a duration.
func (e *ExtractConfig) PageTimeout() time.Duration {
	return time.Duration(e.PageTimeoutSeconds) * time.Second
}

// DetectConfig holds language detection settings.
type DetectConfig struct {
	MinLength int `yaml:"min_length"`
}

// SummarizerConfig holds the LLM provider settings. The API key is read
// from the environment variable named by APIKeyEnv, never from the file.
type SummarizerConfig struct {
	Provider           string `yaml:"provider"`
	Model              string `yaml:"model"`
	BaseURL            string `yaml:"base_url"`
	APIKeyEnv          string `yaml:"api_key_env"`
	MaxTokens          int    `yaml:"max_tokens"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	MultiCallThreshold int    `yaml:"multi_call_threshold"`
}

// Timeout returns the per-call budget as a duration.
func (s *SummarizerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// APIKey reads the provider key from the configured environment variable.
func (s *SummarizerConfig) APIKey() string {
	return os.Getenv(s.APIKeyEnv)
}

// StorageConfig holds the history database settings.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	HistoryLimit int    `yaml:"history_limit"`
}

// Load reads and parses the config file at path, applies defaults, and
// expands paths. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// Default returns a config with every default applied, for running without
// a config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
