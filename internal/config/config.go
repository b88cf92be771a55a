// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the sage client.
//
// Configuration is resolved in order of precedence:
//   - SAGE_* environment variables
//   - ~/.sage/config.toml
//   - Built-in defaults
//
// The resulting Config is treated as immutable input by the rest of the
// client; nothing mutates it after Load returns.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Defaults mirroring the backend's deployment configuration.
const (
	DefaultAPIBaseURL      = "http://localhost:8000"
	DefaultRequestTimeout  = 60             // seconds
	DefaultMaxFileSize     = 10 * 1024 * 1024 // 10MB
	DefaultSidebarWidth    = 32
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete sage configuration.
type Config struct {
	// APIBaseURL is the base URL of the chat backend. Deployments behind
	// a reverse proxy typically set this to "<origin>/api".
	APIBaseURL string `toml:"api_base_url" env:"SAGE_API_URL"`

	// RequestTimeoutSecs bounds every backend call.
	RequestTimeoutSecs int `toml:"request_timeout_secs" env:"SAGE_TIMEOUT_SECS"`

	// LogPath is the log file location (empty = ~/.sage/sage.log). The
	// TUI owns the terminal, so logs never go to stdout.
	LogPath string `toml:"log_path" env:"SAGE_LOG_PATH"`

	Upload UploadConfig `toml:"upload"`
	UI     UIConfig     `toml:"ui"`
}

// UploadConfig bounds document uploads client-side. The backend enforces
// its own limits; these exist to fail fast before transferring data.
type UploadConfig struct {
	// MaxFileSize is the per-file size limit in bytes.
	MaxFileSize int64 `toml:"max_file_size" env:"SAGE_MAX_FILE_SIZE"`
	// AllowedTypes lists acceptable file extensions, dot included.
	AllowedTypes []string `toml:"allowed_types" env:"SAGE_ALLOWED_TYPES" envSeparator:","`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// SidebarWidth is the chat list width in columns.
	SidebarWidth int `toml:"sidebar_width" env:"SAGE_SIDEBAR_WIDTH"`
	// ShowTimestamps toggles per-message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps" env:"SAGE_SHOW_TIMESTAMPS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:         DefaultAPIBaseURL,
		RequestTimeoutSecs: DefaultRequestTimeout,
		Upload: UploadConfig{
			MaxFileSize:  DefaultMaxFileSize,
			AllowedTypes: []string{".pdf", ".docx"},
		},
		UI: UIConfig{
			SidebarWidth:   DefaultSidebarWidth,
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the sage configuration directory (~/.sage), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	dir := filepath.Join(home, ".sage")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads configuration from path, layering environment overrides on
// top. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an absolute http(s) URL", c.APIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_base_url scheme %q", u.Scheme)
	}

	if c.RequestTimeoutSecs <= 0 {
		return fmt.Errorf("request_timeout_secs must be positive, got %d", c.RequestTimeoutSecs)
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload.max_file_size must be positive, got %d", c.Upload.MaxFileSize)
	}
	for _, ext := range c.Upload.AllowedTypes {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("upload.allowed_types entry %q must start with a dot", ext)
		}
	}
	if c.UI.SidebarWidth < 16 {
		return fmt.Errorf("ui.sidebar_width must be at least 16, got %d", c.UI.SidebarWidth)
	}
	return nil
}

// RequestTimeout returns the configured timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// LogFile resolves the log file location, defaulting to sage.log in
// the config directory.
func (c *Config) LogFile() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sage.log"), nil
}

// AllowsExtension reports whether ext (dot included, any case) may be
// uploaded. An empty allow-list permits everything.
func (c *Config) AllowsExtension(ext string) bool {
	if len(c.Upload.AllowedTypes) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, allowed := range c.Upload.AllowedTypes {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}
