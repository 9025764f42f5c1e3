// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for madhwagpt.
//
// Configuration sources (later wins):
//   - Built-in defaults
//   - ~/.madhwagpt/config.toml
//   - MADHWAGPT_* environment variables (a .env file is loaded by main)
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/util"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "MADHWAGPT_"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete madhwagpt configuration.
type Config struct {
	API  APIConfig  `toml:"api" envPrefix:"API_"`
	Chat ChatConfig `toml:"chat" envPrefix:"CHAT_"`
	UI   UIConfig   `toml:"ui" envPrefix:"UI_"`
	Log  LogConfig  `toml:"log" envPrefix:"LOG_"`
}

// APIConfig configures the HTTP clients.
type APIConfig struct {
	// BaseURL replaces scheme and host of every catalog URL. Useful for a
	// local mirror of the scripture service.
	BaseURL string `toml:"base_url" env:"BASE_URL"`

	// QueryURL is the question-answering endpoint.
	QueryURL string `toml:"query_url" env:"QUERY_URL"`

	// Timeout bounds each request.
	Timeout time.Duration `toml:"timeout" env:"TIMEOUT"`

	// QueryRate is the number of questions per second allowed; 0 disables pacing.
	QueryRate float64 `toml:"query_rate" env:"QUERY_RATE"`
	QueryBurst int    `toml:"query_burst" env:"QUERY_BURST"`

	UserAgent string `toml:"user_agent" env:"USER_AGENT"`
}

// ChatConfig configures question answering.
type ChatConfig struct {
	// Level is the default explanation depth: beginner, intermediate or scholar.
	Level string `toml:"level" env:"LEVEL"`

	// Fallback is "empty" (failures become empty results) or "strict".
	Fallback string `toml:"fallback" env:"FALLBACK"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	Theme     string `toml:"theme" env:"THEME"`
	PageSize  int    `toml:"page_size" env:"PAGE_SIZE"`
	WordWrap  int    `toml:"word_wrap" env:"WORD_WRAP"`
	AltScreen bool   `toml:"alt_screen" env:"ALT_SCREEN"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"`

	// File receives TUI logs. Empty discards them while the TUI runs.
	File string `toml:"file" env:"FILE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://madhwagpt2.onrender.com",
			QueryURL:   api.QueryURL,
			// net/http has no default timeout; 60s bounds a stalled request.
			Timeout:    60 * time.Second,
			QueryRate:  0,
			QueryBurst: 1,
			UserAgent:  api.DefaultUserAgent,
		},
		Chat: ChatConfig{
			Level:    model.DefaultLevel().Persona(),
			Fallback: api.PolicyEmpty.String(),
		},
		UI: UIConfig{
			Theme:     "NotebookLM Purple",
			PageSize:  10,
			WordWrap:  80,
			AltScreen: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// TYPED ACCESSORS
// =============================================================================

// ChatLevel returns the configured level. Validate guarantees it parses.
func (c *Config) ChatLevel() model.Level {
	lv, err := model.LevelByName(c.Chat.Level)
	if err != nil {
		return model.DefaultLevel()
	}
	return lv
}

// FallbackPolicy returns the configured failure policy.
func (c *Config) FallbackPolicy() api.Policy {
	p, err := api.ParsePolicy(c.Chat.Fallback)
	if err != nil {
		return api.PolicyEmpty
	}
	return p
}

// ClientConfig maps the [api] section onto an api.Config.
func (c *Config) ClientConfig() api.Config {
	return api.Config{
		QueryURL:   c.API.QueryURL,
		Timeout:    c.API.Timeout,
		QueryRate:  c.API.QueryRate,
		QueryBurst: c.API.QueryBurst,
		UserAgent:  c.API.UserAgent,
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the madhwagpt configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".madhwagpt"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file, if any, then applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file. A missing file
// is not an error: defaults and environment overrides still apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, statErr)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values; unknown keys are rejected.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides overlays MADHWAGPT_* environment variables, for example
// MADHWAGPT_API_QUERY_URL, MADHWAGPT_CHAT_LEVEL or MADHWAGPT_UI_THEME.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# madhwagpt configuration file")
	fmt.Fprintln(&buf, "# Environment variables prefixed MADHWAGPT_ override these values.")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// RELIABILITY: a running TUI watches this file; never expose a partial write.
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.API.BaseURL != "" {
		if msg := checkHTTPURL(c.API.BaseURL); msg != "" {
			errs = append(errs, ValidationError{Field: "api.base_url", Message: msg})
		}
	}
	if msg := checkHTTPURL(c.API.QueryURL); msg != "" {
		errs = append(errs, ValidationError{Field: "api.query_url", Message: msg})
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout",
			Message: fmt.Sprintf("must be positive, got %s", c.API.Timeout),
		})
	}
	if c.API.QueryRate < 0 {
		errs = append(errs, ValidationError{Field: "api.query_rate", Message: "must not be negative"})
	}
	if c.API.QueryRate > 0 && c.API.QueryBurst < 1 {
		errs = append(errs, ValidationError{Field: "api.query_burst", Message: "must be at least 1 when query_rate is set"})
	}

	if _, err := model.LevelByName(c.Chat.Level); err != nil {
		errs = append(errs, ValidationError{Field: "chat.level", Message: err.Error()})
	}
	if _, err := api.ParsePolicy(c.Chat.Fallback); err != nil {
		errs = append(errs, ValidationError{Field: "chat.fallback", Message: err.Error()})
	}

	if c.UI.PageSize < 1 || c.UI.PageSize > 100 {
		errs = append(errs, ValidationError{
			Field:   "ui.page_size",
			Message: fmt.Sprintf("must be between 1 and 100, got %d", c.UI.PageSize),
		})
	}
	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{Field: "ui.word_wrap", Message: "must not be negative"})
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkHTTPURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("URL scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return "URL must include a host"
	}
	return ""
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value by its TOML key path, e.g. "ui.theme".
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if key == "" {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTOMLName(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return nil, fmt.Errorf("invalid key: %s", key)
}

// Keys returns every leaf key in dot notation, in declaration order.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + f.Tag.Get("toml")
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

func fieldByTOMLName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Tag.Get("toml"), name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
