// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chatguru/chatguru-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatguru configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Backend  BackendConfig  `toml:"backend" json:"backend"`
	Throttle ThrottleConfig `toml:"throttle" json:"throttle"`
	Storage  StorageConfig  `toml:"storage" json:"storage"`
	UI       UIConfig       `toml:"ui" json:"ui"`
}

// BackendConfig configures the comment backend.
type BackendConfig struct {
	// BaseURL is the functions root, e.g. https://<project>.supabase.co/functions/v1
	BaseURL string `toml:"base_url" json:"base_url"`

	// APIKey is sent as both the apikey header and the bearer token.
	APIKey string `toml:"api_key" json:"api_key"`

	ConnectTimeoutSecs int `toml:"connect_timeout_secs" json:"connect_timeout_secs"`
	ReadTimeoutSecs    int `toml:"read_timeout_secs" json:"read_timeout_secs"`
	WriteTimeoutSecs   int `toml:"write_timeout_secs" json:"write_timeout_secs"`

	// LogBodies logs request and response bodies (images elided).
	LogBodies bool `toml:"log_bodies" json:"log_bodies"`
}

// ThrottleConfig configures request spacing.
type ThrottleConfig struct {
	// MinIntervalMs between request starts; 0 disables spacing.
	MinIntervalMs int `toml:"min_interval_ms" json:"min_interval_ms"`
}

// StorageConfig locates local state. A leading "~/" is expanded.
type StorageConfig struct {
	DatabasePath string `toml:"database_path" json:"database_path"`
	SettingsPath string `toml:"settings_path" json:"settings_path"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme          string `toml:"theme" json:"theme"` // dark, light, auto
	RenderMarkdown bool   `toml:"render_markdown" json:"render_markdown"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// ConfigVersion is the current configuration schema version.
	ConfigVersion = "1.0.0"

	DefaultBaseURL       = "https://chatguru.supabase.co/functions/v1"
	DefaultTimeoutSecs   = 120
	DefaultMinIntervalMs = 6000
	DefaultTheme         = "dark"
	defaultDatabaseFile  = "chatguru.db"
	defaultSettingsFile  = "settings.db"
	defaultLogFile       = "chatguru.log"
	maxTimeoutSecs       = 600
	maxMinIntervalMs     = 10 * 60 * 1000
	configDirName        = ".chatguru"
)

// ValidThemes lists accepted ui.theme values.
var ValidThemes = []string{"dark", "light", "auto"}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Version: ConfigVersion,
		Backend: BackendConfig{
			BaseURL:            DefaultBaseURL,
			ConnectTimeoutSecs: DefaultTimeoutSecs,
			ReadTimeoutSecs:    DefaultTimeoutSecs,
			WriteTimeoutSecs:   DefaultTimeoutSecs,
			LogBodies:          true,
		},
		Throttle: ThrottleConfig{
			MinIntervalMs: DefaultMinIntervalMs,
		},
		Storage: StorageConfig{
			DatabasePath: "~/" + configDirName + "/" + defaultDatabaseFile,
			SettingsPath: "~/" + configDirName + "/" + defaultSettingsFile,
		},
		UI: UIConfig{
			Theme:          DefaultTheme,
			RenderMarkdown: true,
		},
	}
}

// Timeouts returns the connect, read and write timeouts.
func (b BackendConfig) Timeouts() (connect, read, write time.Duration) {
	return time.Duration(b.ConnectTimeoutSecs) * time.Second,
		time.Duration(b.ReadTimeoutSecs) * time.Second,
		time.Duration(b.WriteTimeoutSecs) * time.Second
}

// MinInterval returns the spacing as a duration.
func (t ThrottleConfig) MinInterval() time.Duration {
	return time.Duration(t.MinIntervalMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatguru configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns where the TUI writes its log.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultLogFile), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// ExpandPath expands a leading "~/" to the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// DatabasePath returns the expanded chat database path.
func (c *Config) DatabasePath() string {
	return ExpandPath(c.Storage.DatabasePath)
}

// SettingsPath returns the expanded settings file path.
func (c *Config) SettingsPath() string {
	return ExpandPath(c.Storage.SettingsPath)
}

// ensureSecurePermissions tightens config files to 0600; they hold the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file on top of cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: unknown config keys in %s: %v\n", path, undecoded)
	}
	return fillDefaults(cfg)
}

// LoadJSON decodes a JSON file on top of cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Keys missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReadFile decodes path without environment overrides or validation, for
// editing the file in place. A missing file yields the defaults.
func ReadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return decodeFile(path)
}

func decodeFile(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults replaces values a file explicitly blanked.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		cfg.Backend.BaseURL = defaults.Backend.BaseURL
	}
	if cfg.Backend.ConnectTimeoutSecs == 0 {
		cfg.Backend.ConnectTimeoutSecs = defaults.Backend.ConnectTimeoutSecs
	}
	if cfg.Backend.ReadTimeoutSecs == 0 {
		cfg.Backend.ReadTimeoutSecs = defaults.Backend.ReadTimeoutSecs
	}
	if cfg.Backend.WriteTimeoutSecs == 0 {
		cfg.Backend.WriteTimeoutSecs = defaults.Backend.WriteTimeoutSecs
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = defaults.Storage.DatabasePath
	}
	if cfg.Storage.SettingsPath == "" {
		cfg.Storage.SettingsPath = defaults.Storage.SettingsPath
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTo writes cfg as JSON or TOML depending on the path suffix.
func SaveTo(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# chatguru configuration file")
	fmt.Fprintln(&buf, "# Generated by chatguru - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON, atomically with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CHATGURU_* environment variables:
//   - CHATGURU_BASE_URL: overrides backend.base_url
//   - CHATGURU_API_KEY: overrides backend.api_key
//   - CHATGURU_THROTTLE_MS: overrides throttle.min_interval_ms
//   - CHATGURU_DB: overrides storage.database_path
//   - CHATGURU_SETTINGS: overrides storage.settings_path
//   - CHATGURU_LOG_BODIES: overrides backend.log_bodies
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHATGURU_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("CHATGURU_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("CHATGURU_THROTTLE_MS"); v != "" {
		if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Throttle.MinIntervalMs = ms
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring CHATGURU_THROTTLE_MS=%q: not a number\n", v)
		}
	}
	if v := os.Getenv("CHATGURU_DB"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("CHATGURU_SETTINGS"); v != "" {
		c.Storage.SettingsPath = v
	}
	if v := os.Getenv("CHATGURU_LOG_BODIES"); v != "" {
		c.Backend.LogBodies = v == "1" || strings.EqualFold(v, "true")
	}
}

// =============================================================================
// DEBUG OUTPUT
// =============================================================================

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as JSON with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Backend.APIKey != "" {
		safe.Backend.APIKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
