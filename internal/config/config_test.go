// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got: %v", err)
	}
	if cfg.Throttle.MinInterval() != 6*time.Second {
		t.Errorf("MinInterval() = %v, want 6s", cfg.Throttle.MinInterval())
	}
	c, r, w := cfg.Backend.Timeouts()
	if c != 120*time.Second || r != 120*time.Second || w != 120*time.Second {
		t.Errorf("Timeouts() = %v/%v/%v, want 120s each", c, r, w)
	}
	if !cfg.Backend.LogBodies {
		t.Error("log_bodies should default to true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.Backend.BaseURL = "ftp://example.com" }, "backend.base_url"},
		{"no host", func(c *Config) { c.Backend.BaseURL = "https://" }, "backend.base_url"},
		{"zero connect timeout", func(c *Config) { c.Backend.ConnectTimeoutSecs = 0 }, "backend.connect_timeout_secs"},
		{"huge read timeout", func(c *Config) { c.Backend.ReadTimeoutSecs = 601 }, "backend.read_timeout_secs"},
		{"negative write timeout", func(c *Config) { c.Backend.WriteTimeoutSecs = -1 }, "backend.write_timeout_secs"},
		{"negative throttle", func(c *Config) { c.Throttle.MinIntervalMs = -1 }, "throttle.min_interval_ms"},
		{"empty db path", func(c *Config) { c.Storage.DatabasePath = " " }, "storage.database_path"},
		{"same paths", func(c *Config) { c.Storage.SettingsPath = c.Storage.DatabasePath }, "storage.settings_path"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidateErrors, got %v", err)
			}
			found := false
			for _, e := range verrs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.field, verrs)
			}
		})
	}
}

func TestValidate_ZeroThrottleAllowed(t *testing.T) {
	cfg := Default()
	cfg.Throttle.MinIntervalMs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero throttle should be valid: %v", err)
	}
}

func TestLoadFromPath_TOMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[backend]
base_url = "http://localhost:54321/functions/v1"
api_key = "anon-key"

[throttle]
min_interval_ms = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:54321/functions/v1" {
		t.Errorf("base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.APIKey != "anon-key" {
		t.Errorf("api_key = %q", cfg.Backend.APIKey)
	}
	if cfg.Throttle.MinIntervalMs != 0 {
		t.Errorf("explicit zero throttle was replaced: %d", cfg.Throttle.MinIntervalMs)
	}
	if cfg.Backend.ReadTimeoutSecs != DefaultTimeoutSecs {
		t.Errorf("read timeout = %d, want default", cfg.Backend.ReadTimeoutSecs)
	}
	if !cfg.Backend.LogBodies || !cfg.UI.RenderMarkdown {
		t.Error("unset booleans should keep their defaults")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config permissions = %o, want 600", info.Mode().Perm())
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"backend": {"api_key": "k", "log_bodies": false}, "ui": {"theme": "light"}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Backend.LogBodies {
		t.Error("log_bodies should be false")
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	if cfg.Backend.BaseURL != DefaultBaseURL {
		t.Errorf("base_url = %q, want default", cfg.Backend.BaseURL)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"plaid\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected validation error")
	}

	if err := os.WriteFile(path, []byte("not = [valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != DefaultBaseURL {
		t.Errorf("base_url = %q", cfg.Backend.BaseURL)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CHATGURU_BASE_URL", "https://env.example.com/fn")
	t.Setenv("CHATGURU_API_KEY", "env-key")
	t.Setenv("CHATGURU_THROTTLE_MS", "250")
	t.Setenv("CHATGURU_DB", "/tmp/x.db")
	t.Setenv("CHATGURU_SETTINGS", "/tmp/x.settings")
	t.Setenv("CHATGURU_LOG_BODIES", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.BaseURL != "https://env.example.com/fn" {
		t.Errorf("base_url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.APIKey != "env-key" {
		t.Errorf("api_key = %q", cfg.Backend.APIKey)
	}
	if cfg.Throttle.MinIntervalMs != 250 {
		t.Errorf("min_interval_ms = %d", cfg.Throttle.MinIntervalMs)
	}
	if cfg.DatabasePath() != "/tmp/x.db" || cfg.SettingsPath() != "/tmp/x.settings" {
		t.Errorf("paths = %q, %q", cfg.DatabasePath(), cfg.SettingsPath())
	}
	if cfg.Backend.LogBodies {
		t.Error("log_bodies should be false")
	}
}

func TestApplyEnvOverrides_BadThrottleIgnored(t *testing.T) {
	t.Setenv("CHATGURU_THROTTLE_MS", "soon")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Throttle.MinIntervalMs != DefaultMinIntervalMs {
		t.Errorf("min_interval_ms = %d, want default", cfg.Throttle.MinIntervalMs)
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Backend.APIKey = "secret"
	cfg.Throttle.MinIntervalMs = 1500
	cfg.UI.RenderMarkdown = false

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Backend.APIKey != "secret" || loaded.Throttle.MinIntervalMs != 1500 || loaded.UI.RenderMarkdown {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.UI.Theme = "auto"

	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.UI.Theme != "auto" {
		t.Errorf("theme = %q", loaded.UI.Theme)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("backend.api_key", "abc"); err != nil {
		t.Fatalf("Set string: %v", err)
	}
	if err := cfg.Set("throttle.min_interval_ms", "42"); err != nil {
		t.Fatalf("Set int: %v", err)
	}
	if err := cfg.Set("UI.Render_Markdown", "false"); err != nil {
		t.Fatalf("Set bool: %v", err)
	}

	v, err := cfg.Get("backend.api_key")
	if err != nil || v != "abc" {
		t.Errorf("Get api_key = %v, %v", v, err)
	}
	v, err = cfg.Get("throttle.min_interval_ms")
	if err != nil || v != 42 {
		t.Errorf("Get min_interval_ms = %v, %v", v, err)
	}
	if cfg.UI.RenderMarkdown {
		t.Error("render_markdown should be false")
	}
}

func TestGetSet_Errors(t *testing.T) {
	cfg := Default()

	for _, key := range []string{"", "nope", "backend.nope", "backend", "version.x"} {
		if _, err := cfg.Get(key); err == nil {
			t.Errorf("Get(%q) should fail", key)
		}
	}
	if err := cfg.Set("throttle.min_interval_ms", "fast"); err == nil {
		t.Error("Set with non-integer should fail")
	}
	if err := cfg.Set("backend.log_bodies", "maybe"); err == nil {
		t.Error("Set with non-boolean should fail")
	}
}

func TestKeys(t *testing.T) {
	keys := Default().Keys()
	want := []string{"backend.api_key", "storage.settings_path", "throttle.min_interval_ms", "ui.theme", "version"}
	joined := strings.Join(keys, ",")
	for _, k := range want {
		if !strings.Contains(joined, k) {
			t.Errorf("Keys() missing %s: %v", k, keys)
		}
	}
	for _, k := range keys {
		if _, err := Default().Get(k); err != nil {
			t.Errorf("Get(%s) from Keys(): %v", k, err)
		}
	}
}

func TestString_RedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Backend.APIKey = "super-secret"
	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Error("String() leaked the API key")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() should mark the key as redacted")
	}
	if cfg.Backend.APIKey != "super-secret" {
		t.Error("String() must not modify the original")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandPath("~/.chatguru/a.db"); got != filepath.Join(home, ".chatguru", "a.db") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/abs/a.db"); got != "/abs/a.db" {
		t.Errorf("ExpandPath changed absolute path: %q", got)
	}
	if got := ExpandPath("~other/a.db"); got != "~other/a.db" {
		t.Errorf("ExpandPath changed ~user path: %q", got)
	}
}

func TestReadFile_MissingAndNoEnv(t *testing.T) {
	t.Setenv("CHATGURU_API_KEY", "from-env")
	dir := t.TempDir()

	cfg, err := ReadFile(filepath.Join(dir, "absent.toml"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if cfg.Backend.APIKey != "" {
		t.Error("ReadFile must not apply environment overrides")
	}

	path := filepath.Join(dir, "config.json")
	cfg.UI.Theme = "light"
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if back.UI.Theme != "light" || back.Backend.APIKey != "" {
		t.Errorf("unexpected config: %+v", back)
	}
}
