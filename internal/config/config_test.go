package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at a temp dir and clears every variable Load reads
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"API_KEY", "GEMINI_API_KEY", "MINDFLOW_MODEL", "MINDFLOW_TIMEOUT",
		"MINDFLOW_DEFAULT_FILTER", "MINDFLOW_EXPORT_DIR", "MINDFLOW_LOG_DIR",
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "mindflow")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != DefaultModel {
		t.Errorf("expected model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.DefaultFilter != "all" {
		t.Errorf("expected default filter 'all', got %q", cfg.DefaultFilter)
	}
	if cfg.ExportDir != filepath.Join(home, "mindflow") {
		t.Errorf("unexpected export dir %q", cfg.ExportDir)
	}
	if cfg.LogDir != filepath.Join(home, ".config", "mindflow") {
		t.Errorf("unexpected log dir %q", cfg.LogDir)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected no api key, got %q", cfg.APIKey)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `{"model":"gemini-file","timeout":"30s","default_filter":"Task","export_dir":"~/notes","api_key":"file-key"}`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "gemini-file" {
		t.Errorf("expected gemini-file, got %q", cfg.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.Timeout)
	}
	if cfg.DefaultFilter != "Task" {
		t.Errorf("expected Task, got %q", cfg.DefaultFilter)
	}
	if cfg.ExportDir != filepath.Join(home, "notes") {
		t.Errorf("expected expanded export dir, got %q", cfg.ExportDir)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("expected file-key, got %q", cfg.APIKey)
	}
}

func TestLoad_ConfigFileBadTimeout(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `{"timeout":"soon"}`)

	if _, err := Load(CLIFlags{}); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	home := isolate(t)
	writeConfigFile(t, home, `{"model":"gemini-file"}`)
	t.Setenv("MINDFLOW_MODEL", "gemini-env")
	t.Setenv("API_KEY", "generic-key")
	t.Setenv("MINDFLOW_TIMEOUT", "45s")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Model != "gemini-env" {
		t.Errorf("env should override file, got %q", cfg.Model)
	}
	if cfg.APIKey != "generic-key" {
		t.Errorf("expected generic-key, got %q", cfg.APIKey)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("expected 45s, got %v", cfg.Timeout)
	}

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, _ = Load(CLIFlags{})
	if cfg.APIKey != "gemini-key" {
		t.Errorf("GEMINI_API_KEY should win over API_KEY, got %q", cfg.APIKey)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("MINDFLOW_MODEL", "gemini-env")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load(CLIFlags{
		APIKey:    "flag-key",
		Model:     "gemini-flag",
		Timeout:   time.Second,
		ExportDir: "/tmp/mindflow-export",
		Debug:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.Model != "gemini-flag" {
		t.Errorf("expected gemini-flag, got %q", cfg.Model)
	}
	if cfg.APIKey != "flag-key" {
		t.Errorf("expected flag-key, got %q", cfg.APIKey)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("expected 1s, got %v", cfg.Timeout)
	}
	if cfg.ExportDir != "/tmp/mindflow-export" {
		t.Errorf("unexpected export dir %q", cfg.ExportDir)
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
}

func TestValidate(t *testing.T) {
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected error without api key")
	}
	if err := (&Config{APIKey: "k", Timeout: -time.Second}).Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
	if err := (&Config{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(home, ".config", "mindflow", "config.json")
	settings, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("config file not readable: %v", err)
	}
	if settings.Model != DefaultModel {
		t.Errorf("expected default model in file, got %q", settings.Model)
	}
	if settings.APIKey != "" {
		t.Error("api key must not be written to the config file")
	}

	// A second call leaves an existing file alone
	if err := os.WriteFile(path, []byte(`{"model":"custom"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings, _ = loadConfigFile(path)
	if settings.Model != "custom" {
		t.Errorf("existing config was overwritten")
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	if got := expandPath("~/notes"); got != filepath.Join(homeDir, "notes") {
		t.Errorf("expected expansion, got %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path should be untouched, got %q", got)
	}
}
