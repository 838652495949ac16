package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 2 * time.Minute
	DefaultFilter  = "all"
)

// Config holds the unified application configuration
type Config struct {
	APIKey        string
	Model         string
	Timeout       time.Duration
	DefaultFilter string
	ExportDir     string
	LogDir        string
	Debug         bool
}

// Settings represents the config file structure
type Settings struct {
	APIKey        string `json:"api_key,omitempty"`
	Model         string `json:"model,omitempty"`
	Timeout       string `json:"timeout,omitempty"`
	DefaultFilter string `json:"default_filter,omitempty"`
	ExportDir     string `json:"export_dir,omitempty"`
	LogDir        string `json:"log_dir,omitempty"`
	Debug         bool   `json:"debug,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	APIKey        string
	Model         string
	Timeout       time.Duration
	DefaultFilter string
	ExportDir     string
	Debug         bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Model:         DefaultModel,
		Timeout:       DefaultTimeout,
		DefaultFilter: DefaultFilter,
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		cfg.LogDir = filepath.Dir(configPath)
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if err := cfg.applySettings(fileConfig); err != nil {
				return nil, fmt.Errorf("config file %s: %w", configPath, err)
			}
		}
	}

	// Priority 2: Environment variables override config file
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Priority 1: CLI flags override everything
	if flags.APIKey != "" {
		cfg.APIKey = flags.APIKey
	}
	if flags.Model != "" {
		cfg.Model = flags.Model
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	if flags.DefaultFilter != "" {
		cfg.DefaultFilter = flags.DefaultFilter
	}
	if flags.ExportDir != "" {
		cfg.ExportDir = expandPath(flags.ExportDir)
	}
	if flags.Debug {
		cfg.Debug = true
	}

	// Default export directory if nothing configured
	if cfg.ExportDir == "" {
		defaultDir, err := GetDefaultExportDir()
		if err != nil {
			return nil, err
		}
		cfg.ExportDir = defaultDir
	}

	return cfg, nil
}

func (c *Config) applySettings(s *Settings) error {
	if s.APIKey != "" {
		c.APIKey = s.APIKey
	}
	if s.Model != "" {
		c.Model = s.Model
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
		}
		c.Timeout = d
	}
	if s.DefaultFilter != "" {
		c.DefaultFilter = s.DefaultFilter
	}
	if s.ExportDir != "" {
		c.ExportDir = expandPath(s.ExportDir)
	}
	if s.LogDir != "" {
		c.LogDir = expandPath(s.LogDir)
	}
	if s.Debug {
		c.Debug = true
	}
	return nil
}

func (c *Config) applyEnv() error {
	// GEMINI_API_KEY wins over the generic API_KEY
	if key := os.Getenv("API_KEY"); key != "" {
		c.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if v := os.Getenv("MINDFLOW_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("MINDFLOW_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MINDFLOW_TIMEOUT: invalid duration %q: %w", v, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("MINDFLOW_DEFAULT_FILTER"); v != "" {
		c.DefaultFilter = v
	}
	if v := os.Getenv("MINDFLOW_EXPORT_DIR"); v != "" {
		c.ExportDir = expandPath(v)
	}
	if v := os.Getenv("MINDFLOW_LOG_DIR"); v != "" {
		c.LogDir = expandPath(v)
	}
	return nil
}

// Validate reports configuration problems that make a model call impossible
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("no API key configured: set GEMINI_API_KEY or pass --api-key")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// GetDefaultExportDir returns the default export directory path
func GetDefaultExportDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "mindflow"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "mindflow", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist.
// The API key is never written to disk.
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultExportDir()
	if err != nil {
		return err
	}

	settings := Settings{
		Model:         DefaultModel,
		Timeout:       DefaultTimeout.String(),
		DefaultFilter: DefaultFilter,
		ExportDir:     defaultDir,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
