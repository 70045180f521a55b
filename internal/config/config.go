package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete liftdesk configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig controls how the console reaches the backend
type APIConfig struct {
	// BaseURL is the root URL of the backend API (default: "http://localhost:8080").
	// Resolved from the config file or the LIFTDESK_API_BASE_URL environment
	// variable. No request timeout is applied; failures surface only on a
	// network or server response.
	BaseURL string `mapstructure:"base_url"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// PageSize is the number of workout rows shown per page in the console
	// table (default: 15, min: 5, max: 100). 0 means use the default.
	PageSize int `mapstructure:"page_size"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path. Empty means the default location under the
	// liftdesk config directory. The TUI never logs to the terminal.
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
		},
		TUI: TUIConfig{
			PageSize: 15,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			File:       "", // Empty means use default: <config dir>/liftdesk.log
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// API defaults
	viper.SetDefault("api.base_url", defaults.API.BaseURL)

	// TUI defaults
	viper.SetDefault("tui.page_size", defaults.TUI.PageSize)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "liftdesk")
	}
	// Fall back to ~/.config/liftdesk
	home, err := os.UserHomeDir()
	if err != nil {
		return ".liftdesk"
	}
	return filepath.Join(home, ".config", "liftdesk")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SessionFile returns the path to the persisted session slot
func SessionFile() string {
	return filepath.Join(ConfigDir(), "session.json")
}

// ResolveLogFile returns the log file path, falling back to the default
// location when none is configured.
func (c *LoggingConfig) ResolveLogFile() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(ConfigDir(), "liftdesk.log")
}

// ResolvePageSize returns the table page size, substituting the default when
// the configured value is zero.
func (c *TUIConfig) ResolvePageSize() int {
	if c.PageSize == 0 {
		return Default().TUI.PageSize
	}
	return c.PageSize
}
