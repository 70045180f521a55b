package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default API config
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "http://localhost:8080")
	}

	// Verify default TUI config
	if cfg.TUI.PageSize != 15 {
		t.Errorf("TUI.PageSize = %d, want 15", cfg.TUI.PageSize)
	}

	// Verify default logging config
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.File != "" {
		t.Errorf("Logging.File = %q, want empty (default location)", cfg.Logging.File)
	}
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging.MaxSizeMB = %d, want 10", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups = %d, want 3", cfg.Logging.MaxBackups)
	}
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/liftdesk"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	// Test without XDG_CONFIG_HOME
	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		// Should be based on home directory
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "liftdesk")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/liftdesk/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestSessionFile(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := SessionFile()
	expected := "/custom/config/liftdesk/session.json"
	if result != expected {
		t.Errorf("SessionFile() = %q, want %q", result, expected)
	}
}

func TestGet(t *testing.T) {
	// Set defaults in viper first (normally done by cmd init)
	SetDefaults()

	// Get() should return defaults when no config file exists
	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}

	// Should have default values
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("Get().API.BaseURL = %q, want %q", cfg.API.BaseURL, "http://localhost:8080")
	}
}

func TestLoggingConfig_ResolveLogFile(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		cfg := LoggingConfig{File: "/var/log/liftdesk.log"}
		if got := cfg.ResolveLogFile(); got != "/var/log/liftdesk.log" {
			t.Errorf("ResolveLogFile() = %q, want %q", got, "/var/log/liftdesk.log")
		}
	})

	t.Run("empty falls back to config dir", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		cfg := LoggingConfig{File: ""}
		expected := "/custom/config/liftdesk/liftdesk.log"
		if got := cfg.ResolveLogFile(); got != expected {
			t.Errorf("ResolveLogFile() = %q, want %q", got, expected)
		}
	})
}

func TestTUIConfig_ResolvePageSize(t *testing.T) {
	tests := []struct {
		size     int
		expected int
	}{
		{0, 15},
		{5, 5},
		{30, 30},
	}

	for _, tt := range tests {
		cfg := TUIConfig{PageSize: tt.size}
		result := cfg.ResolvePageSize()
		if result != tt.expected {
			t.Errorf("ResolvePageSize() with %d = %d, want %d", tt.size, result, tt.expected)
		}
	}
}
