package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got %d errors: %v", len(errs), errs)
	}
}

func TestConfig_Validate_API(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		hasError bool
	}{
		{"default local", "http://localhost:8080", false},
		{"https remote", "https://admin.fitcorp.example", false},
		{"with port and path", "https://api.example.com:8443/v1", false},
		{"empty", "", true},
		{"missing scheme", "localhost:8080", true},
		{"bad scheme", "ftp://example.com", true},
		{"scheme only", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.API.BaseURL = tt.baseURL
			errs := cfg.Validate()

			hasError := false
			for _, err := range errs {
				if err.Field == "api.base_url" {
					hasError = true
					break
				}
			}

			if hasError != tt.hasError {
				t.Errorf("Validate() for base_url=%q: hasError=%v, want %v", tt.baseURL, hasError, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_TUI(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		hasError bool
	}{
		{"zero means default", 0, false},
		{"minimum", 5, false},
		{"maximum", 100, false},
		{"too small", 3, true},
		{"too large", 500, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.TUI.PageSize = tt.pageSize
			errs := cfg.Validate()

			hasError := false
			for _, err := range errs {
				if err.Field == "tui.page_size" {
					hasError = true
					break
				}
			}

			if hasError != tt.hasError {
				t.Errorf("Validate() for page_size=%d: hasError=%v, want %v", tt.pageSize, hasError, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		field    string
		hasError bool
	}{
		{
			name:     "valid debug level",
			mutate:   func(c *Config) { c.Logging.Level = "debug" },
			field:    "logging.level",
			hasError: false,
		},
		{
			name:     "empty level is valid",
			mutate:   func(c *Config) { c.Logging.Level = "" },
			field:    "logging.level",
			hasError: false,
		},
		{
			name:     "invalid level",
			mutate:   func(c *Config) { c.Logging.Level = "verbose" },
			field:    "logging.level",
			hasError: true,
		},
		{
			name:     "case sensitive level",
			mutate:   func(c *Config) { c.Logging.Level = "INFO" },
			field:    "logging.level",
			hasError: true,
		},
		{
			name:     "zero max size",
			mutate:   func(c *Config) { c.Logging.MaxSizeMB = 0 },
			field:    "logging.max_size_mb",
			hasError: true,
		},
		{
			name:     "oversized max size",
			mutate:   func(c *Config) { c.Logging.MaxSizeMB = 5000 },
			field:    "logging.max_size_mb",
			hasError: true,
		},
		{
			name:     "negative backups",
			mutate:   func(c *Config) { c.Logging.MaxBackups = -1 },
			field:    "logging.max_backups",
			hasError: true,
		},
		{
			name:     "null byte in file path",
			mutate:   func(c *Config) { c.Logging.File = "/tmp/bad\x00path.log" },
			field:    "logging.file",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()

			hasError := false
			for _, err := range errs {
				if err.Field == tt.field {
					hasError = true
					break
				}
			}

			if hasError != tt.hasError {
				t.Errorf("Validate() %s: hasError=%v, want %v (errs: %v)", tt.name, hasError, tt.hasError, errs)
			}
		})
	}
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()

	expected := []string{"debug", "info", "warn", "error"}
	if len(levels) != len(expected) {
		t.Fatalf("ValidLogLevels() length = %d, want %d", len(levels), len(expected))
	}

	for i, level := range expected {
		if levels[i] != level {
			t.Errorf("ValidLogLevels()[%d] = %q, want %q", i, levels[i], level)
		}
	}
}
