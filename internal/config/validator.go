package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "api.base_url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate API config
	errors = append(errors, c.validateAPI()...)

	// Validate TUI config
	errors = append(errors, c.validateTUI()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateAPI validates the APIConfig
func (c *Config) validateAPI() []ValidationError {
	var errors []ValidationError

	if c.API.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "cannot be empty",
		})
		return errors
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must be a valid URL",
		})
		return errors
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "scheme must be http or https",
		})
	}
	if u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must include a host",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// Page size validation (0 means use default, which is valid)
	const minPageSize = 5
	const maxPageSize = 100
	if c.TUI.PageSize != 0 {
		if c.TUI.PageSize < minPageSize {
			errors = append(errors, ValidationError{
				Field:   "tui.page_size",
				Value:   c.TUI.PageSize,
				Message: fmt.Sprintf("must be at least %d rows", minPageSize),
			})
		}
		if c.TUI.PageSize > maxPageSize {
			errors = append(errors, ValidationError{
				Field:   "tui.page_size",
				Value:   c.TUI.PageSize,
				Message: fmt.Sprintf("exceeds maximum of %d rows", maxPageSize),
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	// Log file path sanity when explicitly set
	if c.Logging.File != "" {
		if strings.ContainsRune(c.Logging.File, '\x00') {
			errors = append(errors, ValidationError{
				Field:   "logging.file",
				Value:   c.Logging.File,
				Message: "path contains invalid null character",
			})
		}

		const maxPathLength = 4096
		if len(c.Logging.File) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   "logging.file",
				Value:   c.Logging.File,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}
