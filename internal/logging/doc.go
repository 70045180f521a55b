// Package logging provides structured logging for the liftdesk console.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support for debugging and post-hoc analysis. The
// console runs full-screen in the terminal, so logs always go to a file
// (or stderr for non-interactive commands), never to the screen.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (request ID, component, operation)
//   - Log rotation with configurable size limits
//   - Log reading and filtering utilities
//   - Export to JSON, text, or CSV formats
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. The
// [RotatingWriter] type uses a mutex to protect file operations during
// rotation. Child loggers created via With* methods share the underlying
// writer safely.
//
// # Basic Usage
//
// Create a logger writing to a file:
//
//	logger, err := logging.NewLogger("/path/to/liftdesk.log", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	// Log messages at various levels
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("operation completed", "duration_ms", 150)
//	logger.Warn("potential issue", "threshold", 100)
//	logger.Error("operation failed", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	// Add component context
//	apiLogger := logger.WithComponent("api")
//
//	// Add request context
//	reqLogger := apiLogger.WithRequest("9f6c...")
//
//	// Add operation context
//	opLogger := reqLogger.WithOp("fetch")
//
//	// All logs from opLogger will include component, request_id, and op
//	opLogger.Info("workouts fetched", "count", 12)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"workouts fetched","component":"api","request_id":"9f6c...","op":"fetch","count":12}
//
// # Log Rotation
//
// For long-running consoles, use log rotation to prevent unbounded growth:
//
//	config := logging.RotationConfig{
//	    MaxSizeMB:  10, // Rotate when file exceeds 10MB
//	    MaxBackups: 3,  // Keep 3 backup files
//	}
//
//	logger, err := logging.NewLoggerWithRotation("/path/to/liftdesk.log", "INFO", config)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
// Rotated files are named: liftdesk.log.1, liftdesk.log.2, etc., where .1
// is the most recent backup.
//
// # Testing
//
// For testing, use [NopLogger] to discard all log output:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NopLogger()
//	    // Use logger in tests without creating files
//	}
//
// # Log Reading and Filtering
//
// Read and analyze logs after the fact:
//
//	// Load all entries from the log file and its rotated backups
//	entries, err := logging.ReadLogs("/path/to/liftdesk.log")
//	if err != nil {
//	    return err
//	}
//
//	// Filter entries by various criteria
//	filter := logging.LogFilter{
//	    Level:     "WARN",       // Minimum level
//	    Component: "api",        // Specific component
//	    StartTime: time.Now().Add(-1 * time.Hour), // Last hour
//	}
//	filtered := logging.FilterLogs(entries, filter)
//
//	// Export to various formats
//	logging.ExportLogEntries(filtered, "errors.json", "json")
//	logging.ExportLogEntries(filtered, "errors.txt", "text")
//	logging.ExportLogEntries(filtered, "errors.csv", "csv")
//
// # Log Levels
//
// The package defines four log levels:
//
//   - [LevelDebug]: Detailed information for debugging
//   - [LevelInfo]: General operational information (default)
//   - [LevelWarn]: Warning conditions that may need attention
//   - [LevelError]: Error conditions that affect functionality
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
//
// # Configuration
//
// The logging system is typically configured via liftdesk's config file:
//
//	logging:
//	  enabled: true
//	  level: info
//	  max_size_mb: 10
//	  max_backups: 3
package logging
