// Package logging provides structured logging for the liftdesk console.
// It wraps Go's log/slog package to provide JSON-formatted logs with
// context propagation support for debugging and post-hoc analysis.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger provides structured logging with context propagation.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	closer io.Closer   // Underlying file or rotating writer; nil for stderr/discard
	mu     sync.Mutex  // Protects closer operations
	attrs  []slog.Attr // Persistent attributes (component, request, op)
}

// NewLogger creates a new Logger that writes JSON-formatted logs to the
// given file path, creating parent directories as needed.
//
// The level parameter controls which messages are logged:
//   - DEBUG: All messages
//   - INFO: Info, Warn, and Error messages
//   - WARN: Warn and Error messages
//   - ERROR: Only Error messages
//
// If filePath is empty, logs will be written to stderr. The console TUI
// must always be given a file path; stderr output would corrupt the screen.
func NewLogger(filePath string, level string) (*Logger, error) {
	// A zero MaxSizeMB disables rotation, leaving plain append behavior.
	return NewLoggerWithRotation(filePath, level, RotationConfig{})
}

// NewLoggerWithRotation creates a new Logger like NewLogger, but writes
// through a RotatingWriter so the log file is rotated once it exceeds the
// configured size.
func NewLoggerWithRotation(filePath string, level string, config RotationConfig) (*Logger, error) {
	if filePath == "" {
		return newLogger(os.Stderr, nil, level), nil
	}

	rw, err := NewRotatingWriter(filePath, config)
	if err != nil {
		return nil, err
	}

	return newLogger(rw, rw, level), nil
}

func newLogger(writer io.Writer, closer io.Closer, level string) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	handler := slog.NewJSONHandler(writer, opts)

	return &Logger{
		logger: slog.New(handler),
		closer: closer,
		attrs:  make([]slog.Attr, 0),
	}
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a new Logger with the component name added to all
// log entries. Components include "api", "session", "console", and "tui".
// This creates a child logger that inherits all existing attributes.
func (l *Logger) WithComponent(component string) *Logger {
	return l.withAttr(slog.String("component", component))
}

// WithRequest returns a new Logger with the request ID added to all log
// entries. The same ID is sent to the server as the X-Request-ID header,
// so client and server logs can be correlated.
// This creates a child logger that inherits all existing attributes.
func (l *Logger) WithRequest(requestID string) *Logger {
	return l.withAttr(slog.String("request_id", requestID))
}

// WithOp returns a new Logger with the operation name added to all log
// entries. Operations are "login", "fetch", "update", and "delete".
// This creates a child logger that inherits all existing attributes.
func (l *Logger) WithOp(op string) *Logger {
	return l.withAttr(slog.String("op", op))
}

// With returns a new Logger with arbitrary key-value attributes.
// Keys and values are provided as alternating arguments.
// This creates a child logger that inherits all existing attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	newAttrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	newAttrs = append(newAttrs, l.attrs...)

	// Convert args to slog.Attr
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		newAttrs = append(newAttrs, slog.Any(key, args[i+1]))
	}

	return &Logger{
		logger: l.logger,
		closer: l.closer,
		attrs:  newAttrs,
	}
}

// withAttr creates a new Logger with an additional attribute.
func (l *Logger) withAttr(attr slog.Attr) *Logger {
	newAttrs := make([]slog.Attr, len(l.attrs)+1)
	copy(newAttrs, l.attrs)
	newAttrs[len(l.attrs)] = attr

	return &Logger{
		logger: l.logger,
		closer: l.closer,
		attrs:  newAttrs,
	}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
// Keys and values are provided as alternating arguments.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
// Keys and values are provided as alternating arguments.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
// Keys and values are provided as alternating arguments.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
// Keys and values are provided as alternating arguments.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

// log is the internal logging method that combines persistent attributes
// with per-call arguments.
func (l *Logger) log(level slog.Level, msg string, args ...any) {
	// Combine persistent attrs with per-call args
	allArgs := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		allArgs = append(allArgs, attr.Key, attr.Value.Any())
	}
	allArgs = append(allArgs, args...)

	l.logger.Log(context.Background(), level, msg, allArgs...)
}

// Close flushes and closes the underlying log file.
// If the logger writes to stderr or discards output, this method is a no-op.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer != nil {
		if err := l.closer.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.closer = nil
	}
	return nil
}

// NopLogger returns a Logger that discards all log output.
// Useful for testing or when logging is disabled.
func NopLogger() *Logger {
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		attrs:  make([]slog.Attr, 0),
	}
}

// ParseLevel converts a string level to the corresponding constant.
// Returns LevelInfo if the level string is not recognized.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return LevelDebug
	case LevelInfo:
		return LevelInfo
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
