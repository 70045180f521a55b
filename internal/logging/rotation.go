// Package logging provides structured logging for the liftdesk console.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotationConfig holds configuration for log rotation.
type RotationConfig struct {
	// MaxSizeMB is the maximum size of a log file in megabytes before rotation.
	// A value of 0 disables rotation.
	MaxSizeMB int
	// MaxBackups is the number of old log files to keep.
	// A value of 0 keeps no backups.
	MaxBackups int
}

// DefaultRotationConfig returns a RotationConfig with sensible defaults.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// RotatingWriter wraps a log file and implements automatic rotation based on
// file size. It is safe for concurrent use.
type RotatingWriter struct {
	mu sync.Mutex

	// Configuration
	filePath   string
	maxSizeB   int64 // Maximum size in bytes, 0 disables rotation
	maxBackups int

	// State
	file        *os.File
	currentSize int64
}

// NewRotatingWriter creates a new RotatingWriter that writes to the specified
// file path and rotates when the file exceeds maxSizeMB megabytes.
//
// If MaxSizeMB is 0, rotation is disabled and the writer behaves like a
// regular append-only file writer.
func NewRotatingWriter(filePath string, config RotationConfig) (*RotatingWriter, error) {
	rw := &RotatingWriter{
		filePath:   filePath,
		maxSizeB:   int64(config.MaxSizeMB) * 1024 * 1024,
		maxBackups: config.MaxBackups,
	}

	if err := rw.openFile(); err != nil {
		return nil, err
	}

	return rw, nil
}

// openFile opens the log file for writing and sets the current size.
// The caller must hold the mutex.
func (rw *RotatingWriter) openFile() error {
	// Ensure parent directory exists
	dir := filepath.Dir(rw.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(rw.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Get current file size
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	rw.file = file
	rw.currentSize = info.Size()
	return nil
}

// Write implements io.Writer. It writes data to the log file and rotates
// if the file size exceeds the maximum.
func (rw *RotatingWriter) Write(p []byte) (n int, err error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return 0, fmt.Errorf("log file is closed")
	}

	// Check if we need to rotate before writing
	if rw.maxSizeB > 0 && rw.currentSize+int64(len(p)) > rw.maxSizeB {
		if err := rw.rotate(); err != nil {
			// Rotation failed; keep appending to the current file so no
			// log data is lost.
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}

	n, err = rw.file.Write(p)
	rw.currentSize += int64(n)
	return n, err
}

// rotate performs the log rotation. The caller must hold the mutex.
func (rw *RotatingWriter) rotate() error {
	// Close current file
	if err := rw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := rw.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	rw.file = nil

	// Shift existing backups up and drop the oldest
	rw.rotateBackups()

	// Rename current log to .1
	if err := os.Rename(rw.filePath, rw.backupPath(1)); err != nil {
		// If rename fails, try to reopen the original file
		if openErr := rw.openFile(); openErr != nil {
			return fmt.Errorf("failed to rename log file and reopen: %w", openErr)
		}
		return fmt.Errorf("failed to rename log file: %w", err)
	}

	// Open a new log file
	return rw.openFile()
}

// rotateBackups shifts backup files and removes the oldest if necessary.
// Files are numbered: .1 (newest) to .N (oldest).
func (rw *RotatingWriter) rotateBackups() {
	if rw.maxBackups <= 0 {
		// No backups, just remove any existing .1 file
		os.Remove(rw.backupPath(1))
		return
	}

	// Remove the oldest backup if it exists
	os.Remove(rw.backupPath(rw.maxBackups))

	// Shift all backups up by one
	for i := rw.maxBackups - 1; i >= 1; i-- {
		oldPath := rw.backupPath(i)
		if _, err := os.Stat(oldPath); err == nil {
			os.Rename(oldPath, rw.backupPath(i+1))
		}
	}
}

// backupPath returns the path for a backup file with the given number.
func (rw *RotatingWriter) backupPath(n int) string {
	return fmt.Sprintf("%s.%d", rw.filePath, n)
}

// Sync flushes any buffered data to the underlying file.
func (rw *RotatingWriter) Sync() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}

	return rw.file.Sync()
}

// Close closes the RotatingWriter. It syncs and closes the underlying file.
func (rw *RotatingWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}

	if err := rw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}

	if err := rw.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	rw.file = nil
	return nil
}

// CurrentSize returns the current size of the log file in bytes.
func (rw *RotatingWriter) CurrentSize() int64 {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.currentSize
}

// FilePath returns the path to the log file.
func (rw *RotatingWriter) FilePath() string {
	return rw.filePath
}

// BackupFiles returns the paths of existing rotated backups, newest first.
func (rw *RotatingWriter) BackupFiles() []string {
	var backups []string
	for i := 1; i <= rw.maxBackups; i++ {
		path := rw.backupPath(i)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, path)
		}
	}
	return backups
}
