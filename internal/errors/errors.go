// Package errors provides centralized error definitions and error handling
// utilities for the liftdesk codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - AuthError: login rejected by the server; carries the server's own
//     message, which is shown to the operator verbatim
//   - RequestError: an authenticated API request (fetch/update/delete)
//     failed; carries the operation, status code, and optional server message
//   - SessionError: errors reading or writing the persisted session slot
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewAuthError("Invalid credentials").WithEmail("a@b.com")
//
//	// Request error with server context
//	err := errors.NewRequestError(errors.OpFetch, cause).WithStatus(500)
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrMissingCredential) { ... }
//
//	// Check for error types
//	var authErr *errors.AuthError
//	if errors.As(err, &authErr) { ... }
//
//	// Use classification helpers
//	if errors.IsRetryable(err) { ... }
//	msg := errors.UserMessage(err)
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to operators (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Credential-related sentinel errors
var (
	// ErrMissingCredential indicates that no bearer token is present in the
	// session slot. Operations fail with this before any network attempt.
	ErrMissingCredential = New("not logged in")
	// ErrSessionCorrupted indicates that the persisted session data could
	// not be decoded.
	ErrSessionCorrupted = New("session data corrupted")
)

// Network-related sentinel errors
var (
	// ErrUnreachable indicates that no response was received from the
	// server at all. This is a distinct failure class from a server that
	// responded with an error status.
	ErrUnreachable = New("unable to connect")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// Op identifies which API operation a RequestError came from. The operation
// selects the fixed fallback message shown when the server supplied none.
type Op string

const (
	// OpLogin is the credential exchange against the login endpoint.
	OpLogin Op = "login"
	// OpFetch is the workout list fetch.
	OpFetch Op = "fetch"
	// OpUpdate is the workout update (PUT).
	OpUpdate Op = "update"
	// OpDelete is the workout delete.
	OpDelete Op = "delete"
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// LiftdeskError is the base interface for all liftdesk errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type LiftdeskError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// AuthError represents a login attempt rejected by the server. The message is
// the server's own error text and is surfaced to the operator verbatim; when
// the server sent no usable body, a fixed fallback is used instead.
//
// Example:
//
//	err := errors.NewAuthError("Invalid credentials").WithEmail("a@b.com")
//	fmt.Println(err) // "auth error [email=a@b.com]: Invalid credentials"
type AuthError struct {
	baseError
	Email string
}

// NewAuthError creates a new AuthError carrying the server-provided message.
// An empty message falls back to "Login failed".
func NewAuthError(serverMessage string) *AuthError {
	if serverMessage == "" {
		serverMessage = "Login failed"
	}
	return &AuthError{
		baseError: baseError{
			message:    serverMessage,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithEmail adds the attempted login email to the error context.
func (e *AuthError) WithEmail(email string) *AuthError {
	e.Email = email
	return e
}

// WithCause adds a cause to the error.
func (e *AuthError) WithCause(cause error) *AuthError {
	e.cause = cause
	return e
}

// UserMessage returns the text to display to the operator: the server's
// message, verbatim.
func (e *AuthError) UserMessage() string {
	return e.message
}

// Error returns the formatted error message.
func (e *AuthError) Error() string {
	prefix := "auth error"
	if e.Email != "" {
		prefix = fmt.Sprintf("auth error [email=%s]", e.Email)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *AuthError) Is(target error) bool {
	if _, ok := target.(*AuthError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// RequestError represents a failed authenticated API request. It records the
// operation, the HTTP status (when a response arrived), and any server-
// supplied error message. The user-visible text prefers the server message
// and otherwise falls back to a fixed per-operation string.
//
// Example:
//
//	err := errors.NewRequestError(errors.OpDelete, nil).WithStatus(500)
//	fmt.Println(errors.UserMessage(err)) // "Failed to delete workout"
type RequestError struct {
	baseError
	Op            Op
	StatusCode    int
	ServerMessage string
}

// NewRequestError creates a new RequestError for the given operation.
// A cause of ErrUnreachable (or wrapping it) marks the error retryable.
func NewRequestError(op Op, cause error) *RequestError {
	return &RequestError{
		baseError: baseError{
			message:    fmt.Sprintf("%s request failed", op),
			cause:      cause,
			severity:   SeverityError,
			retryable:  cause != nil && errors.Is(cause, ErrUnreachable),
			userFacing: true,
		},
		Op: op,
	}
}

// WithStatus adds the HTTP status code to the error context.
func (e *RequestError) WithStatus(code int) *RequestError {
	e.StatusCode = code
	return e
}

// WithServerMessage adds the server's error message to the error context.
func (e *RequestError) WithServerMessage(msg string) *RequestError {
	e.ServerMessage = msg
	return e
}

// WithSeverity sets the error severity.
func (e *RequestError) WithSeverity(s Severity) *RequestError {
	e.severity = s
	return e
}

// UserMessage returns the text to display to the operator: the server's
// message when it sent one, the connect failure text when no response
// arrived, and otherwise a fixed per-operation fallback.
func (e *RequestError) UserMessage() string {
	if e.ServerMessage != "" {
		return e.ServerMessage
	}
	if e.cause != nil && errors.Is(e.cause, ErrUnreachable) {
		return "Unable to connect to the server"
	}
	switch e.Op {
	case OpLogin:
		return "Login failed"
	case OpFetch:
		return "Failed to fetch workouts"
	case OpUpdate:
		return "Failed to update workout"
	case OpDelete:
		return "Failed to delete workout"
	default:
		return "Request failed"
	}
}

// Error returns the formatted error message.
func (e *RequestError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "request error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("request error [%s]", strings.Join(parts, ", "))
	}

	msg := e.message
	if e.ServerMessage != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.ServerMessage)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Is checks if this error matches the target.
func (e *RequestError) Is(target error) bool {
	if _, ok := target.(*RequestError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// SessionError represents errors reading or writing the persisted session
// slot on disk.
//
// Example:
//
//	err := errors.NewSessionError("failed to decode session", errors.ErrSessionCorrupted)
//	err = err.WithPath("/home/op/.config/liftdesk/session.json")
type SessionError struct {
	baseError
	Path string
}

// NewSessionError creates a new SessionError.
func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithPath adds the session file path to the error context.
func (e *SessionError) WithPath(path string) *SessionError {
	e.Path = path
	return e
}

// WithSeverity sets the error severity.
func (e *SessionError) WithSeverity(s Severity) *SessionError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *SessionError) Error() string {
	prefix := "session error"
	if e.Path != "" {
		prefix = fmt.Sprintf("session error [path=%s]", e.Path)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *SessionError) Is(target error) bool {
	if _, ok := target.(*SessionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("workout", "42")
//	fmt.Println(err) // "workout '42' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state. For workout drafts the
// message carries the exact rule text shown to the operator.
//
// Example:
//
//	err := errors.NewValidationError("Duration must be a positive number")
//	err = err.WithField("duration").WithValue(-5)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// UserMessage returns the bare rule text without the diagnostic prefix.
func (e *ValidationError) UserMessage() string {
	return e.message
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. This checks for:
//   - Errors implementing LiftdeskError with IsRetryable() returning true
//   - Errors wrapping ErrUnreachable
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    hint = "press r to retry"
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements LiftdeskError
	var liftdeskErr LiftdeskError
	if As(err, &liftdeskErr) {
		return liftdeskErr.IsRetryable()
	}

	// Check for known retryable sentinel errors
	if Is(err, ErrUnreachable) {
		return true
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end
// users. This checks for:
//   - Errors implementing LiftdeskError with IsUserFacing() returning true
//   - Semantic errors (NotFoundError, ValidationError)
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	// Check if error implements LiftdeskError
	var liftdeskErr LiftdeskError
	if As(err, &liftdeskErr) {
		return liftdeskErr.IsUserFacing()
	}

	// Semantic errors are always user-facing
	var notFound *NotFoundError
	var validation *ValidationError

	if As(err, &notFound) || As(err, &validation) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement LiftdeskError.
//
// Example:
//
//	switch errors.GetSeverity(err) {
//	case errors.SeverityWarning:
//	    render(styles.WarningMsg, errors.UserMessage(err))
//	case errors.SeverityError:
//	    render(styles.ErrorMsg, errors.UserMessage(err))
//	}
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	// Check if error implements LiftdeskError
	var liftdeskErr LiftdeskError
	if As(err, &liftdeskErr) {
		return liftdeskErr.Severity()
	}

	// Default to Error severity for unknown errors
	return SeverityError
}

// UserMessage converts any error into the single line shown to the operator.
// Typed errors contribute their server-provided or fixed fallback text;
// sentinels map to fixed phrases; anything else that isn't explicitly
// user-facing collapses to a generic message so internal detail never
// reaches the screen.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	if As(err, &validation) {
		return validation.UserMessage()
	}

	var auth *AuthError
	if As(err, &auth) {
		return auth.UserMessage()
	}

	var request *RequestError
	if As(err, &request) {
		return request.UserMessage()
	}

	if Is(err, ErrMissingCredential) {
		return "Not logged in"
	}
	if Is(err, ErrUnreachable) {
		return "Unable to connect to the server"
	}

	if IsUserFacing(err) {
		return err.Error()
	}
	return "Something went wrong"
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to persist session")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to update workout %s", id)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
