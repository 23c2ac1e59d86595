package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrNotInstalled ErrorCode = "NOT_INSTALLED"

	// Ledger errors
	ErrCorruptLedger ErrorCode = "CORRUPT_LEDGER"

	// External collaborator errors
	ErrVCS            ErrorCode = "VCS_FAILED"
	ErrSnapshotFailed ErrorCode = "SNAPSHOT_FAILED"
	ErrUpdateFailed   ErrorCode = "UPDATE_FAILED"
	ErrResetFailed    ErrorCode = "RESET_FAILED"
	ErrPartialUpdate  ErrorCode = "PARTIAL_UPDATE"

	// Symlink errors
	ErrLinkConflict     ErrorCode = "LINK_CONFLICT"
	ErrSourceMissing    ErrorCode = "SOURCE_MISSING"
	ErrReconcilePartial ErrorCode = "RECONCILE_PARTIAL"
)

// Detail keys shared by collaborators that wrap external tools.
const (
	DetailExitCode = "exit_code"
	DetailOutput   = "output"
	DetailCommand  = "command"
	DetailPath     = "path"
)

// DotgenError represents a structured error with code and details
type DotgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotgenError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Wrapped != nil {
		fmt.Fprintf(&b, ": %v", e.Wrapped)
	}
	if out, ok := e.Details[DetailOutput].(string); ok && strings.TrimSpace(out) != "" {
		fmt.Fprintf(&b, "\n%s", strings.TrimSpace(out))
	}
	return b.String()
}

// Unwrap implements the errors.Unwrap interface
func (e *DotgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotgenError) Is(target error) bool {
	var targetErr *DotgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotgenError with the given code and message
func New(code ErrorCode, message string) *DotgenError {
	return &DotgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotgenError {
	return &DotgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotgenError
func Wrap(err error, code ErrorCode, message string) *DotgenError {
	if err == nil {
		return nil
	}
	return &DotgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotgenError {
	if err == nil {
		return nil
	}
	return &DotgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotgenError) WithDetail(key string, value interface{}) *DotgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DotgenError) WithDetails(details map[string]interface{}) *DotgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// DetailKeys returns the detail keys in sorted order, for stable rendering.
func (e *DotgenError) DetailKeys() []string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotgenErr *DotgenError
	if errors.As(err, &dotgenErr) {
		return dotgenErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotgenError
func GetErrorCode(err error) ErrorCode {
	var dotgenErr *DotgenError
	if errors.As(err, &dotgenErr) {
		return dotgenErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotgenError
func GetErrorDetails(err error) map[string]interface{} {
	var dotgenErr *DotgenError
	if errors.As(err, &dotgenErr) {
		return dotgenErr.Details
	}
	return nil
}
