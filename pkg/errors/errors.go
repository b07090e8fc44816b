package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrCategoryInvalid ErrorCode = "CATEGORY_INVALID"

	// Build errors
	ErrBuildFailed   ErrorCode = "BUILD_FAILED"
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrNoRootPackage ErrorCode = "NO_ROOT_PACKAGE"
	ErrBinaryName    ErrorCode = "BINARY_NAME"

	// Platform support errors
	ErrUnsupportedOS          ErrorCode = "UNSUPPORTED_OS"
	ErrPackageTypeUnavailable ErrorCode = "PACKAGE_TYPE_UNAVAILABLE"
	ErrPackageTypeUnknown     ErrorCode = "PACKAGE_TYPE_UNKNOWN"

	// FileSystem errors
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileCreate     ErrorCode = "FILE_CREATE"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrFileCopy       ErrorCode = "FILE_COPY"
	ErrGlobPattern    ErrorCode = "GLOB_PATTERN"
	ErrResourceIsDir  ErrorCode = "RESOURCE_IS_DIR"
	ErrSymlinkCreate  ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrBackendExecute ErrorCode = "BACKEND_EXECUTE"
)

// QuarkError represents a structured error with code and details
type QuarkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *QuarkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *QuarkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *QuarkError) Is(target error) bool {
	var targetErr *QuarkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new QuarkError with the given code and message
func New(code ErrorCode, message string) *QuarkError {
	return &QuarkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new QuarkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *QuarkError {
	return &QuarkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a QuarkError
func Wrap(err error, code ErrorCode, message string) *QuarkError {
	if err == nil {
		return nil
	}
	return &QuarkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *QuarkError {
	if err == nil {
		return nil
	}
	return &QuarkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *QuarkError) WithDetail(key string, value interface{}) *QuarkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *QuarkError) WithDetails(details map[string]interface{}) *QuarkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var quarkErr *QuarkError
	if errors.As(err, &quarkErr) {
		return quarkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a QuarkError
func GetErrorCode(err error) ErrorCode {
	var quarkErr *QuarkError
	if errors.As(err, &quarkErr) {
		return quarkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a QuarkError
func GetErrorDetails(err error) map[string]interface{} {
	var quarkErr *QuarkError
	if errors.As(err, &quarkErr) {
		return quarkErr.Details
	}
	return nil
}

// IsFatal reports whether an error must abort the whole bundling invocation.
// Filesystem errors raised while enumerating resources are the only class a
// backend may choose to skip; everything else is fatal.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrFileNotFound, ErrFileAccess, ErrGlobPattern, ErrResourceIsDir:
		return false
	}
	return err != nil
}
