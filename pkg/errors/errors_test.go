// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, classification helpers

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unsupported_os",
			code:    errors.ErrUnsupportedOS,
			message: "native plan9 bundles not yet supported",
			wantStr: "[UNSUPPORTED_OS] native plan9 bundles not yet supported",
		},
		{
			name:    "resource_is_dir",
			code:    errors.ErrResourceIsDir,
			message: `"assets" is a directory`,
			wantStr: `[RESOURCE_IS_DIR] "assets" is a directory`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrBuildFailed, "build exited with status %d", 101)
	assert.Equal(t, "build exited with status 101", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrManifestLoad, "failed to load manifest")

		assert.Equal(t, errors.ErrManifestLoad, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[MANIFEST_LOAD] failed to load manifest: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCategoryInvalid, "invalid category").
		WithDetail("input", "Developr Tool").
		WithDetail("suggestion", "Developer Tool")

	assert.Equal(t, "Developr Tool", err.Details["input"])
	assert.Equal(t, "Developer Tool", err.Details["suggestion"])

	err = errors.New(errors.ErrFileCopy, "copy failed").WithDetails(map[string]interface{}{
		"from": "a",
		"to":   "b",
	})
	assert.Equal(t, "a", err.Details["from"])
	assert.Equal(t, "b", err.Details["to"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrUnsupportedOS, "error 1")
	err2 := errors.New(errors.ErrUnsupportedOS, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrFileNotFound, "not found"), errors.ErrFileNotFound, true},
		{"different_code", errors.New(errors.ErrFileNotFound, "not found"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrFileNotFound, false},
		{"nil_error", nil, errors.ErrFileNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrBuildFailed, "build failed").WithDetail("status", 101)

	assert.Equal(t, errors.ErrBuildFailed, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Equal(t, 101, errors.GetErrorDetails(err)["status"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIsFatal(t *testing.T) {
	assert.False(t, errors.IsFatal(nil))
	assert.False(t, errors.IsFatal(errors.New(errors.ErrResourceIsDir, "dir")))
	assert.False(t, errors.IsFatal(errors.New(errors.ErrGlobPattern, "bad")))
	assert.True(t, errors.IsFatal(errors.New(errors.ErrBuildFailed, "build")))
	assert.True(t, errors.IsFatal(errors.New(errors.ErrUnsupportedOS, "os")))
	assert.True(t, errors.IsFatal(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read manifest")
	manifestErr := errors.Wrap(fileErr, errors.ErrManifestLoad, "failed to load metadata")

	assert.True(t, errors.IsErrorCode(manifestErr, errors.ErrManifestLoad))

	var middle *errors.QuarkError
	require.True(t, stderrors.As(manifestErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileAccess, middle.Code)

	assert.True(t, stderrors.Is(manifestErr, rootCause))
}
