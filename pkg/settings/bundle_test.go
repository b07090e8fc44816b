package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quark/pkg/category"
	"github.com/arthur-debert/quark/pkg/errors"
)

func TestDecodeBundleSettings(t *testing.T) {
	section := map[string]any{
		"name":                       "Hello",
		"identifier":                 "com.example.hello",
		"icon":                       []any{"icons/32x32.png", "icons/*@2x.png"},
		"resources":                  []any{"assets"},
		"version":                    "1.2.3",
		"copyright":                  "(c) Example",
		"category":                   "public.app-category.developer-tools",
		"short_description":          "Short",
		"long_description":           "Long",
		"linux_mime_types":           []any{"text/plain"},
		"linux_exec_args":            "%f",
		"linux_use_terminal":         true,
		"deb_depends":                []any{"libc6"},
		"osx_frameworks":             []any{"SDL2"},
		"osx_minimum_system_version": "10.13",
		"osx_url_schemes":            []any{"hello"},
		"unknown_key":                "ignored",
	}

	bs, err := DecodeBundleSettings(section)
	require.NoError(t, err)

	require.NotNil(t, bs.Name)
	assert.Equal(t, "Hello", *bs.Name)
	assert.Equal(t, "com.example.hello", *bs.Identifier)
	assert.Equal(t, []string{"icons/32x32.png", "icons/*@2x.png"}, bs.Icon)
	assert.Equal(t, []string{"assets"}, bs.Resources)
	assert.Equal(t, "1.2.3", *bs.Version)
	assert.Equal(t, "(c) Example", *bs.Copyright)
	require.NotNil(t, bs.Category)
	assert.Equal(t, category.DeveloperTool, *bs.Category)
	assert.Equal(t, "Short", *bs.ShortDescription)
	assert.Equal(t, "Long", *bs.LongDescription)
	assert.Equal(t, []string{"text/plain"}, bs.LinuxMimeTypes)
	assert.Equal(t, "%f", *bs.LinuxExecArgs)
	assert.True(t, *bs.LinuxUseTerminal)
	assert.Equal(t, []string{"libc6"}, bs.DebDepends)
	assert.Equal(t, []string{"SDL2"}, bs.OSXFrameworks)
	assert.Equal(t, "10.13", *bs.OSXMinimumSystemVersion)
	assert.Equal(t, []string{"hello"}, bs.OSXURLSchemes)
}

func TestDecodeBundleSettings_Sparse(t *testing.T) {
	bs, err := DecodeBundleSettings(map[string]any{"name": "Only"})
	require.NoError(t, err)

	assert.Equal(t, "Only", *bs.Name)
	assert.Nil(t, bs.Identifier)
	assert.Nil(t, bs.Icon)
	assert.Nil(t, bs.Category)
	assert.Nil(t, bs.LinuxUseTerminal)

	empty, err := DecodeBundleSettings(nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Name)
}

func TestDecodeBundleSettings_WeakTypes(t *testing.T) {
	bs, err := DecodeBundleSettings(map[string]any{
		"linux_use_terminal": "true",
		"version":            2,
	})
	require.NoError(t, err)
	assert.True(t, *bs.LinuxUseTerminal)
	assert.Equal(t, "2", *bs.Version)
}

func TestDecodeBundleSettings_CategorySuggestion(t *testing.T) {
	_, err := DecodeBundleSettings(map[string]any{"category": "Developr Tool"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCategoryInvalid))
	assert.Equal(t, "Developr Tool", errors.GetErrorDetails(err)["input"])

	suggestion, ok := Suggestion(err)
	require.True(t, ok)
	assert.Equal(t, "Developer Tool", suggestion)
	assert.Contains(t, err.Error(), `did you mean "Developer Tool"`)
}

func TestDecodeBundleSettings_CategoryNoSuggestion(t *testing.T) {
	_, err := DecodeBundleSettings(map[string]any{"category": "qqqqqqqqqq"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCategoryInvalid))

	_, ok := Suggestion(err)
	assert.False(t, ok)
}

func TestDecodeBundleSettings_Malformed(t *testing.T) {
	_, err := DecodeBundleSettings("not a table")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = DecodeBundleSettings(map[string]any{"icon": map[string]any{"a": 1}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = DecodeBundleSettings(map[string]any{"category": 42})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
