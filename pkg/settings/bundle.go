package settings

import (
	stderrors "errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/quark/pkg/category"
	"github.com/arthur-debert/quark/pkg/errors"
)

// BundleSettings is the [package.metadata.bundle] section. Every field is
// optional; a nil field falls back to a build-system default.
type BundleSettings struct {
	// General settings
	Name             *string               `mapstructure:"name"`
	Identifier       *string               `mapstructure:"identifier"`
	Icon             []string              `mapstructure:"icon"`
	Version          *string               `mapstructure:"version"`
	Resources        []string              `mapstructure:"resources"`
	Copyright        *string               `mapstructure:"copyright"`
	Category         *category.AppCategory `mapstructure:"-"`
	ShortDescription *string               `mapstructure:"short_description"`
	LongDescription  *string               `mapstructure:"long_description"`

	// OS-specific settings
	LinuxMimeTypes          []string `mapstructure:"linux_mime_types"`
	LinuxExecArgs           *string  `mapstructure:"linux_exec_args"`
	LinuxUseTerminal        *bool    `mapstructure:"linux_use_terminal"`
	DebDepends              []string `mapstructure:"deb_depends"`
	OSXFrameworks           []string `mapstructure:"osx_frameworks"`
	OSXMinimumSystemVersion *string  `mapstructure:"osx_minimum_system_version"`
	OSXURLSchemes           []string `mapstructure:"osx_url_schemes"`
}

// DecodeBundleSettings decodes a bundle metadata section as produced by a
// TOML, YAML or JSON decoder. Unknown keys are ignored. An unrecognized
// category fails with ErrCategoryInvalid, carrying the closest category as
// the "suggestion" detail when there is one.
func DecodeBundleSettings(section any) (BundleSettings, error) {
	var bs BundleSettings
	if section == nil {
		return bs, nil
	}

	table, ok := section.(map[string]any)
	if !ok {
		return bs, errors.Newf(errors.ErrConfigParse, "bundle metadata must be a table, got %T", section)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		Result:           &bs,
	})
	if err != nil {
		return bs, errors.Wrap(err, errors.ErrInternal, "failed to create bundle settings decoder")
	}
	if err := decoder.Decode(table); err != nil {
		return bs, errors.Wrap(err, errors.ErrConfigParse, "invalid bundle metadata")
	}

	if raw, present := table["category"]; present && raw != nil {
		c, err := decodeCategory(raw)
		if err != nil {
			return bs, err
		}
		bs.Category = &c
	}
	return bs, nil
}

func decodeCategory(raw any) (category.AppCategory, error) {
	input, ok := raw.(string)
	if !ok {
		return 0, errors.Newf(errors.ErrConfigParse, "bundle category must be a string, got %T", raw)
	}

	c, err := category.Classify(input)
	if err == nil {
		return c, nil
	}

	qerr := errors.Wrap(err, errors.ErrCategoryInvalid, "invalid bundle category").
		WithDetail("input", input)
	var serr *category.SuggestionError
	if stderrors.As(err, &serr) {
		if suggestion, ok := serr.Suggestion(); ok {
			qerr = qerr.WithDetail("suggestion", suggestion.Canonical())
		}
	}
	return 0, qerr
}

// Suggestion extracts the "did you mean" category from a bundle settings
// error, if it has one.
func Suggestion(err error) (string, bool) {
	s, ok := errors.GetErrorDetails(err)["suggestion"].(string)
	return s, ok
}

func (bs BundleSettings) String() string {
	name := "<unset>"
	if bs.Name != nil {
		name = *bs.Name
	}
	return fmt.Sprintf("BundleSettings{name=%s, icons=%d, resources=%d}", name, len(bs.Icon), len(bs.Resources))
}
