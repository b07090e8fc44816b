package settings

import (
	"fmt"

	"github.com/arthur-debert/quark/pkg/errors"
)

// PackageType is an OS-native package format
type PackageType int

const (
	Deb PackageType = iota
	WindowsMsi
	OsxBundle
)

var allPackageTypes = []PackageType{Deb, WindowsMsi, OsxBundle}

// AllPackageTypes returns every package type
func AllPackageTypes() []PackageType {
	return append([]PackageType(nil), allPackageTypes...)
}

// ShortName returns the short token used on the command line and in config
func (p PackageType) ShortName() string {
	switch p {
	case Deb:
		return "deb"
	case WindowsMsi:
		return "msi"
	case OsxBundle:
		return "osx"
	}
	return ""
}

func (p PackageType) String() string {
	if name := p.ShortName(); name != "" {
		return name
	}
	return fmt.Sprintf("PackageType(%d)", int(p))
}

// PackageTypeFromShortName is the inverse of ShortName
func PackageTypeFromShortName(name string) (PackageType, bool) {
	for _, p := range allPackageTypes {
		if p.ShortName() == name {
			return p, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler
func (p PackageType) MarshalText() ([]byte, error) {
	if p.ShortName() == "" {
		return nil, errors.Newf(errors.ErrPackageTypeUnknown, "unknown package type %d", int(p))
	}
	return []byte(p.ShortName()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *PackageType) UnmarshalText(text []byte) error {
	parsed, ok := PackageTypeFromShortName(string(text))
	if !ok {
		return errors.Newf(errors.ErrPackageTypeUnknown, "unknown package type %q (expected deb, msi or osx)", string(text)).
			WithDetail("input", string(text))
	}
	*p = parsed
	return nil
}

// NativePackageTypes maps an operating system name to its native package
// types. Both Go ("darwin") and Rust ("macos") spellings are accepted.
func NativePackageTypes(goos string) ([]PackageType, error) {
	switch goos {
	case "darwin", "macos":
		return []PackageType{OsxBundle}, nil
	case "linux":
		return []PackageType{Deb}, nil
	case "windows":
		return []PackageType{WindowsMsi}, nil
	}
	return nil, errors.Newf(errors.ErrUnsupportedOS, "Native %s bundles not yet supported.", goos).
		WithDetail("os", goos)
}
