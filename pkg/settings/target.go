package settings

import (
	"strings"

	"github.com/arthur-debert/quark/pkg/buildsys"
)

// Target is a cross-compilation target
type Target struct {
	// Triple is the target as given, e.g. "aarch64-apple-darwin" or
	// "linux/arm64"
	Triple string
	// OS is the GOOS of the target. For a triple whose OS is not
	// recognized it holds the raw OS component, e.g. "none" or "solaris".
	OS     string
	Arch   string
}

// ParseTarget derives OS and architecture from a target string
func ParseTarget(triple string) Target {
	goos, goarch := buildsys.ParseTarget(triple)
	if goos == "" {
		goos = rawTargetOS(triple)
	}
	return Target{Triple: triple, OS: goos, Arch: goarch}
}

// rawTargetOS picks the OS component of an unrecognized target:
// the third field of an arch-vendor-os[-env] triple, else the whole target.
func rawTargetOS(triple string) string {
	if osPart, _, ok := strings.Cut(triple, "/"); ok && osPart != "" {
		return osPart
	}
	parts := strings.Split(triple, "-")
	if len(parts) >= 3 && parts[2] != "" {
		return parts[2]
	}
	return triple
}
