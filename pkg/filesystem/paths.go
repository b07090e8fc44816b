package filesystem

import (
	"path/filepath"
	"strings"
)

const (
	// RootSegment replaces a leading root marker in ResourceRelPath
	RootSegment = "_root_"
	// UpSegment replaces each ".." component in ResourceRelPath
	UpSegment = "_up_"
)

// IsRetina reports whether path names a high-density icon: its file stem
// (the name without the final extension) ends with "@2x".
func IsRetina(path string) bool {
	base := filepath.Base(path)
	stem := base
	if ext := filepath.Ext(base); ext != base {
		stem = strings.TrimSuffix(base, ext)
	}
	return strings.HasSuffix(stem, "@2x")
}

// ResourceRelPath maps a resource path (absolute or relative) to the
// relative path under a bundle's resource directory where it is stored.
//
// Volume names are dropped, a leading root becomes "_root_", "." components
// are dropped and ".." components become "_up_". The result never contains
// a ".." component and is never absolute.
func ResourceRelPath(path string) string {
	rest := filepath.ToSlash(path[len(filepath.VolumeName(path)):])

	var segments []string
	if strings.HasPrefix(rest, "/") {
		segments = append(segments, RootSegment)
	}
	for _, part := range strings.Split(rest, "/") {
		switch part {
		case "", ".":
		case "..":
			segments = append(segments, UpSegment)
		default:
			segments = append(segments, part)
		}
	}
	return filepath.Join(segments...)
}
