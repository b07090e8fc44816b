package osx

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/settings"
)

// FrameworkSearchDirs lists where named frameworks are looked up, in order
var FrameworkSearchDirs = func() []string {
	dirs := []string{"/Library/Frameworks", "/Network/Library/Frameworks"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(home, "Library", "Frameworks")}, dirs...)
	}
	return dirs
}

// ResolveFramework finds a framework by name ("SDL2") or by path to a
// .framework directory.
func ResolveFramework(fsys filesystem.FS, framework string) (string, error) {
	if strings.HasSuffix(framework, ".framework") {
		info, err := fsys.Stat(framework)
		if err != nil || !info.IsDir() {
			return "", errors.Newf(errors.ErrFileNotFound, "%s does not exist", framework).
				WithDetail("framework", framework)
		}
		return framework, nil
	}

	name := framework + ".framework"
	for _, dir := range FrameworkSearchDirs() {
		candidate := filepath.Join(dir, name)
		if info, err := fsys.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrFileNotFound, "could not locate %s", name).
		WithDetail("framework", framework).
		WithDetail("searched", FrameworkSearchDirs())
}

func copyFrameworks(s *settings.Settings, dir string) error {
	frameworks := s.OSXFrameworks()
	if len(frameworks) == 0 {
		return nil
	}
	if err := s.FS().MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	for _, framework := range frameworks {
		src, err := ResolveFramework(s.FS(), framework)
		if err != nil {
			return err
		}
		if err := filesystem.CopyDir(s.FS(), src, filepath.Join(dir, filepath.Base(src))); err != nil {
			return err
		}
	}
	return nil
}
