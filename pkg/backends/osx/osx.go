// Package osx stages a macOS application bundle:
//
//	<out>/bundle/osx/<Name>.app/Contents/
//	    Info.plist
//	    MacOS/<binary>
//	    Resources/<Name>.icns
//	    Resources/<resources...>
//	    Frameworks/<Framework>.framework
package osx

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

// BundlePath is where the .app for s is written
func BundlePath(s *settings.Settings) string {
	return filepath.Join(s.BundleDirectory(), "osx", s.BundleName()+".app")
}

// Bundle writes the .app bundle for s and returns its path
func Bundle(ctx context.Context, s *settings.Settings) ([]string, error) {
	logger := logging.GetLogger("backends.osx")
	fsys := s.FS()

	bundleDir := BundlePath(s)
	contents := filepath.Join(bundleDir, "Contents")
	resourcesDir := filepath.Join(contents, "Resources")

	logger.Info().Str("bundle", bundleDir).Msg("Creating app bundle")
	if err := backends.ResetDir(fsys, bundleDir); err != nil {
		return nil, err
	}

	iconFile, err := writeIcon(s, resourcesDir)
	if err != nil {
		return nil, err
	}

	if err := writeInfoPlist(s, filepath.Join(contents, "Info.plist"), iconFile); err != nil {
		return nil, err
	}

	if err := copyFrameworks(s, filepath.Join(contents, "Frameworks")); err != nil {
		return nil, err
	}

	if _, err := backends.CopyResources(s, resourcesDir); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := backends.CopyBinary(s, filepath.Join(contents, "MacOS", s.BinaryName())); err != nil {
		return nil, err
	}

	return []string{bundleDir}, nil
}
