// Package deb stages the tree dpkg-deb --build consumes:
//
//	<out>/bundle/deb/<bin>_<version>_<arch>/
//	    DEBIAN/control
//	    DEBIAN/md5sums
//	    usr/bin/<bin>
//	    usr/lib/<bin>/<resources...>
//	    usr/share/applications/<bin>.desktop
//	    usr/share/icons/hicolor/<W>x<H>[@2x]/apps/<bin>.png
package deb

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

// PackageName is the Debian package base name, <bin>_<version>_<arch>
func PackageName(s *settings.Settings) string {
	return fmt.Sprintf("%s_%s_%s", s.BinaryName(), s.VersionString(), Arch(s.BinaryArch()))
}

// Bundle stages the package tree for s and returns its directory
func Bundle(ctx context.Context, s *settings.Settings) ([]string, error) {
	logger := logging.GetLogger("backends.deb")
	fsys := s.FS()

	pkgDir := filepath.Join(s.BundleDirectory(), "deb", PackageName(s))
	logger.Info().Str("package", pkgDir).Msg("Staging Debian package")
	if err := backends.ResetDir(fsys, pkgDir); err != nil {
		return nil, err
	}

	if err := backends.CopyBinary(s, filepath.Join(pkgDir, "usr", "bin", s.BinaryName())); err != nil {
		return nil, err
	}
	if _, err := backends.CopyResources(s, filepath.Join(pkgDir, "usr", "lib", s.BinaryName())); err != nil {
		return nil, err
	}
	if _, err := writeIcons(s, pkgDir); err != nil {
		return nil, err
	}
	if err := writeDesktopFile(s, pkgDir); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// control metadata describes the data files, so it comes last
	if err := writeControl(s, pkgDir); err != nil {
		return nil, err
	}
	if err := writeMD5Sums(s, pkgDir); err != nil {
		return nil, err
	}

	return []string{pkgDir}, nil
}

// Arch maps an architecture in GOARCH or target-triple form to its Debian
// name. Unknown names pass through.
func Arch(arch string) string {
	switch arch {
	case "386", "x86", "i386", "i586", "i686":
		return "i386"
	case "amd64", "x86_64":
		return "amd64"
	case "arm", "armv7":
		return "armhf"
	case "arm64", "aarch64":
		return "arm64"
	case "ppc64le", "powerpc64le":
		return "ppc64el"
	default:
		return arch
	}
}
