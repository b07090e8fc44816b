package deb

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/settings"
)

const debianDir = "DEBIAN"

// Control renders the DEBIAN/control file. installedSize is in KiB.
func Control(s *settings.Settings, installedSize int64) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "%s: %s\n", name, value)
	}

	field("Package", packageField(s.BinaryName()))
	field("Version", s.VersionString())
	field("Architecture", Arch(s.BinaryArch()))
	field("Installed-Size", fmt.Sprint(installedSize))
	if authors, ok := s.AuthorsCommaSeparated(); ok {
		field("Maintainer", authors)
	}
	if homepage := s.HomepageURL(); homepage != "" {
		field("Homepage", homepage)
	}
	if deps := s.DebianDependencies(); len(deps) > 0 {
		field("Depends", strings.Join(deps, ", "))
	}
	field("Priority", "optional")

	short := s.ShortDescription()
	if short == "" {
		short = "(none)"
	}
	field("Description", short)
	if long, ok := s.LongDescription(); ok {
		for _, line := range strings.Split(strings.TrimRight(long, "\n"), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				line = "."
			}
			b.WriteString(" " + line + "\n")
		}
	}
	return b.String()
}

// packageField lowercases the name and replaces characters Debian does not
// allow in package names
func packageField(name string) string {
	name = strings.ToLower(strings.TrimSuffix(name, ".exe"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '-', r == '.':
			return r
		default:
			return '-'
		}
	}, name)
}

func writeControl(s *settings.Settings, pkgDir string) error {
	size, err := installedSize(s.FS(), pkgDir)
	if err != nil {
		return err
	}
	return writeDebianFile(s.FS(), filepath.Join(pkgDir, debianDir, "control"), Control(s, size))
}

func installedSize(fsys filesystem.FS, pkgDir string) (int64, error) {
	files, err := backends.ListFiles(fsys, pkgDir)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, rel := range files {
		if isDebianFile(rel) {
			continue
		}
		info, err := fsys.Stat(filepath.Join(pkgDir, rel))
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", rel)
		}
		total += info.Size()
	}
	return (total + 1023) / 1024, nil
}

// writeMD5Sums lists the checksum of every data file, as md5sum(1) would
func writeMD5Sums(s *settings.Settings, pkgDir string) error {
	fsys := s.FS()
	files, err := backends.ListFiles(fsys, pkgDir)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, rel := range files {
		if isDebianFile(rel) {
			continue
		}
		sum, err := md5File(fsys, filepath.Join(pkgDir, rel))
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%s  %s\n", sum, filepath.ToSlash(rel))
	}
	return writeDebianFile(fsys, filepath.Join(pkgDir, debianDir, "md5sums"), b.String())
}

func md5File(fsys filesystem.FS, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isDebianFile(rel string) bool {
	return strings.HasPrefix(filepath.ToSlash(rel), debianDir+"/")
}

func writeDebianFile(fsys filesystem.FS, path, content string) error {
	w, err := filesystem.CreateFile(fsys, path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
