package deb

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/quark/pkg/settings"
)

// DesktopEntry renders usr/share/applications/<bin>.desktop
func DesktopEntry(s *settings.Settings) string {
	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(key + "=" + value + "\n")
	}

	b.WriteString("[Desktop Entry]\n")
	if c, ok := s.AppCategory(); ok {
		line("Categories", c.GnomeDesktopCategories())
	}
	if comment := s.ShortDescription(); comment != "" {
		line("Comment", comment)
	}

	exec := s.BinaryName()
	if args, ok := s.LinuxExecArgs(); ok && args != "" {
		exec += " " + args
	}
	line("Exec", exec)
	line("Icon", s.BinaryName())
	if mimeTypes := s.LinuxMimeTypes(); len(mimeTypes) > 0 {
		line("MimeType", strings.Join(mimeTypes, ";")+";")
	}
	line("Name", s.BundleName())
	terminal, _ := s.LinuxUseTerminal()
	line("Terminal", strconv.FormatBool(terminal))
	line("Type", "Application")
	line("Version", "1.5")
	return b.String()
}

func writeDesktopFile(s *settings.Settings, pkgDir string) error {
	path := filepath.Join(pkgDir, "usr", "share", "applications", s.BinaryName()+".desktop")
	return writeDebianFile(s.FS(), path, DesktopEntry(s))
}
