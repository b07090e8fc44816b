package deb

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

// IconPath is where an icon of the given logical size goes in the hicolor
// theme. Retina directories carry the logical size with an @2x suffix.
func IconPath(binary string, width, height int, retina bool) string {
	size := fmt.Sprintf("%dx%d", width, height)
	if retina {
		size += "@2x"
	}
	return filepath.Join("usr", "share", "icons", "hicolor", size, "apps", binary+".png")
}

// writeIcons places each icon in the hicolor theme by its logical size, half
// the pixel size for retina icons. The first icon for a given size wins.
func writeIcons(s *settings.Settings, pkgDir string) ([]string, error) {
	logger := logging.GetLogger("backends.deb")

	paths, err := backends.IconPaths(s)
	if err != nil {
		return nil, err
	}
	icons, err := backends.LoadIcons(s.FS(), paths)
	if err != nil {
		return nil, err
	}

	var written []string
	seen := make(map[string]bool)
	for _, icon := range icons {
		width, height := icon.Width, icon.Height
		if icon.Retina {
			width, height = width/2, height/2
		}
		rel := IconPath(s.BinaryName(), width, height, icon.Retina)
		if seen[rel] {
			logger.Debug().Str("icon", icon.Source).Msg("Icon size already present, skipping")
			continue
		}
		seen[rel] = true

		dest := filepath.Join(pkgDir, rel)
		if err := s.FS().MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dest))
		}
		if err := s.FS().WriteFile(dest, icon.Data, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest)
		}
		written = append(written, dest)
	}
	return written, nil
}
