package osx

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

type iconSize struct {
	pixels int
	retina bool
}

// PNG-payload icon types, keyed by point size and density
var icnsTypes = map[iconSize]string{
	{16, false}:  "icp4",
	{16, true}:   "ic11",
	{32, false}:  "icp5",
	{32, true}:   "ic12",
	{64, false}:  "icp6",
	{128, false}: "ic07",
	{128, true}:  "ic13",
	{256, false}: "ic08",
	{256, true}:  "ic14",
	{512, false}: "ic09",
	{512, true}:  "ic10",
}

// IcnsType returns the icns element type for a square PNG of the given
// pixel size. Retina images are keyed by their point size.
func IcnsType(width, height int, retina bool) (string, bool) {
	if width != height {
		return "", false
	}
	size := width
	if retina {
		if size%2 != 0 {
			return "", false
		}
		size /= 2
	}
	t, ok := icnsTypes[iconSize{size, retina}]
	return t, ok
}

// EncodeIcns packs the icons into an icns container. Icons without a
// matching icns type are skipped, as is a second icon for the same type.
func EncodeIcns(icons []backends.Icon) ([]byte, int) {
	logger := logging.GetLogger("backends.osx")

	var body bytes.Buffer
	seen := make(map[string]bool)
	count := 0
	for _, icon := range icons {
		t, ok := IcnsType(icon.Width, icon.Height, icon.Retina)
		if !ok {
			logger.Warn().
				Str("icon", icon.Source).
				Int("width", icon.Width).
				Int("height", icon.Height).
				Msg("Icon size has no icns slot, skipping")
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		body.WriteString(t)
		_ = binary.Write(&body, binary.BigEndian, uint32(8+len(icon.Data)))
		body.Write(icon.Data)
		count++
	}

	var out bytes.Buffer
	out.WriteString("icns")
	_ = binary.Write(&out, binary.BigEndian, uint32(8+body.Len()))
	out.Write(body.Bytes())
	return out.Bytes(), count
}

// writeIcon places the bundle icon in resourcesDir and returns its file
// name, or "" when no icon is declared. A declared .icns file is copied
// as is; otherwise the images are packed into a new one.
func writeIcon(s *settings.Settings, resourcesDir string) (string, error) {
	paths, err := backends.IconPaths(s)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", nil
	}

	name := s.BundleName() + ".icns"
	dest := filepath.Join(resourcesDir, name)

	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".icns") {
			if err := filesystem.CopyFile(s.FS(), path, dest); err != nil {
				return "", err
			}
			return name, nil
		}
	}

	icons, err := backends.LoadIcons(s.FS(), paths)
	if err != nil {
		return "", err
	}
	data, count := EncodeIcns(icons)
	if count == 0 {
		logger := logging.GetLogger("backends.osx")
		logger.Warn().Msg("No icon has an icns size, bundle has no icon")
		return "", nil
	}

	if err := s.FS().MkdirAll(resourcesDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", resourcesDir)
	}
	if err := s.FS().WriteFile(dest, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest).WithDetail("path", dest)
	}
	return name, nil
}
