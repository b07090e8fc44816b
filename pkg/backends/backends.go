package backends

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

// PlacedFile is a file copied into a bundle
type PlacedFile struct {
	Source      string
	Destination string
}

// ResetDir removes dir if it exists and creates it empty. Bundles are always
// written from scratch.
func ResetDir(fsys filesystem.FS, dir string) error {
	if err := fsys.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove old bundle at %s", dir).
			WithDetail("path", dir)
	}
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("path", dir)
	}
	return nil
}

// CopyBinary copies the bundled binary to dest
func CopyBinary(s *settings.Settings, dest string) error {
	return filesystem.CopyFile(s.FS(), s.BinaryPath(), dest)
}

// CopyResources copies every resource file under dir, at its
// ResourceRelPath. Resources that cannot be resolved are skipped with a
// warning; any other error aborts the copy.
func CopyResources(s *settings.Settings, dir string) ([]PlacedFile, error) {
	logger := logging.GetLogger("backends")

	var placed []PlacedFile
	for item := range s.ResourceFiles().All() {
		if item.Err != nil {
			if errors.IsFatal(item.Err) {
				return placed, item.Err
			}
			logger.Warn().Err(item.Err).Str("resource", item.Path).Msg("Skipping resource")
			continue
		}
		dest := filepath.Join(dir, filesystem.ResourceRelPath(item.Path))
		if err := filesystem.CopyFile(s.FS(), item.Source, dest); err != nil {
			return placed, err
		}
		logger.Debug().Str("resource", item.Path).Str("to", dest).Msg("Copied resource")
		placed = append(placed, PlacedFile{Source: item.Source, Destination: dest})
	}
	return placed, nil
}

// ListFiles returns every regular file below root, relative to it and in
// lexical order. Symlinks are not followed.
func ListFiles(fsys filesystem.FS, root string) ([]string, error) {
	var files []string
	var visit func(rel string) error
	visit = func(rel string) error {
		entries, err := fsys.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", filepath.Join(root, rel))
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, entry := range entries {
			child := filepath.Join(rel, entry.Name())
			switch {
			case entry.IsDir():
				if err := visit(child); err != nil {
					return err
				}
			case entry.Type()&fs.ModeSymlink == 0:
				files = append(files, child)
			}
		}
		return nil
	}
	if err := visit(""); err != nil {
		return nil, err
	}
	return files, nil
}

// IconPaths resolves the declared icon patterns to source paths, skipping
// with a warning the ones that cannot be resolved.
func IconPaths(s *settings.Settings) ([]string, error) {
	logger := logging.GetLogger("backends")

	var paths []string
	for item := range s.IconFiles().All() {
		if item.Err != nil {
			if errors.IsFatal(item.Err) {
				return nil, item.Err
			}
			logger.Warn().Err(item.Err).Str("icon", item.Path).Msg("Skipping icon")
			continue
		}
		paths = append(paths, item.Source)
	}
	return paths, nil
}
