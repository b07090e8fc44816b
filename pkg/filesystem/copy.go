package filesystem

import (
	"bufio"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
)

const dirPerm fs.FileMode = 0755

// CopyFile copies a regular file, creating the destination's parent
// directories as needed. A missing or non-regular source is logged as a
// warning; the copy is still attempted and its error is what is returned.
func CopyFile(fsys FS, from, to string) error {
	logger := logging.GetLogger("filesystem")

	info, err := fsys.Stat(from)
	switch {
	case err != nil:
		logger.Warn().Str("path", from).Msg("source does not exist")
	case !info.Mode().IsRegular():
		logger.Warn().Str("path", from).Msg("source is not a file")
	}

	dest := filepath.Dir(to)
	if err := fsys.MkdirAll(dest, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dest)
	}
	if err := copyContents(fsys, from, to); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", from, to).
			WithDetail("source", from).
			WithDetail("destination", to)
	}
	logger.Trace().Str("from", from).Str("to", to).Msg("copied file")
	return nil
}

// CopyDir recursively copies a directory tree, creating the destination's
// parent directories as needed. Symlinks are recreated pointing at the same
// target rather than followed. A missing or non-directory source, or an
// existing destination, is logged as a warning and the copy is still
// attempted.
func CopyDir(fsys FS, from, to string) error {
	logger := logging.GetLogger("filesystem")

	info, err := fsys.Stat(from)
	switch {
	case err != nil:
		logger.Warn().Str("path", from).Msg("source does not exist")
	case !info.IsDir():
		logger.Warn().Str("path", from).Msg("source is not a directory")
	}
	if _, err := fsys.Lstat(to); err == nil {
		logger.Warn().Str("path", to).Msg("destination already exists")
	}

	parent := filepath.Dir(to)
	if err := fsys.MkdirAll(parent, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent)
	}
	if err := fsys.MkdirAll(to, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", to)
	}
	return copyTree(fsys, from, to)
}

func copyTree(fsys FS, from, to string) error {
	entries, err := fsys.ReadDir(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", from)
	}

	for _, entry := range entries {
		src := filepath.Join(from, entry.Name())
		dst := filepath.Join(to, entry.Name())

		info, err := fsys.Lstat(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(src)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", src)
			}
			if err := fsys.Symlink(target, dst); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s -> %s", dst, target)
			}
		case info.IsDir():
			if err := fsys.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
			}
			if err := copyTree(fsys, src, dst); err != nil {
				return err
			}
		default:
			if err := copyContents(fsys, src, dst); err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, dst)
			}
		}
	}
	return nil
}

func copyContents(fsys FS, from, to string) (err error) {
	perm := fs.FileMode(0644)
	if info, statErr := fsys.Stat(from); statErr == nil {
		perm = info.Mode().Perm()
	}

	src, err := fsys.Open(from)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := fsys.Create(to, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(dst, src)
	return err
}

// bufferedFile flushes its buffer before closing the underlying file
type bufferedFile struct {
	*bufio.Writer
	file io.WriteCloser
}

func (b *bufferedFile) Close() error {
	if err := b.Flush(); err != nil {
		_ = b.file.Close()
		return err
	}
	return b.file.Close()
}

// CreateFile creates (or truncates) a file for buffered writing, creating
// parent directories as needed. Close flushes the buffer.
func CreateFile(fsys FS, path string) (io.WriteCloser, error) {
	parent := filepath.Dir(path)
	if err := fsys.MkdirAll(parent, dirPerm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", parent)
	}
	f, err := fsys.Create(path, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to create file %s", path)
	}
	return &bufferedFile{Writer: bufio.NewWriter(f), file: f}, nil
}
