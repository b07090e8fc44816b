package filesystem

import (
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// aferoFS implements FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	// Only some afero filesystems (OsFs, BasePathFs over OsFs) can lstat.
	// The rest have no symlinks, so Stat is equivalent.
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) Open(name string) (io.ReadCloser, error) {
	return a.fs.Open(name)
}

func (a *aferoFS) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	return a.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) DirFS(dir string) fs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(a.fs, dir))
}
