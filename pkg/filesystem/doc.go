// Package filesystem provides the filesystem abstraction used by quark and
// the path helpers bundle backends share.
//
// FS has two implementations: NewOS for the real filesystem and NewAferoFS
// for any afero.Fs (tests use an in-memory MemMapFs). Symlink support on
// afero depends on the underlying Fs implementing afero.Symlinker.
//
// The helpers cover retina icon detection (IsRetina), mapping resource paths
// to a safe location under a bundle root (ResourceRelPath), and copying
// files and directory trees with symlinks preserved (CopyFile, CopyDir).
package filesystem
