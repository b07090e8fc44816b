// Package testutil provides helpers for quark tests.
//
// Key components:
//   - File helpers: CreateFile, CreateDir, CreateSymlink and the matching
//     existence checks, all failing the test on error
//   - Project fixtures: WriteManifest and CreatePNG for building small
//     projects on disk
//
// A fake build system lives in pkg/buildsys/buildsystest so that this
// package stays importable from buildsys's own tests.
//
// All helpers work on a real temporary directory (t.TempDir()); tests that
// only exercise copies can use an afero MemMapFs through
// filesystem.NewAferoFS instead.
package testutil
