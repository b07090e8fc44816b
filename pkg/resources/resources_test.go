package resources_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/resources"
	"github.com/arthur-debert/quark/pkg/testutil"
)

func drain(t *testing.T, rp *resources.ResourcePaths) ([]string, []error) {
	t.Helper()
	var paths []string
	var errs []error
	for item := range rp.All() {
		if item.Err != nil {
			errs = append(errs, item.Err)
			continue
		}
		paths = append(paths, filepath.ToSlash(item.Path))
	}
	return paths, errs
}

func TestResourcePaths_MissingPatternContributesNothing(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "assets/b.png", "b")
	testutil.CreateFile(t, dir, "assets/a.png", "a")
	testutil.CreateFile(t, dir, "assets/notes.txt", "n")

	rp := resources.New([]string{"assets/*.png", "missing/*.svg"}, false, resources.WithBaseDir(dir))
	paths, errs := drain(t, rp)

	assert.Empty(t, errs)
	assert.Equal(t, []string{"assets/a.png", "assets/b.png"}, paths)
}

func TestResourcePaths_WorkingDirectoryRelative(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "assets/a.png", "a")
	testutil.Chdir(t, dir)

	item, ok := resources.New([]string{"assets/*.png"}, false).Next()
	require.True(t, ok)
	require.NoError(t, item.Err)
	assert.Equal(t, filepath.Join("assets", "a.png"), item.Path)
	assert.Equal(t, item.Path, item.Source)
}

func TestResourcePaths_PatternOrderPreserved(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "z/last.txt", "")
	testutil.CreateFile(t, dir, "a/first.txt", "")

	rp := resources.New([]string{"z/*", "a/*"}, false, resources.WithBaseDir(dir))
	paths, errs := drain(t, rp)

	assert.Empty(t, errs)
	assert.Equal(t, []string{"z/last.txt", "a/first.txt"}, paths)
}

func TestResourcePaths_DirectoryWithoutWalkIsError(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "icons/sub/x.png", "")
	testutil.CreateFile(t, dir, "icons/32x32.png", "")
	testutil.CreateFile(t, dir, "icons/64x64.png", "")

	rp := resources.New([]string{"icons/*"}, false, resources.WithBaseDir(dir))
	paths, errs := drain(t, rp)

	assert.Equal(t, []string{"icons/32x32.png", "icons/64x64.png"}, paths)
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrResourceIsDir))
	assert.Contains(t, errs[0].Error(), "is a directory")
}

func TestResourcePaths_ErrorDoesNotHaltLaterPatterns(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateDir(t, dir, "adir")
	testutil.CreateFile(t, dir, "after.txt", "")

	rp := resources.New([]string{"adir", "[", "after.txt"}, false, resources.WithBaseDir(dir))

	var items []resources.Item
	for item := range rp.All() {
		items = append(items, item)
	}

	require.Len(t, items, 3)
	assert.True(t, errors.IsErrorCode(items[0].Err, errors.ErrResourceIsDir))
	assert.True(t, errors.IsErrorCode(items[1].Err, errors.ErrGlobPattern))
	require.NoError(t, items[2].Err)
	assert.Equal(t, "after.txt", items[2].Path)
}

func TestResourcePaths_WalkYieldsFilesOnly(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "assets/b.txt", "")
	testutil.CreateFile(t, dir, "assets/a/deep/c.txt", "")
	testutil.CreateFile(t, dir, "assets/a/d.txt", "")
	testutil.CreateDir(t, dir, "assets/empty")

	rp := resources.New([]string{"assets"}, true, resources.WithBaseDir(dir))
	paths, errs := drain(t, rp)

	assert.Empty(t, errs)
	assert.Equal(t, []string{
		"assets/a/d.txt",
		"assets/a/deep/c.txt",
		"assets/b.txt",
	}, paths)
}

func TestResourcePaths_WalkSkipsSymlinkedDirectories(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "assets/real.txt", "")
	testutil.CreateFile(t, dir, "elsewhere/hidden.txt", "")
	testutil.CreateSymlink(t, filepath.Join(dir, "elsewhere"), filepath.Join(dir, "assets", "linked-dir"))
	testutil.CreateSymlink(t, "real.txt", filepath.Join(dir, "assets", "linked-file"))

	rp := resources.New([]string{"assets"}, true, resources.WithBaseDir(dir))
	paths, errs := drain(t, rp)

	assert.Empty(t, errs)
	assert.Equal(t, []string{"assets/linked-file", "assets/real.txt"}, paths)
}

func TestResourcePaths_DoublestarSyntax(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "a/x.png", "")
	testutil.CreateFile(t, dir, "a/b/y.png", "")
	testutil.CreateFile(t, dir, "a/b/z.svg", "")
	testutil.CreateFile(t, dir, "a/b/w.txt", "")

	rp := resources.New([]string{"a/**/*.{png,svg}"}, false, resources.WithBaseDir(dir))
	paths, errs := drain(t, rp)

	assert.Empty(t, errs)
	assert.Equal(t, []string{"a/b/y.png", "a/b/z.svg", "a/x.png"}, paths)
}

func TestResourcePaths_AbsolutePatternKeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	file := testutil.CreateFile(t, dir, "abs/one.txt", "")
	other := t.TempDir()

	rp := resources.New([]string{filepath.Join(dir, "abs", "*.txt")}, false, resources.WithBaseDir(other))
	item, ok := rp.Next()
	require.True(t, ok)
	require.NoError(t, item.Err)
	assert.Equal(t, file, item.Path)
	assert.Equal(t, file, item.Source)
}

func TestResourcePaths_NotRestartable(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "one.txt", "")

	rp := resources.New([]string{"*.txt"}, false, resources.WithBaseDir(dir))
	paths, _ := drain(t, rp)
	assert.Len(t, paths, 1)

	_, ok := rp.Next()
	assert.False(t, ok)
	paths, _ = drain(t, rp)
	assert.Empty(t, paths)
}

func TestResourcePaths_Empty(t *testing.T) {
	_, ok := resources.New(nil, true).Next()
	assert.False(t, ok)
}

func TestResourcePaths_Deterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.txt", "a.txt", "b/2.txt", "b/1.txt"} {
		testutil.CreateFile(t, dir, name, "")
	}

	first, _ := drain(t, resources.New([]string{"*"}, true, resources.WithBaseDir(dir)))
	second, _ := drain(t, resources.New([]string{"*"}, true, resources.WithBaseDir(dir)))
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a.txt", "b/1.txt", "b/2.txt", "c.txt"}, first)
}

func TestResourcePaths_UsesConfiguredFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/proj/assets/a.png", nil, 0644))
	require.NoError(t, afero.WriteFile(mem, "/proj/assets/b.txt", nil, 0644))
	require.NoError(t, afero.WriteFile(mem, "/proj/data/deep/c.json", nil, 0644))

	rp := resources.New([]string{"assets/*.png", "data"}, true,
		resources.WithBaseDir("/proj"),
		resources.WithFS(filesystem.NewAferoFS(mem)))
	paths, errs := drain(t, rp)

	assert.Empty(t, errs)
	assert.Equal(t, []string{"assets/a.png", "data/deep/c.json"}, paths)
}

func TestResourcePaths_BaseDirIsNotGlobSyntax(t *testing.T) {
	parent := t.TempDir()
	dir := testutil.CreateDir(t, parent, "proj[1]")
	testutil.CreateFile(t, dir, "assets/a.png", "")
	testutil.CreateFile(t, parent, "proj1/assets/decoy.png", "")

	paths, errs := drain(t, resources.New([]string{"assets/*.png"}, false, resources.WithBaseDir(dir)))

	assert.Empty(t, errs)
	assert.Equal(t, []string{"assets/a.png"}, paths)
}

func TestResourcePaths_UnreadableDirectoryIsErrorItem(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.RequireNonRoot(t)
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "open/a.png", "")
	locked := testutil.CreateDir(t, dir, "locked")
	testutil.CreateFile(t, dir, "after.txt", "")
	testutil.Chmod(t, locked, 0000)
	t.Cleanup(func() { testutil.Chmod(t, locked, 0755) })

	paths, errs := drain(t, resources.New([]string{"*/*.png", "after.txt"}, false, resources.WithBaseDir(dir)))

	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrFileAccess))
	assert.Equal(t, []string{"after.txt"}, paths)
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "icon.png", "")
	testutil.CreateDir(t, dir, "icons")

	items, errs := resources.New([]string{"icon*"}, false, resources.WithBaseDir(dir)).Collect()
	require.Len(t, items, 1)
	assert.Equal(t, "icon.png", items[0].Path)
	assert.Equal(t, filepath.Join(dir, "icon.png"), items[0].Source)
	require.Len(t, errs, 1)
}
