package osx_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/backends/backendstest"
	"github.com/arthur-debert/quark/pkg/backends/osx"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/testutil"
)

// plistValues flattens the top-level dict into key -> element
func plistValues(t *testing.T, path string) map[string]*etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(path))
	dict := doc.FindElement("/plist/dict")
	require.NotNil(t, dict)

	values := make(map[string]*etree.Element)
	children := dict.ChildElements()
	for i := 0; i+1 < len(children); i += 2 {
		require.Equal(t, "key", children[i].Tag)
		values[children[i].Text()] = children[i+1]
	}
	return values
}

func TestBundle_Layout(t *testing.T) {
	dir := t.TempDir()
	testutil.CreatePNG(t, dir, "icons/32x32.png", 32, 32)
	testutil.CreatePNG(t, dir, "icons/32x32@2x.png", 64, 64)
	testutil.CreateFile(t, dir, "assets/readme.txt", "read me")
	testutil.CreateFile(t, dir, "assets/fonts/mono.ttf", "font")

	s := backendstest.NewSettings(t, dir, map[string]any{
		"name":                       "Hello World",
		"identifier":                 "com.example.hello",
		"icon":                       []any{"icons/*.png"},
		"resources":                  []any{"assets"},
		"category":                   "Developer Tool",
		"copyright":                  "Copyright (c) Ada",
		"osx_minimum_system_version": "11.0",
		"osx_url_schemes":            []any{"hello", "hi"},
	})

	paths, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)

	app := filepath.Join(s.BundleDirectory(), "osx", "Hello World.app")
	assert.Equal(t, []string{app}, paths)

	contents := filepath.Join(app, "Contents")
	assert.True(t, testutil.FileExists(t, filepath.Join(contents, "MacOS", "hello")))
	testutil.AssertFileContent(t, filepath.Join(contents, "Resources", "assets", "readme.txt"), "read me")
	testutil.AssertFileContent(t, filepath.Join(contents, "Resources", "assets", "fonts", "mono.ttf"), "font")

	icns := testutil.ReadFile(t, filepath.Join(contents, "Resources", "Hello World.icns"))
	assert.Equal(t, "icns", icns[:4])
	assert.Equal(t, uint32(len(icns)), binary.BigEndian.Uint32([]byte(icns[4:8])))

	values := plistValues(t, filepath.Join(contents, "Info.plist"))
	stringValues := map[string]string{
		"CFBundleDisplayName":        "Hello World",
		"CFBundleExecutable":         "hello",
		"CFBundleIconFile":           "Hello World.icns",
		"CFBundleIdentifier":         "com.example.hello",
		"CFBundleName":               "Hello World",
		"CFBundlePackageType":        "APPL",
		"CFBundleShortVersionString": "1.2.3",
		"CFBundleVersion":            "1.2.3",
		"LSApplicationCategoryType":  "public.app-category.developer-tools",
		"LSMinimumSystemVersion":     "11.0",
		"NSHumanReadableCopyright":   "Copyright (c) Ada",
	}
	for key, want := range stringValues {
		require.Contains(t, values, key)
		assert.Equal(t, "string", values[key].Tag, key)
		assert.Equal(t, want, values[key].Text(), key)
	}
	assert.Equal(t, "true", values["NSHighResolutionCapable"].Tag)

	urlTypes := values["CFBundleURLTypes"]
	require.NotNil(t, urlTypes)
	var schemes []string
	for _, el := range urlTypes.FindElements("./dict/array/string") {
		schemes = append(schemes, el.Text())
	}
	assert.Equal(t, []string{"hello", "hi"}, schemes)
}

func TestBundle_MinimalPlist(t *testing.T) {
	dir := t.TempDir()
	s := backendstest.NewSettings(t, dir, map[string]any{})

	paths, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "hello.app", filepath.Base(paths[0]))

	values := plistValues(t, filepath.Join(paths[0], "Contents", "Info.plist"))
	for _, absent := range []string{"CFBundleIconFile", "CFBundleURLTypes", "LSApplicationCategoryType",
		"LSMinimumSystemVersion", "NSHumanReadableCopyright"} {
		assert.NotContains(t, values, absent)
	}
	assert.Equal(t, "", values["CFBundleIdentifier"].Text())
	assert.False(t, testutil.DirExists(t, filepath.Join(paths[0], "Contents", "Frameworks")))
}

func TestBundle_ReplacesExistingBundle(t *testing.T) {
	dir := t.TempDir()
	s := backendstest.NewSettings(t, dir, map[string]any{})
	stale := testutil.CreateFile(t, osx.BundlePath(s), "Contents/stale.txt", "old")

	_, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)
	testutil.AssertNoFile(t, stale)
}

func TestBundle_CopiesDeclaredIcns(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "icons/app.icns", "icns-data")
	testutil.CreatePNG(t, dir, "icons/app.png", 128, 128)

	s := backendstest.NewSettings(t, dir, map[string]any{"icon": []any{"icons/app.png", "icons/app.icns"}})
	paths, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)
	testutil.AssertFileContent(t, filepath.Join(paths[0], "Contents", "Resources", "hello.icns"), "icns-data")
}

func TestBundle_NoIcnsSizeLeavesNoIcon(t *testing.T) {
	dir := t.TempDir()
	testutil.CreatePNG(t, dir, "icons/app.png", 48, 48)

	s := backendstest.NewSettings(t, dir, map[string]any{"icon": []any{"icons/app.png"}})
	paths, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)
	testutil.AssertNoFile(t, filepath.Join(paths[0], "Contents", "Resources", "hello.icns"))
	assert.NotContains(t, plistValues(t, filepath.Join(paths[0], "Contents", "Info.plist")), "CFBundleIconFile")
}

func TestBundle_UnresolvableResourcesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "assets/a.txt", "a")
	s := backendstest.NewSettings(t, dir, map[string]any{"resources": []any{"[bad", "assets"}})

	paths, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)
	testutil.AssertFileContent(t, filepath.Join(paths[0], "Contents", "Resources", "assets", "a.txt"), "a")
}

func TestIcnsType(t *testing.T) {
	tests := []struct {
		width, height int
		retina        bool
		want          string
		ok            bool
	}{
		{16, 16, false, "icp4", true},
		{32, 32, true, "ic11", true},
		{32, 32, false, "icp5", true},
		{64, 64, true, "ic12", true},
		{128, 128, false, "ic07", true},
		{512, 512, false, "ic09", true},
		{1024, 1024, true, "ic10", true},
		{48, 48, false, "", false},
		{32, 16, false, "", false},
		{33, 33, true, "", false},
	}
	for _, tt := range tests {
		got, ok := osx.IcnsType(tt.width, tt.height, tt.retina)
		assert.Equal(t, tt.ok, ok, "%dx%d retina=%v", tt.width, tt.height, tt.retina)
		assert.Equal(t, tt.want, got)
	}
}

func TestEncodeIcns(t *testing.T) {
	icons := []backends.Icon{
		{Source: "a.png", Width: 16, Height: 16, Data: []byte("AAAA")},
		{Source: "b.png", Width: 48, Height: 48, Data: []byte("skipped")},
		{Source: "c.png", Width: 16, Height: 16, Data: []byte("duplicate")},
		{Source: "d@2x.png", Width: 32, Height: 32, Retina: true, Data: []byte("BB")},
	}

	data, count := osx.EncodeIcns(icons)
	assert.Equal(t, 2, count)

	var want bytes.Buffer
	want.WriteString("icns")
	_ = binary.Write(&want, binary.BigEndian, uint32(8+12+10))
	want.WriteString("icp4")
	_ = binary.Write(&want, binary.BigEndian, uint32(12))
	want.WriteString("AAAA")
	want.WriteString("ic11")
	_ = binary.Write(&want, binary.BigEndian, uint32(10))
	want.WriteString("BB")
	assert.Equal(t, want.Bytes(), data)
}

func TestResolveFramework(t *testing.T) {
	searchA := t.TempDir()
	searchB := t.TempDir()
	testutil.CreateFile(t, searchB, "SDL2.framework/SDL2", "lib")
	local := testutil.CreateDir(t, t.TempDir(), "Local.framework")

	orig := osx.FrameworkSearchDirs
	osx.FrameworkSearchDirs = func() []string { return []string{searchA, searchB} }
	t.Cleanup(func() { osx.FrameworkSearchDirs = orig })

	s := backendstest.NewSettings(t, t.TempDir(), map[string]any{})

	got, err := osx.ResolveFramework(s.FS(), "SDL2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(searchB, "SDL2.framework"), got)

	got, err = osx.ResolveFramework(s.FS(), local)
	require.NoError(t, err)
	assert.Equal(t, local, got)

	_, err = osx.ResolveFramework(s.FS(), "Missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	assert.Contains(t, err.Error(), "could not locate Missing.framework")

	_, err = osx.ResolveFramework(s.FS(), filepath.Join(searchA, "Gone.framework"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestBundle_CopiesFrameworks(t *testing.T) {
	search := t.TempDir()
	testutil.CreateFile(t, search, "SDL2.framework/Versions/A/SDL2", "lib")
	testutil.CreateSymlink(t, "Versions/A/SDL2", filepath.Join(search, "SDL2.framework", "SDL2"))

	orig := osx.FrameworkSearchDirs
	osx.FrameworkSearchDirs = func() []string { return []string{search} }
	t.Cleanup(func() { osx.FrameworkSearchDirs = orig })

	s := backendstest.NewSettings(t, t.TempDir(), map[string]any{"osx_frameworks": []any{"SDL2"}})
	paths, err := osx.Bundle(context.Background(), s)
	require.NoError(t, err)

	fw := filepath.Join(paths[0], "Contents", "Frameworks", "SDL2.framework")
	testutil.AssertFileContent(t, filepath.Join(fw, "Versions", "A", "SDL2"), "lib")
	testutil.AssertSymlink(t, filepath.Join(fw, "SDL2"), "Versions/A/SDL2")
}
