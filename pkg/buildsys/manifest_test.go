package buildsys

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/testutil"
)

const rootManifestTOML = `
[package]
name = "hello"
version = "0.1.0"
authors = ["Ada <ada@example.com>"]
homepage = "https://example.com"
description = "Says hello"

[package.metadata.bundle]
name = "Hello"
identifier = "com.example.hello"
icon = ["icons/*.png"]
category = "Developer Tool"

[dependencies]
serde = "1.0"
tokio = { version = "1.3", features = ["full"] }
local = { path = "../local" }

[workspace]
members = ["crates/helper"]
`

const memberManifestYAML = `
package:
  name: helper
  version: 0.0.1
  metadata:
    bundle:
      name: Helper
      resources:
        - assets
`

func TestLoadManifestMetadata_TOMLWorkspace(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "quark.toml", rootManifestTOML)
	testutil.CreateFile(t, dir, "crates/helper/quark.yaml", memberManifestYAML)

	md, err := LoadManifestMetadata(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, md.WorkspaceRoot)
	require.Len(t, md.Packages, 2)

	root, ok := md.RootPackage()
	require.True(t, ok)
	assert.Equal(t, "hello", root.Name)
	assert.Equal(t, "0.1.0", root.Version)
	assert.Equal(t, []string{"Ada <ada@example.com>"}, root.Authors)
	assert.Equal(t, "https://example.com", root.Homepage)
	assert.Equal(t, "Says hello", root.Description)
	assert.Equal(t, filepath.Join(dir, "quark.toml"), root.ManifestPath)
	assert.Equal(t, []Dependency{
		{Name: "local"},
		{Name: "serde", Req: "1.0"},
		{Name: "tokio", Req: "1.3"},
	}, root.Dependencies)

	bundle, ok := root.Section("bundle")
	require.True(t, ok)
	table := bundle.(map[string]any)
	assert.Equal(t, "Hello", table["name"])
	assert.Equal(t, []any{"icons/*.png"}, table["icon"])

	members := md.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "hello", members[0].Name)
	assert.Equal(t, "helper", members[1].Name)

	helperBundle, ok := members[1].Section("bundle")
	require.True(t, ok)
	assert.Equal(t, []any{"assets"}, helperBundle.(map[string]any)["resources"])
}

func TestLoadManifestMetadata_VirtualWorkspace(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "quark.toml", "[workspace]\nmembers = [\"app\"]\n")
	testutil.CreateFile(t, dir, "app/quark.toml", "[package]\nname = \"app\"\nversion = \"1.0.0\"\n")

	md, err := LoadManifestMetadata(dir)
	require.NoError(t, err)

	_, ok := md.RootPackage()
	assert.False(t, ok)
	require.Len(t, md.Members(), 1)
	assert.Equal(t, "app", md.Members()[0].Name)
}

func TestLoadManifestMetadata_Errors(t *testing.T) {
	t.Run("no manifest", func(t *testing.T) {
		_, err := LoadManifestMetadata(t.TempDir())
		assert.True(t, qerrors.IsErrorCode(err, qerrors.ErrManifestLoad))
	})

	t.Run("invalid toml", func(t *testing.T) {
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "quark.toml", "[package\nname=")
		_, err := LoadManifestMetadata(dir)
		assert.True(t, qerrors.IsErrorCode(err, qerrors.ErrManifestLoad))
		assert.Equal(t, filepath.Join(dir, "quark.toml"), qerrors.GetErrorDetails(err)["path"])
	})

	t.Run("member without manifest", func(t *testing.T) {
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "quark.toml", "[workspace]\nmembers = [\"gone\"]\n")
		_, err := LoadManifestMetadata(dir)
		assert.True(t, qerrors.IsErrorCode(err, qerrors.ErrManifestLoad))
		assert.Equal(t, "gone", qerrors.GetErrorDetails(err)["member"])
	})

	t.Run("member without package", func(t *testing.T) {
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "quark.toml", "[workspace]\nmembers = [\"empty\"]\n")
		testutil.CreateFile(t, dir, "empty/quark.yml", "workspace:\n  members: []\n")
		_, err := LoadManifestMetadata(dir)
		assert.True(t, qerrors.IsErrorCode(err, qerrors.ErrManifestLoad))
	})
}

func TestFindManifest_Order(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "quark.yaml", "")
	testutil.CreateFile(t, dir, "quark.toml", "")

	path, ok := FindManifest(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "quark.toml"), path)
}
