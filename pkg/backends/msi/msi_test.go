package msi_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quark/pkg/backends/backendstest"
	"github.com/arthur-debert/quark/pkg/backends/msi"
	"github.com/arthur-debert/quark/pkg/settings"
	"github.com/arthur-debert/quark/pkg/testutil"
)

func TestBundle_WritesWxsAndStagesFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "assets/data/levels.json", "[]")
	testutil.CreateFile(t, dir, "README.md", "# hello")

	s := backendstest.NewSettings(t, dir, map[string]any{
		"name":       "Hello",
		"identifier": "com.example.hello",
		"resources":  []any{"assets", "README.md"},
	}, settings.WithTarget("x86_64-pc-windows-msvc"))

	paths, err := msi.Bundle(context.Background(), s)
	require.NoError(t, err)

	msiDir := filepath.Join(s.BundleDirectory(), "msi")
	wxs := filepath.Join(msiDir, "hello.wxs")
	assert.Equal(t, []string{wxs}, paths)

	assert.True(t, testutil.FileExists(t, filepath.Join(msiDir, "hello", "hello.exe")))
	testutil.AssertFileContent(t, filepath.Join(msiDir, "hello", "assets", "data", "levels.json"), "[]")
	testutil.AssertFileContent(t, filepath.Join(msiDir, "hello", "README.md"), "# hello")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(wxs))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Wix", root.Tag)
	assert.Equal(t, msi.WixNamespace, root.SelectAttrValue("xmlns", ""))

	pkg := root.SelectElement("Package")
	require.NotNil(t, pkg)
	assert.Equal(t, "Hello", pkg.SelectAttrValue("Name", ""))
	assert.Equal(t, "1.2.3", pkg.SelectAttrValue("Version", ""))
	assert.Equal(t, "Ada Lovelace <ada@example.com>", pkg.SelectAttrValue("Manufacturer", ""))
	assert.Equal(t, msi.UpgradeCode(s), pkg.SelectAttrValue("UpgradeCode", ""))

	dirEl := pkg.FindElement("./StandardDirectory[@Id='ProgramFiles64Folder']/Directory")
	require.NotNil(t, dirEl)
	assert.Equal(t, "Hello", dirEl.SelectAttrValue("Name", ""))

	var sources, subdirs []string
	for _, c := range root.FindElements("./Fragment/ComponentGroup/Component") {
		subdirs = append(subdirs, c.SelectAttrValue("Subdirectory", ""))
		sources = append(sources, c.SelectElement("File").SelectAttrValue("Source", ""))
	}
	assert.Equal(t, []string{"hello/hello.exe", "hello/assets/data/levels.json", "hello/README.md"}, sources)
	assert.Equal(t, []string{"", `assets\data`, ""}, subdirs)

	main := root.FindElement("./Fragment/ComponentGroup/Component/File[@Id='MainExecutable']")
	require.NotNil(t, main)
}

func TestUpgradeCode_IsStable(t *testing.T) {
	a := backendstest.NewSettings(t, t.TempDir(), map[string]any{"identifier": "com.example.a"}, settings.WithoutBuild())
	a2 := backendstest.NewSettings(t, t.TempDir(), map[string]any{"identifier": "com.example.a"}, settings.WithoutBuild())
	b := backendstest.NewSettings(t, t.TempDir(), map[string]any{"identifier": "com.example.b"}, settings.WithoutBuild())

	assert.Equal(t, msi.UpgradeCode(a), msi.UpgradeCode(a2))
	assert.NotEqual(t, msi.UpgradeCode(a), msi.UpgradeCode(b))
	assert.Regexp(t, `^\{[0-9A-F]{8}-[0-9A-F]{4}-5[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}\}$`, msi.UpgradeCode(a))
}

func TestWxs_32BitUsesProgramFilesFolder(t *testing.T) {
	s := backendstest.NewSettings(t, t.TempDir(), map[string]any{}, settings.WithoutBuild(),
		settings.WithTarget("i686-pc-windows-msvc"))

	doc := msi.Wxs(s, "hello", []msi.StagedFile{{Path: "hello.exe", Main: true}})
	assert.NotNil(t, doc.FindElement("//StandardDirectory[@Id='ProgramFilesFolder']"))
	info := doc.FindElement("//SummaryInformation")
	require.NotNil(t, info)
	assert.Equal(t, "Says hello", info.SelectAttrValue("Description", ""))
}
