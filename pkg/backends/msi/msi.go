// Package msi stages the inputs of a WiX v4 build: the binary and
// resources under <out>/bundle/msi/<name>/ and a <name>.wxs source that
// installs them into Program Files.
package msi

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/arthur-debert/quark/pkg/backends"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/settings"
)

// WixNamespace is the WiX v4 schema namespace
const WixNamespace = "http://wixtoolset.org/schemas/v4/wxs"

const installDirID = "INSTALLFOLDER"

// upgradeNamespace seeds UpgradeCode generation so that the same
// identifier always yields the same code
var upgradeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/arthur-debert/quark/msi"))

// StagedFile is a file in the staging directory, relative to it
type StagedFile struct {
	Path string
	Main bool
}

// PackageName is the base name of the staging directory and .wxs file
func PackageName(s *settings.Settings) string {
	return strings.TrimSuffix(s.BinaryName(), ".exe")
}

// Bundle stages the files for s, writes the .wxs and returns its path
func Bundle(ctx context.Context, s *settings.Settings) ([]string, error) {
	logger := logging.GetLogger("backends.msi")
	fsys := s.FS()

	name := PackageName(s)
	msiDir := filepath.Join(s.BundleDirectory(), "msi")
	stageDir := filepath.Join(msiDir, name)
	wxsPath := filepath.Join(msiDir, name+".wxs")

	logger.Info().Str("wxs", wxsPath).Msg("Staging WiX sources")
	if err := backends.ResetDir(fsys, stageDir); err != nil {
		return nil, err
	}

	exe := name + ".exe"
	if err := backends.CopyBinary(s, filepath.Join(stageDir, exe)); err != nil {
		return nil, err
	}
	files := []StagedFile{{Path: exe, Main: true}}

	placed, err := backends.CopyResources(s, stageDir)
	if err != nil {
		return nil, err
	}
	for _, p := range placed {
		rel, err := filepath.Rel(stageDir, p.Destination)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "resource %s escaped the staging directory", p.Source)
		}
		files = append(files, StagedFile{Path: rel})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Wxs(s, name, files)
	if err := backends.WriteDocument(fsys, wxsPath, doc); err != nil {
		return nil, err
	}
	return []string{wxsPath}, nil
}

// UpgradeCode derives a stable upgrade code from the bundle identifier, or
// the bundle name when there is none
func UpgradeCode(s *settings.Settings) string {
	seed := s.BundleIdentifier()
	if seed == "" {
		seed = s.BundleName()
	}
	return "{" + strings.ToUpper(uuid.NewSHA1(upgradeNamespace, []byte(seed)).String()) + "}"
}

// Wxs builds the WiX source. File sources are relative to the .wxs, inside
// the <name> staging directory.
func Wxs(s *settings.Settings, name string, files []StagedFile) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	wix := doc.CreateElement("Wix")
	wix.CreateAttr("xmlns", WixNamespace)

	manufacturer, ok := s.AuthorsCommaSeparated()
	if !ok {
		manufacturer = s.BundleName()
	}

	pkg := wix.CreateElement("Package")
	pkg.CreateAttr("Name", s.BundleName())
	pkg.CreateAttr("Manufacturer", manufacturer)
	pkg.CreateAttr("Version", s.VersionString())
	pkg.CreateAttr("UpgradeCode", UpgradeCode(s))
	pkg.CreateAttr("Language", "1033")
	pkg.CreateAttr("Scope", "perMachine")

	if summary := s.ShortDescription(); summary != "" {
		info := pkg.CreateElement("SummaryInformation")
		info.CreateAttr("Description", summary)
	}
	upgrade := pkg.CreateElement("MajorUpgrade")
	upgrade.CreateAttr("DowngradeErrorMessage", "A newer version of [ProductName] is already installed.")
	pkg.CreateElement("MediaTemplate").CreateAttr("EmbedCab", "yes")

	programFiles := pkg.CreateElement("StandardDirectory")
	programFiles.CreateAttr("Id", programFilesFolder(s.BinaryArch()))
	installDir := programFiles.CreateElement("Directory")
	installDir.CreateAttr("Id", installDirID)
	installDir.CreateAttr("Name", s.BundleName())

	feature := pkg.CreateElement("Feature")
	feature.CreateAttr("Id", "Main")
	feature.CreateAttr("Title", s.BundleName())
	feature.CreateAttr("Level", "1")
	feature.CreateElement("ComponentGroupRef").CreateAttr("Id", "ApplicationFiles")

	group := wix.CreateElement("Fragment").CreateElement("ComponentGroup")
	group.CreateAttr("Id", "ApplicationFiles")
	group.CreateAttr("Directory", installDirID)
	for i, f := range files {
		component := group.CreateElement("Component")
		component.CreateAttr("Id", fmt.Sprintf("cmp%04d", i))
		if sub := filepath.Dir(f.Path); sub != "." {
			component.CreateAttr("Subdirectory", strings.ReplaceAll(filepath.ToSlash(sub), "/", `\`))
		}
		file := component.CreateElement("File")
		if f.Main {
			file.CreateAttr("Id", "MainExecutable")
		} else {
			file.CreateAttr("Id", fmt.Sprintf("fil%04d", i))
		}
		file.CreateAttr("Source", filepath.ToSlash(filepath.Join(name, f.Path)))
		file.CreateAttr("KeyPath", "yes")
	}

	doc.Indent(2)
	return doc
}

func programFilesFolder(arch string) string {
	switch arch {
	case "386", "x86", "i386", "i686":
		return "ProgramFilesFolder"
	default:
		return "ProgramFiles64Folder"
	}
}
