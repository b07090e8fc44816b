package buildsys

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/quark/pkg/errors"
)

// ManifestNames are the quark manifest file names, in lookup order
var ManifestNames = []string{"quark.toml", "quark.yaml", "quark.yml"}

type manifestFile struct {
	Package      *manifestPackage `toml:"package" yaml:"package"`
	Dependencies map[string]any   `toml:"dependencies" yaml:"dependencies"`
	Workspace    *struct {
		Members []string `toml:"members" yaml:"members"`
	} `toml:"workspace" yaml:"workspace"`
}

type manifestPackage struct {
	Name        string         `toml:"name" yaml:"name"`
	Version     string         `toml:"version" yaml:"version"`
	Authors     []string       `toml:"authors" yaml:"authors"`
	Homepage    string         `toml:"homepage" yaml:"homepage"`
	Description string         `toml:"description" yaml:"description"`
	Metadata    map[string]any `toml:"metadata" yaml:"metadata"`
}

// FindManifest returns the quark manifest in dir, if any
func FindManifest(dir string) (string, bool) {
	for _, name := range ManifestNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func parseManifest(path string) (*manifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read manifest %s", path)
	}

	var mf manifestFile
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &mf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &mf)
	default:
		return nil, errors.Newf(errors.ErrManifestLoad, "unsupported manifest format: %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}
	return &mf, nil
}

// LoadManifestMetadata reads the quark manifest in dir, and those of its
// workspace members, into Metadata. The root manifest's package (if it
// declares one) is the root package and the first workspace member.
func LoadManifestMetadata(dir string) (*Metadata, error) {
	path, ok := FindManifest(dir)
	if !ok {
		return nil, errors.Newf(errors.ErrManifestLoad, "no quark manifest (%v) in %s", ManifestNames, dir).
			WithDetail("dir", dir)
	}
	root, err := parseManifest(path)
	if err != nil {
		return nil, err
	}

	md := &Metadata{WorkspaceRoot: dir}
	if root.Package != nil {
		pkg := root.toPackage(path)
		md.Packages = append(md.Packages, pkg)
		md.WorkspaceMembers = append(md.WorkspaceMembers, pkg.ID)
		md.Root = pkg.ID
	}

	if root.Workspace != nil {
		for _, member := range root.Workspace.Members {
			memberDir := filepath.Join(dir, member)
			memberPath, ok := FindManifest(memberDir)
			if !ok {
				return nil, errors.Newf(errors.ErrManifestLoad, "workspace member %s has no quark manifest", member).
					WithDetail("member", member)
			}
			mf, err := parseManifest(memberPath)
			if err != nil {
				return nil, err
			}
			if mf.Package == nil {
				return nil, errors.Newf(errors.ErrManifestLoad, "workspace member %s has no [package] table", member).
					WithDetail("member", member)
			}
			pkg := mf.toPackage(memberPath)
			md.Packages = append(md.Packages, pkg)
			md.WorkspaceMembers = append(md.WorkspaceMembers, pkg.ID)
		}
	}

	return md, nil
}

func (mf *manifestFile) toPackage(manifestPath string) Package {
	p := mf.Package
	return Package{
		ID:           fmt.Sprintf("%s %s (%s)", p.Name, p.Version, filepath.Dir(manifestPath)),
		Name:         p.Name,
		Version:      p.Version,
		Authors:      p.Authors,
		Homepage:     p.Homepage,
		Description:  p.Description,
		Dependencies: dependencies(mf.Dependencies),
		Metadata:     p.Metadata,
		ManifestPath: manifestPath,
	}
}

// dependencies accepts both `name = "req"` and `name = { version = "req" }`
func dependencies(table map[string]any) []Dependency {
	if len(table) == 0 {
		return nil
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		dep := Dependency{Name: name}
		switch v := table[name].(type) {
		case string:
			dep.Req = v
		case map[string]any:
			if req, ok := v["version"].(string); ok {
				dep.Req = req
			}
		}
		deps = append(deps, dep)
	}
	return deps
}
