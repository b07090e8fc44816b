package buildsys

import (
	"context"
)

// BuildSystem is the project's build tool, as seen by the bundler
type BuildSystem interface {
	// Name identifies the implementation ("cargo", "go", "prebuilt")
	Name() string

	// Build compiles the project and blocks until the build finishes.
	// A failed build returns an ErrBuildFailed error carrying the exit status.
	Build(ctx context.Context, req BuildRequest) error

	// Metadata loads the workspace's package metadata
	Metadata(ctx context.Context) (*Metadata, error)

	// TargetDirectory is the configured artifact root, before any
	// target-triple or profile subdirectory.
	TargetDirectory(ctx context.Context) (string, error)

	// ProfileDir maps a build profile to its directory name under the
	// artifact root.
	ProfileDir(profile string) string
}

// BuildRequest describes one build invocation
type BuildRequest struct {
	Profile  string
	Target   string
	Features string
	// Binary restricts the build to one named binary target, if set
	Binary string
	// OutputPath is where the binary must end up, for tools that need to be
	// told (go build -o).
	OutputPath string
}

// Dependency is a declared dependency of a package
type Dependency struct {
	Name string
	Req  string
}

// Package is one package of the workspace
type Package struct {
	ID           string
	Name         string
	Version      string
	Authors      []string
	Homepage     string
	Description  string
	Dependencies []Dependency
	// Metadata is the free-form [package.metadata] table
	Metadata map[string]any
	// ManifestPath is the manifest file the package was read from
	ManifestPath string
}

// Section returns one entry of the package's metadata table, such as
// "bundle".
func (p *Package) Section(name string) (any, bool) {
	if p.Metadata == nil {
		return nil, false
	}
	v, ok := p.Metadata[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Metadata is the result of a workspace metadata query
type Metadata struct {
	WorkspaceRoot   string
	TargetDirectory string
	Packages        []Package
	// WorkspaceMembers lists package IDs in workspace order
	WorkspaceMembers []string
	// Root is the ID of the package at the workspace root, if there is one
	Root string
}

// Package looks a package up by ID
func (m *Metadata) Package(id string) (*Package, bool) {
	for i := range m.Packages {
		if m.Packages[i].ID == id {
			return &m.Packages[i], true
		}
	}
	return nil, false
}

// RootPackage returns the package at the workspace root
func (m *Metadata) RootPackage() (*Package, bool) {
	if m.Root == "" {
		return nil, false
	}
	return m.Package(m.Root)
}

// Members returns the workspace member packages in workspace order
func (m *Metadata) Members() []*Package {
	members := make([]*Package, 0, len(m.WorkspaceMembers))
	for _, id := range m.WorkspaceMembers {
		if p, ok := m.Package(id); ok {
			members = append(members, p)
		}
	}
	return members
}
