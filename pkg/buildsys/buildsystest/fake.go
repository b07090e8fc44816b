// Package buildsystest provides an in-memory buildsys.BuildSystem for tests.
package buildsystest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/buildsys"
	"github.com/arthur-debert/quark/pkg/errors"
)

// Fake is a scriptable BuildSystem. Build records requests and, when
// WriteBinary is set, writes a small file at the request's OutputPath so
// later steps find a binary.
type Fake struct {
	Meta        *buildsys.Metadata
	MetaErr     error
	TargetDir   string
	TargetErr   error
	BuildErr    error
	WriteBinary bool

	Builds []buildsys.BuildRequest
}

// NewFake returns a Fake whose workspace has a single root package
func NewFake(root string, pkg buildsys.Package) *Fake {
	if pkg.ID == "" {
		pkg.ID = pkg.Name
	}
	return &Fake{
		Meta: &buildsys.Metadata{
			WorkspaceRoot:    root,
			Packages:         []buildsys.Package{pkg},
			WorkspaceMembers: []string{pkg.ID},
			Root:             pkg.ID,
		},
		TargetDir:   filepath.Join(root, "target"),
		WriteBinary: true,
	}
}

// Name implements buildsys.BuildSystem
func (f *Fake) Name() string { return "fake" }

// Build implements buildsys.BuildSystem
func (f *Fake) Build(ctx context.Context, req buildsys.BuildRequest) error {
	f.Builds = append(f.Builds, req)
	if f.BuildErr != nil {
		return f.BuildErr
	}
	if f.WriteBinary && req.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0755); err != nil {
			return errors.Wrap(err, errors.ErrBuildFailed, "fake build")
		}
		if err := os.WriteFile(req.OutputPath, []byte("#!/bin/sh\necho fake\n"), 0755); err != nil {
			return errors.Wrap(err, errors.ErrBuildFailed, "fake build")
		}
	}
	return nil
}

// Metadata implements buildsys.BuildSystem
func (f *Fake) Metadata(ctx context.Context) (*buildsys.Metadata, error) {
	if f.MetaErr != nil {
		return nil, f.MetaErr
	}
	return f.Meta, nil
}

// TargetDirectory implements buildsys.BuildSystem
func (f *Fake) TargetDirectory(ctx context.Context) (string, error) {
	if f.TargetErr != nil {
		return "", f.TargetErr
	}
	return f.TargetDir, nil
}

// ProfileDir implements buildsys.BuildSystem
func (f *Fake) ProfileDir(profile string) string {
	if profile == "" {
		return "release"
	}
	return profile
}
