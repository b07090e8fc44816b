package buildsys

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
)

// Prebuilt bundles a binary produced outside quark. It reads metadata from
// the quark manifest and its Build only checks that the binary exists.
type Prebuilt struct {
	dir string
}

// NewPrebuilt creates a Prebuilt build system for the project in dir
func NewPrebuilt(dir string) *Prebuilt {
	return &Prebuilt{dir: dir}
}

// Name implements BuildSystem
func (p *Prebuilt) Name() string { return "prebuilt" }

// Build implements BuildSystem
func (p *Prebuilt) Build(ctx context.Context, req BuildRequest) error {
	if req.OutputPath == "" {
		return nil
	}
	info, err := os.Stat(req.OutputPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBuildFailed, "prebuilt binary %s not found", req.OutputPath).
			WithDetail("path", req.OutputPath)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrBuildFailed, "prebuilt binary %s is a directory", req.OutputPath)
	}
	logger := logging.GetLogger("buildsys.prebuilt")
	logger.Debug().Str("path", req.OutputPath).Msg("Using prebuilt binary")
	return nil
}

// Metadata implements BuildSystem
func (p *Prebuilt) Metadata(ctx context.Context) (*Metadata, error) {
	return LoadManifestMetadata(p.dir)
}

// TargetDirectory implements BuildSystem
func (p *Prebuilt) TargetDirectory(ctx context.Context) (string, error) {
	return filepath.Join(p.dir, "target"), nil
}

// ProfileDir implements BuildSystem
func (p *Prebuilt) ProfileDir(profile string) string {
	if profile == "" {
		return "release"
	}
	return profile
}
