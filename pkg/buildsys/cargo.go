package buildsys

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
)

// Cargo drives a Rust project through cargo
type Cargo struct {
	dir    string
	runner Runner
	logger zerolog.Logger
}

// NewCargo creates a Cargo build system for the project in dir
func NewCargo(dir string, runner Runner) *Cargo {
	return &Cargo{
		dir:    dir,
		runner: runner,
		logger: logging.GetLogger("buildsys.cargo"),
	}
}

// Name implements BuildSystem
func (c *Cargo) Name() string { return "cargo" }

func (c *Cargo) command() string {
	if cargo := os.Getenv("CARGO"); cargo != "" {
		return cargo
	}
	return "cargo"
}

// Build implements BuildSystem
func (c *Cargo) Build(ctx context.Context, req BuildRequest) error {
	profile := req.Profile
	if profile == "" {
		profile = "release"
	}
	args := []string{"build", "--profile", profile, "--quiet"}
	if req.Target != "" {
		args = append(args, "--target", req.Target)
	}
	if req.Features != "" {
		args = append(args, "--features", req.Features)
	}
	if req.Binary != "" {
		args = append(args, "--bin", req.Binary)
	}

	cmd := Command{Name: c.command(), Args: args, Dir: c.dir, Stream: true}
	c.logger.Info().Str("command", cmd.String()).Msg("Building project")
	result, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBuildFailed, "failed to run %s", c.command())
	}
	if !result.Success() {
		return errors.Newf(errors.ErrBuildFailed, "failed to build project in the %s profile", profile).
			WithDetail("exitCode", result.ExitCode).
			WithDetail("profile", profile).
			WithDetail("command", cmd.String())
	}
	return nil
}

type cargoMetadata struct {
	Packages         []cargoPackage `json:"packages"`
	WorkspaceMembers []string       `json:"workspace_members"`
	WorkspaceRoot    string         `json:"workspace_root"`
	TargetDirectory  string         `json:"target_directory"`
	Resolve          *struct {
		Root *string `json:"root"`
	} `json:"resolve"`
}

type cargoPackage struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Authors      []string       `json:"authors"`
	Homepage     *string        `json:"homepage"`
	Description  *string        `json:"description"`
	ManifestPath string         `json:"manifest_path"`
	Metadata     map[string]any `json:"metadata"`
	Dependencies []struct {
		Name string `json:"name"`
		Req  string `json:"req"`
	} `json:"dependencies"`
}

func (c *Cargo) metadata(ctx context.Context, noDeps bool) (*cargoMetadata, error) {
	args := []string{"metadata", "--format-version", "1",
		"--manifest-path", filepath.Join(c.dir, "Cargo.toml")}
	if noDeps {
		args = append(args, "--no-deps")
	}

	result, err := c.runner.Run(ctx, Command{Name: c.command(), Args: args, Dir: c.dir})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to run %s metadata", c.command())
	}
	if !result.Success() {
		return nil, errors.Newf(errors.ErrManifestLoad, "%s metadata failed: %s",
			c.command(), strings.TrimSpace(result.Stderr)).
			WithDetail("exitCode", result.ExitCode)
	}

	var md cargoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &md); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "failed to parse cargo metadata")
	}
	return &md, nil
}

// Metadata implements BuildSystem
func (c *Cargo) Metadata(ctx context.Context) (*Metadata, error) {
	raw, err := c.metadata(ctx, false)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		WorkspaceRoot:    raw.WorkspaceRoot,
		TargetDirectory:  raw.TargetDirectory,
		WorkspaceMembers: raw.WorkspaceMembers,
	}
	rootManifest := filepath.Join(raw.WorkspaceRoot, "Cargo.toml")
	for _, p := range raw.Packages {
		pkg := Package{
			ID:           p.ID,
			Name:         p.Name,
			Version:      p.Version,
			Authors:      p.Authors,
			Homepage:     deref(p.Homepage),
			Description:  deref(p.Description),
			Metadata:     p.Metadata,
			ManifestPath: p.ManifestPath,
		}
		for _, d := range p.Dependencies {
			pkg.Dependencies = append(pkg.Dependencies, Dependency{Name: d.Name, Req: d.Req})
		}
		md.Packages = append(md.Packages, pkg)

		if md.Root == "" && p.ManifestPath == rootManifest {
			md.Root = p.ID
		}
	}
	if raw.Resolve != nil && raw.Resolve.Root != nil {
		md.Root = *raw.Resolve.Root
	}

	c.logger.Debug().
		Str("workspaceRoot", md.WorkspaceRoot).
		Int("packages", len(md.Packages)).
		Int("members", len(md.WorkspaceMembers)).
		Msg("Loaded cargo metadata")
	return md, nil
}

// TargetDirectory implements BuildSystem
func (c *Cargo) TargetDirectory(ctx context.Context) (string, error) {
	raw, err := c.metadata(ctx, true)
	if err != nil {
		return "", err
	}
	if raw.TargetDirectory == "" {
		return "", errors.New(errors.ErrManifestLoad, "cargo metadata reported no target directory")
	}
	return raw.TargetDirectory, nil
}

// ProfileDir implements BuildSystem. Cargo's dev and test profiles share
// the debug directory.
func (c *Cargo) ProfileDir(profile string) string {
	switch profile {
	case "dev", "test":
		return "debug"
	case "bench":
		return "release"
	case "":
		return "release"
	}
	return profile
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
