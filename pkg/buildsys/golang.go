package buildsys

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/logging"
)

// Go drives a Go module through the go tool. Package metadata comes from a
// quark manifest next to go.mod; without one, a package named after the
// module path's last element is synthesized.
type Go struct {
	dir    string
	runner Runner
	logger zerolog.Logger
}

// NewGo creates a Go build system for the module in dir
func NewGo(dir string, runner Runner) *Go {
	return &Go{
		dir:    dir,
		runner: runner,
		logger: logging.GetLogger("buildsys.go"),
	}
}

// Name implements BuildSystem
func (g *Go) Name() string { return "go" }

// Build implements BuildSystem. Target is either a GOOS/GOARCH pair
// ("linux/arm64") or a target triple; Features become build tags.
func (g *Go) Build(ctx context.Context, req BuildRequest) error {
	if req.OutputPath == "" {
		return errors.New(errors.ErrInvalidInput, "go build requires an output path")
	}
	args := []string{"build", "-o", req.OutputPath}
	if req.Profile == "release" || req.Profile == "" {
		args = append(args, "-trimpath", "-ldflags", "-s -w")
	}
	if req.Features != "" {
		args = append(args, "-tags", strings.ReplaceAll(req.Features, " ", ","))
	}
	pkg := "."
	if req.Binary != "" {
		pkg = "./cmd/" + req.Binary
	}
	args = append(args, pkg)

	var env []string
	if req.Target != "" {
		goos, goarch := ParseTarget(req.Target)
		if goos != "" {
			env = append(env, "GOOS="+goos)
		}
		if goarch != "" {
			env = append(env, "GOARCH="+goarch)
		}
	}

	cmd := Command{Name: "go", Args: args, Dir: g.dir, Env: env, Stream: true}
	g.logger.Info().Str("command", cmd.String()).Strs("env", env).Msg("Building module")
	result, err := g.runner.Run(ctx, cmd)
	if err != nil {
		return errors.Wrap(err, errors.ErrBuildFailed, "failed to run go build")
	}
	if !result.Success() {
		return errors.New(errors.ErrBuildFailed, "go build failed").
			WithDetail("exitCode", result.ExitCode).
			WithDetail("profile", req.Profile).
			WithDetail("command", cmd.String())
	}
	return nil
}

// Metadata implements BuildSystem
func (g *Go) Metadata(ctx context.Context) (*Metadata, error) {
	if _, ok := FindManifest(g.dir); ok {
		return LoadManifestMetadata(g.dir)
	}

	modulePath, err := readModulePath(filepath.Join(g.dir, "go.mod"))
	if err != nil {
		return nil, err
	}
	pkg := Package{
		ID:           modulePath,
		Name:         path.Base(modulePath),
		Homepage:     moduleHomepage(modulePath),
		ManifestPath: filepath.Join(g.dir, "go.mod"),
	}
	g.logger.Debug().Str("module", modulePath).Msg("No quark manifest, using go.mod")
	return &Metadata{
		WorkspaceRoot:    g.dir,
		Packages:         []Package{pkg},
		WorkspaceMembers: []string{pkg.ID},
		Root:             pkg.ID,
	}, nil
}

// TargetDirectory implements BuildSystem
func (g *Go) TargetDirectory(ctx context.Context) (string, error) {
	return filepath.Join(g.dir, "target"), nil
}

// ProfileDir implements BuildSystem
func (g *Go) ProfileDir(profile string) string {
	if profile == "" {
		return "release"
	}
	return profile
}

// readModulePath returns the module directive of a go.mod file
func readModulePath(gomod string) (string, error) {
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrManifestLoad, "failed to read %s", gomod)
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			mod := strings.Trim(strings.TrimSpace(rest), `"`)
			if mod != "" {
				return mod, nil
			}
		}
	}
	return "", errors.Newf(errors.ErrManifestLoad, "no module directive in %s", gomod)
}

// moduleHomepage guesses a homepage for module paths hosted on a forge
func moduleHomepage(modulePath string) string {
	for _, host := range []string{"github.com/", "gitlab.com/", "codeberg.org/"} {
		if strings.HasPrefix(modulePath, host) {
			parts := strings.SplitN(modulePath, "/", 4)
			if len(parts) >= 3 {
				return "https://" + strings.Join(parts[:3], "/")
			}
		}
	}
	return ""
}

// ParseTarget splits a target into GOOS and GOARCH. It accepts "os/arch"
// pairs and LLVM-style triples such as "x86_64-unknown-linux-gnu".
func ParseTarget(target string) (goos, goarch string) {
	if osPart, archPart, ok := strings.Cut(target, "/"); ok {
		return osPart, archPart
	}
	parts := strings.Split(target, "-")
	if len(parts) == 0 {
		return "", ""
	}
	goarch = tripleArch(parts[0])
	for _, p := range parts[1:] {
		switch {
		case p == "linux":
			goos = "linux"
		case p == "windows":
			goos = "windows"
		case p == "darwin" || p == "macos":
			goos = "darwin"
		case strings.HasPrefix(p, "freebsd"):
			goos = "freebsd"
		case p == "netbsd" || p == "openbsd" || p == "android" || p == "wasi" || p == "ios":
			goos = p
		}
	}
	return goos, goarch
}

func tripleArch(arch string) string {
	switch arch {
	case "x86_64":
		return "amd64"
	case "i386", "i586", "i686", "x86":
		return "386"
	case "aarch64", "arm64":
		return "arm64"
	case "armv7", "armv7l", "arm", "armv6":
		return "arm"
	case "riscv64gc", "riscv64":
		return "riscv64"
	case "wasm32":
		return "wasm"
	}
	return arch
}
