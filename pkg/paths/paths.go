package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/quark/pkg/errors"
)

// Environment variable names
const (
	EnvProjectRoot = "QUARK_PROJECT_ROOT"
	EnvConfigDir   = "QUARK_CONFIG_DIR"
	EnvStateDir    = "QUARK_STATE_DIR"
	EnvCacheDir    = "QUARK_CACHE_DIR"
	EnvHome        = "HOME"
)

const (
	// QuarkDirName is the directory name used under each XDG base directory
	QuarkDirName = "quark"

	// UserConfigFile is the per-user configuration file inside ConfigDir
	UserConfigFile = "config.toml"

	// ProjectConfigFile is the per-project tool configuration file
	ProjectConfigFile = ".quark.toml"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "quark.log"
)

// ManifestFiles are the file names that mark a project root, in lookup order.
var ManifestFiles = []string{"Cargo.toml", "go.mod", "quark.toml", "quark.yaml", "quark.yml"}

// Paths holds the resolved project and user directories
type Paths struct {
	projectRoot  string
	usedFallback bool
	configDir    string
	stateDir     string
	cacheDir     string
}

// New creates a Paths instance. An empty projectRoot triggers discovery:
// QUARK_PROJECT_ROOT, then the nearest ancestor holding a manifest, then the
// working directory (reported through UsedFallback).
func New(projectRoot string) (*Paths, error) {
	p := &Paths{}

	if projectRoot == "" {
		root, usedFallback, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	p.configDir = dirFromEnv(EnvConfigDir, xdg.ConfigHome)
	p.stateDir = dirFromEnv(EnvStateDir, xdg.StateHome)
	p.cacheDir = dirFromEnv(EnvCacheDir, xdg.CacheHome)

	return p, nil
}

func dirFromEnv(envVar, xdgBase string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdgBase, QuarkDirName)
}

func findProjectRoot() (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	if root, ok := FindProjectRoot(cwd); ok {
		return root, false, nil
	}

	return cwd, true, nil
}

// FindProjectRoot walks up from start looking for the first directory that
// contains one of ManifestFiles.
func FindProjectRoot(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		for _, name := range ManifestFiles {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ProjectRoot returns the project root directory
func (p *Paths) ProjectRoot() string {
	return p.projectRoot
}

// UsedFallback returns true if the working directory was used because no
// manifest was found
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the per-user config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the per-user state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// CacheDir returns the per-user cache directory
func (p *Paths) CacheDir() string {
	return p.cacheDir
}

// UserConfigPath returns the path of the per-user config file
func (p *Paths) UserConfigPath() string {
	return filepath.Join(p.configDir, UserConfigFile)
}

// ProjectConfigPath returns the path of the per-project tool config file
func (p *Paths) ProjectConfigPath() string {
	return filepath.Join(p.projectRoot, ProjectConfigFile)
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// DefaultLogFilePath returns the log file location without resolving a
// project root. Logging is configured before any project is discovered.
func DefaultLogFilePath() string {
	return filepath.Join(dirFromEnv(EnvStateDir, xdg.StateHome), LogFileName)
}
