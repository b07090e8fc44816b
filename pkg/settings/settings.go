package settings

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quark/pkg/buildsys"
	"github.com/arthur-debert/quark/pkg/category"
	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/resources"
)

// DefaultProfile is the build profile used when none is configured
const DefaultProfile = "release"

// MissingBundleSectionWarning is reported when no workspace member declares
// bundle metadata
const MissingBundleSectionWarning = "No package in workspace has [package.metadata.bundle] section"

// Settings is the resolved, read-only description of one bundling run
type Settings struct {
	projectDir  string
	pkg         buildsys.Package
	packageType *PackageType
	target      *Target
	features    string
	outDir      string
	bundleDir   string
	artifact    BuildArtifact
	profile     string
	binaryPath  string
	binaryName  string
	bundle      BundleSettings
	hostOS      string
	hostArch    string
	fsys        filesystem.FS
}

type options struct {
	buildSystem   buildsys.BuildSystem
	buildTool     string
	packageType   *PackageType
	target        string
	features      string
	profile       string
	artifact      BuildArtifact
	skipBuild     bool
	executable    func() (string, error)
	binaryFromPkg bool
	bundleDir     string
	hostOS        string
	hostArch      string
	fsys          filesystem.FS
	warn          func(string)
}

// Option configures New
type Option func(*options)

// WithBuildSystem sets the build system instead of detecting one
func WithBuildSystem(bs buildsys.BuildSystem) Option {
	return func(o *options) { o.buildSystem = bs }
}

// WithBuildTool selects the build system by name when none is set with
// WithBuildSystem ("auto", "cargo", "go", "prebuilt").
func WithBuildTool(tool string) Option {
	return func(o *options) { o.buildTool = tool }
}

// WithPackageType bundles only the given package type
func WithPackageType(p PackageType) Option {
	return func(o *options) { o.packageType = &p }
}

// WithTarget cross-compiles for the given target triple
func WithTarget(triple string) Option {
	return func(o *options) { o.target = triple }
}

// WithFeatures passes a feature list to the build
func WithFeatures(features string) Option {
	return func(o *options) { o.features = features }
}

// WithProfile sets the build profile (default "release")
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithBuildArtifact selects the binary to bundle
func WithBuildArtifact(a BuildArtifact) Option {
	return func(o *options) { o.artifact = a }
}

// WithoutBuild skips the build step; the binary must already exist
func WithoutBuild() Option {
	return func(o *options) { o.skipBuild = true }
}

// WithExecutable overrides how the main artifact's binary name is found.
// By default it is the name of the running executable.
func WithExecutable(fn func() (string, error)) Option {
	return func(o *options) { o.executable = fn }
}

// WithMainBinaryFromPackage names the main artifact after the bundle
// package instead of the running executable. Command-line tools bundling
// another project use this.
func WithMainBinaryFromPackage() Option {
	return func(o *options) { o.binaryFromPkg = true }
}

// WithBundleDir sets where backends write bundles (default
// <output dir>/bundle)
func WithBundleDir(dir string) Option {
	return func(o *options) { o.bundleDir = dir }
}

// WithHost overrides the host OS and architecture used when no target is
// set
func WithHost(goos, goarch string) Option {
	return func(o *options) {
		o.hostOS = goos
		o.hostArch = goarch
	}
}

// WithFS sets the filesystem used for resources and bundle output
func WithFS(fsys filesystem.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithWarningHandler receives user-facing warnings raised while resolving
func WithWarningHandler(fn func(string)) Option {
	return func(o *options) { o.warn = fn }
}

// New resolves the settings for the project in projectDir
func New(ctx context.Context, projectDir string, opts ...Option) (*Settings, error) {
	logger := logging.GetLogger("settings")
	o := options{
		profile:    DefaultProfile,
		executable: os.Executable,
		hostOS:     runtime.GOOS,
		hostArch:   runtime.GOARCH,
		fsys:       filesystem.NewOS(),
		warn:       func(string) {},
	}
	for _, opt := range opts {
		opt(&o)
	}

	bs := o.buildSystem
	if bs == nil {
		detected, err := buildsys.Detect(projectDir, o.buildTool, nil)
		if err != nil {
			return nil, err
		}
		bs = detected
	}
	logger.Debug().Str("buildSystem", bs.Name()).Str("project", projectDir).Msg("Resolving settings")

	md, err := bs.Metadata(ctx)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrap(err, errors.ErrManifestLoad, "failed to load project metadata")
		}
		return nil, err
	}

	bundle, pkg, err := findBundlePackage(md, o.warn, logger)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		projectDir:  projectDir,
		pkg:         *pkg,
		packageType: o.packageType,
		features:    o.features,
		artifact:    o.artifact,
		profile:     o.profile,
		bundle:      bundle,
		hostOS:      o.hostOS,
		hostArch:    o.hostArch,
		fsys:        o.fsys,
	}
	if o.target != "" {
		t := ParseTarget(o.target)
		s.target = &t
	}

	s.outDir = resolveOutDir(ctx, bs, projectDir, s.target, o.profile, logger)
	s.bundleDir = o.bundleDir
	if s.bundleDir == "" {
		s.bundleDir = filepath.Join(s.outDir, "bundle")
	}

	s.binaryName, err = s.resolveBinaryName(o)
	if err != nil {
		return nil, err
	}
	s.binaryPath = filepath.Join(s.outDir, s.binaryName)

	// The build runs last: it writes to the binary path, which depends on
	// the resolved metadata and output directory.
	if !o.skipBuild {
		done := logging.LogOperationStart(logger, "build")
		err := bs.Build(ctx, buildsys.BuildRequest{
			Profile:    o.profile,
			Target:     o.target,
			Features:   o.features,
			Binary:     o.artifact.BinName(),
			OutputPath: s.binaryPath,
		})
		done()
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("package", s.pkg.Name).
		Str("binary", s.binaryPath).
		Str("profile", s.profile).
		Msg("Settings resolved")
	return s, nil
}

// findBundlePackage returns the first workspace member with a bundle
// section, or empty settings paired with the root package.
func findBundlePackage(md *buildsys.Metadata, warn func(string), logger zerolog.Logger) (BundleSettings, *buildsys.Package, error) {
	for _, pkg := range md.Members() {
		section, ok := pkg.Section("bundle")
		if !ok {
			continue
		}
		bundle, err := DecodeBundleSettings(section)
		if err != nil {
			if qerr, ok := err.(*errors.QuarkError); ok {
				return bundle, nil, qerr.WithDetail("package", pkg.Name)
			}
			return bundle, nil, err
		}
		logger.Debug().Str("package", pkg.Name).Msg("Found bundle metadata")
		return bundle, pkg, nil
	}

	logger.Warn().Msg(MissingBundleSectionWarning)
	warn(MissingBundleSectionWarning)

	root, ok := md.RootPackage()
	if !ok {
		return BundleSettings{}, nil, errors.New(errors.ErrNoRootPackage, "unable to find root package").
			WithDetail("workspaceRoot", md.WorkspaceRoot)
	}
	return BundleSettings{}, root, nil
}

// resolveOutDir is <target dir>[/<triple>]/<profile dir>, where the target
// dir falls back to <project>/target when the build system cannot say.
func resolveOutDir(ctx context.Context, bs buildsys.BuildSystem, projectDir string, target *Target, profile string, logger zerolog.Logger) string {
	dir, err := bs.TargetDirectory(ctx)
	if err != nil || dir == "" {
		logger.Debug().Err(err).Msg("Target directory query failed, using <project>/target")
		dir = filepath.Join(projectDir, "target")
	}
	if target != nil {
		dir = filepath.Join(dir, target.Triple)
	}
	return filepath.Join(dir, bs.ProfileDir(profile))
}

func (s *Settings) resolveBinaryName(o options) (string, error) {
	if !o.artifact.IsMain() {
		return s.withExeSuffix(o.artifact.BinName()), nil
	}
	if o.binaryFromPkg {
		return s.withExeSuffix(s.pkg.Name), nil
	}
	exe, err := o.executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrBinaryName, "could not determine binary name")
	}
	name := filepath.Base(exe)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", errors.New(errors.ErrBinaryName, "could not determine binary name")
	}
	return name, nil
}

func (s *Settings) withExeSuffix(name string) string {
	if s.targetOS() == "windows" && !strings.HasSuffix(name, ".exe") {
		return name + ".exe"
	}
	return name
}

// targetOS never falls back to the host when a target is set
func (s *Settings) targetOS() string {
	if s.target != nil {
		return s.target.OS
	}
	return s.hostOS
}

// ProjectDir is the directory the project was resolved from. Relative icon
// and resource patterns are resolved against it.
func (s *Settings) ProjectDir() string { return s.projectDir }

// ProjectOutDirectory is where the build places the binary
func (s *Settings) ProjectOutDirectory() string { return s.outDir }

// BundleDirectory is the root under which backends write bundles
func (s *Settings) BundleDirectory() string { return s.bundleDir }

// FS is the filesystem bundling reads sources from and writes bundles to
func (s *Settings) FS() filesystem.FS { return s.fsys }

// Package is the package whose metadata is bundled
func (s *Settings) Package() buildsys.Package { return s.pkg }

// BinaryArch is the architecture of the bundled binary, in GOARCH form
func (s *Settings) BinaryArch() string {
	if s.target != nil && s.target.Arch != "" {
		return s.target.Arch
	}
	return s.hostArch
}

// BinaryName is the file name of the bundled binary
func (s *Settings) BinaryName() string { return s.binaryName }

// BinaryPath is the path of the bundled binary
func (s *Settings) BinaryPath() string { return s.binaryPath }

// PackageTypes returns the explicitly requested package type, or the native
// type(s) of the target OS (the host OS when not cross-compiling). An OS
// without a native type is an ErrUnsupportedOS error, never an empty list.
func (s *Settings) PackageTypes() ([]PackageType, error) {
	if s.packageType != nil {
		return []PackageType{*s.packageType}, nil
	}
	return NativePackageTypes(s.targetOS())
}

// TargetTriple returns the cross-compilation target, if any
func (s *Settings) TargetTriple() (string, bool) {
	if s.target == nil {
		return "", false
	}
	return s.target.Triple, true
}

// Features returns the build feature list, if any
func (s *Settings) Features() (string, bool) {
	return s.features, s.features != ""
}

// BuildArtifact returns the artifact being bundled
func (s *Settings) BuildArtifact() BuildArtifact { return s.artifact }

// BuildProfile returns the build profile name
func (s *Settings) BuildProfile() string { return s.profile }

// BundleName is the declared bundle name, else the package name
func (s *Settings) BundleName() string {
	if s.bundle.Name != nil {
		return *s.bundle.Name
	}
	return s.pkg.Name
}

// BundleIdentifier is the declared identifier; for a secondary binary
// without one it is "<bin>.<package>", and for the main binary "".
func (s *Settings) BundleIdentifier() string {
	if s.bundle.Identifier != nil {
		return *s.bundle.Identifier
	}
	if s.artifact.IsMain() {
		return ""
	}
	return s.artifact.BinName() + "." + s.pkg.Name
}

// IconFiles resolves the declared icon patterns. Directories are errors.
func (s *Settings) IconFiles() *resources.ResourcePaths {
	return resources.New(s.bundle.Icon, false, resources.WithBaseDir(s.projectDir), resources.WithFS(s.fsys))
}

// ResourceFiles resolves the declared resource patterns, walking matched
// directories.
func (s *Settings) ResourceFiles() *resources.ResourcePaths {
	return resources.New(s.bundle.Resources, true, resources.WithBaseDir(s.projectDir), resources.WithFS(s.fsys))
}

// VersionString is the declared bundle version, else the package version
func (s *Settings) VersionString() string {
	if s.bundle.Version != nil {
		return *s.bundle.Version
	}
	return s.pkg.Version
}

// Copyright returns the declared copyright notice, if any
func (s *Settings) Copyright() (string, bool) {
	return deref(s.bundle.Copyright)
}

// AuthorNames returns the package authors
func (s *Settings) AuthorNames() []string { return slices.Clone(s.pkg.Authors) }

// AuthorsCommaSeparated joins the authors, if there are any
func (s *Settings) AuthorsCommaSeparated() (string, bool) {
	if len(s.pkg.Authors) == 0 {
		return "", false
	}
	return strings.Join(s.pkg.Authors, ", "), true
}

// HomepageURL returns the package homepage, or ""
func (s *Settings) HomepageURL() string { return s.pkg.Homepage }

// AppCategory returns the declared category, if any
func (s *Settings) AppCategory() (category.AppCategory, bool) {
	if s.bundle.Category == nil {
		return 0, false
	}
	return *s.bundle.Category, true
}

// ShortDescription is the declared short description, else the package
// description, else ""
func (s *Settings) ShortDescription() string {
	if s.bundle.ShortDescription != nil {
		return *s.bundle.ShortDescription
	}
	return s.pkg.Description
}

// LongDescription returns the declared long description, if any
func (s *Settings) LongDescription() (string, bool) {
	return deref(s.bundle.LongDescription)
}

// DebianDependencies returns the declared Debian package dependencies
func (s *Settings) DebianDependencies() []string { return slices.Clone(s.bundle.DebDepends) }

// LinuxMimeTypes returns the declared MIME types
func (s *Settings) LinuxMimeTypes() []string { return slices.Clone(s.bundle.LinuxMimeTypes) }

// LinuxUseTerminal returns whether the app runs in a terminal, if declared
func (s *Settings) LinuxUseTerminal() (bool, bool) {
	if s.bundle.LinuxUseTerminal == nil {
		return false, false
	}
	return *s.bundle.LinuxUseTerminal, true
}

// LinuxExecArgs returns the declared Exec arguments, if any
func (s *Settings) LinuxExecArgs() (string, bool) {
	return deref(s.bundle.LinuxExecArgs)
}

// OSXFrameworks returns the declared frameworks to embed
func (s *Settings) OSXFrameworks() []string { return slices.Clone(s.bundle.OSXFrameworks) }

// OSXMinimumSystemVersion returns the declared LSMinimumSystemVersion, if
// any
func (s *Settings) OSXMinimumSystemVersion() (string, bool) {
	return deref(s.bundle.OSXMinimumSystemVersion)
}

// OSXURLSchemes returns the declared URL schemes
func (s *Settings) OSXURLSchemes() []string { return slices.Clone(s.bundle.OSXURLSchemes) }

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
