package config

import (
	"strings"

	"github.com/arthur-debert/quark/pkg/settings"
)

// Config is quark's resolved tool configuration
type Config struct {
	Build  Build  `koanf:"build" toml:"build"`
	Bundle Bundle `koanf:"bundle" toml:"bundle"`
	Output Output `koanf:"output" toml:"output"`
}

// Build controls how the project binary is produced
type Build struct {
	Tool     string   `koanf:"tool" toml:"tool"`
	Profile  string   `koanf:"profile" toml:"profile"`
	Skip     bool     `koanf:"skip" toml:"skip"`
	Target   string   `koanf:"target" toml:"target"`
	Features []string `koanf:"features" toml:"features"`
}

// Bundle controls what is bundled and where
type Bundle struct {
	PackageType *settings.PackageType `koanf:"package_type" toml:"package_type,omitempty"`
	Binary      string                `koanf:"binary" toml:"binary"`
	OutputDir   string                `koanf:"output_dir" toml:"output_dir"`
}

// Output controls terminal output
type Output struct {
	NoColor bool `koanf:"no_color" toml:"no_color"`
}

// SettingsOptions translates the configuration into settings options
func (c *Config) SettingsOptions() []settings.Option {
	opts := []settings.Option{
		settings.WithBuildTool(c.Build.Tool),
	}
	if c.Build.Profile != "" {
		opts = append(opts, settings.WithProfile(c.Build.Profile))
	}
	if c.Build.Skip {
		opts = append(opts, settings.WithoutBuild())
	}
	if c.Build.Target != "" {
		opts = append(opts, settings.WithTarget(c.Build.Target))
	}
	if len(c.Build.Features) > 0 {
		opts = append(opts, settings.WithFeatures(strings.Join(c.Build.Features, " ")))
	}
	if c.Bundle.PackageType != nil {
		opts = append(opts, settings.WithPackageType(*c.Bundle.PackageType))
	}
	if c.Bundle.Binary != "" {
		opts = append(opts, settings.WithBuildArtifact(settings.BinArtifact(c.Bundle.Binary)))
	}
	if c.Bundle.OutputDir != "" {
		opts = append(opts, settings.WithBundleDir(c.Bundle.OutputDir))
	}
	return opts
}
