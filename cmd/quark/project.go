package quark

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/quark/pkg/config"
	"github.com/arthur-debert/quark/pkg/output"
	"github.com/arthur-debert/quark/pkg/paths"
	"github.com/arthur-debert/quark/pkg/settings"
)

// project is what every command working on a project needs: where it is,
// how quark is configured for it and where progress goes.
type project struct {
	paths    *paths.Paths
	config   *config.Config
	renderer *output.Renderer
}

// loadProject resolves the project root and loads the merged configuration.
// overrides are dotted config keys set from command line flags.
func loadProject(cmd *cobra.Command, overrides map[string]interface{}) (*project, error) {
	projectDir, _ := cmd.Flags().GetString("project-dir")
	p, err := paths.New(projectDir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if overrides == nil {
		overrides = map[string]interface{}{}
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		overrides["output.no_color"] = true
	}

	cfg, err := config.Load(
		config.WithUserConfigFile(p.UserConfigPath()),
		config.WithProjectDir(p.ProjectRoot()),
		config.WithOverrides(overrides),
	)
	if err != nil {
		return nil, err
	}

	// config files name output directories relative to the project
	if dir := cfg.Bundle.OutputDir; dir != "" && !filepath.IsAbs(dir) {
		cfg.Bundle.OutputDir = filepath.Join(p.ProjectRoot(), dir)
	}

	proj := &project{
		paths:    p,
		config:   cfg,
		renderer: output.NewRenderer(cmd.ErrOrStderr(), cfg.Output.NoColor),
	}
	if p.UsedFallback() {
		_ = proj.renderer.Warning(fmt.Sprintf(MsgFallbackWarning, p.ProjectRoot()))
	}
	return proj, nil
}

// settingsOptions are the configured options plus the CLI's own: bundle
// the package's binary and report warnings through the renderer.
func (p *project) settingsOptions(extra ...settings.Option) []settings.Option {
	opts := p.config.SettingsOptions()
	opts = append(opts,
		settings.WithMainBinaryFromPackage(),
		settings.WithWarningHandler(func(msg string) {
			_ = p.renderer.Warning(msg)
		}),
	)
	return append(opts, extra...)
}

// flagOverrides maps changed flags to config keys
func flagOverrides(cmd *cobra.Command, keys map[string]string) (map[string]interface{}, error) {
	overrides := map[string]interface{}{}
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		value := f.Value.String()
		if flag == "output-dir" {
			abs, err := filepath.Abs(value)
			if err != nil {
				return nil, fmt.Errorf(MsgErrOutputDir, err)
			}
			value = abs
		}
		overrides[key] = value
	}
	return overrides, nil
}
