package quark

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/quark/internal/version"
	"github.com/arthur-debert/quark/pkg/backends/deb"
	"github.com/arthur-debert/quark/pkg/backends/msi"
	"github.com/arthur-debert/quark/pkg/backends/osx"
	"github.com/arthur-debert/quark/pkg/category"
	"github.com/arthur-debert/quark/pkg/config"
	"github.com/arthur-debert/quark/pkg/dispatcher"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/logging"
	"github.com/arthur-debert/quark/pkg/resources"
	"github.com/arthur-debert/quark/pkg/settings"
)

// bundleFlagKeys maps bundle command flags to config keys
var bundleFlagKeys = map[string]string{
	"package-type": "bundle.package_type",
	"bin":          "bundle.binary",
	"output-dir":   "bundle.output_dir",
	"target":       "build.target",
	"features":     "build.features",
	"profile":      "build.profile",
	"no-build":     "build.skip",
	"build-tool":   "build.tool",
}

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bundle",
		Short:   MsgBundleShort,
		Long:    MsgBundleLong,
		Example: MsgBundleExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.bundle")

			overrides, err := flagOverrides(cmd, bundleFlagKeys)
			if err != nil {
				return err
			}
			proj, err := loadProject(cmd, overrides)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := settings.New(ctx, proj.paths.ProjectRoot(), proj.settingsOptions()...)
			if err != nil {
				return err
			}

			bundles, err := dispatcher.BundleProject(ctx, s, dispatcher.DefaultRegistry(),
				dispatcher.WithObserver(func(pt settings.PackageType, s *settings.Settings) {
					_ = proj.renderer.Bundling(bundleLabel(pt, s))
				}))
			if err != nil {
				return err
			}

			logger.Info().Strs("bundles", bundles).Msg("Bundling finished")
			return proj.renderer.Finished(bundles)
		},
	}

	cmd.Flags().String("package-type", "", MsgFlagPackageType)
	cmd.Flags().String("target", "", MsgFlagTarget)
	cmd.Flags().String("features", "", MsgFlagFeatures)
	cmd.Flags().String("bin", "", MsgFlagBin)
	cmd.Flags().String("profile", "", MsgFlagProfile)
	cmd.Flags().Bool("no-build", false, MsgFlagNoBuild)
	cmd.Flags().String("build-tool", "", MsgFlagBuildTool)
	cmd.Flags().StringP("output-dir", "o", "", MsgFlagOutputDir)

	_ = cmd.RegisterFlagCompletionFunc("package-type", packageTypeCompletion)
	_ = cmd.RegisterFlagCompletionFunc("build-tool", cobra.FixedCompletions(
		[]string{"auto", "cargo", "go", "prebuilt"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// bundleLabel is the name shown on the "Bundling" line for a package type
func bundleLabel(pt settings.PackageType, s *settings.Settings) string {
	switch pt {
	case settings.OsxBundle:
		return filepath.Base(osx.BundlePath(s))
	case settings.Deb:
		return deb.PackageName(s)
	case settings.WindowsMsi:
		return msi.PackageName(s) + ".wxs"
	default:
		return fmt.Sprintf(MsgBundlingFormat, s.BundleName(), pt.ShortName())
	}
}

func packageTypeCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, pt := range settings.AllPackageTypes() {
		names = append(names, pt.ShortName())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "resources",
		Short:   MsgResourcesShort,
		Long:    MsgResourcesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(cmd, nil)
			if err != nil {
				return err
			}

			s, err := settings.New(cmd.Context(), proj.paths.ProjectRoot(),
				proj.settingsOptions(settings.WithoutBuild())...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, MsgIconsHeader)
			if err := printResources(w, s.IconFiles(), false); err != nil {
				return err
			}
			fmt.Fprintln(w, MsgResourcesHeader)
			return printResources(w, s.ResourceFiles(), true)
		},
	}
}

func printResources(w io.Writer, items *resources.ResourcePaths, withDest bool) error {
	count := 0
	for item := range items.All() {
		if item.Err != nil {
			return item.Err
		}
		count++
		if withDest {
			fmt.Fprintf(w, MsgResourceItem, item.Path, filesystem.ResourceRelPath(item.Path))
		} else {
			fmt.Fprintf(w, MsgIconItem, item.Path)
		}
	}
	if count == 0 {
		fmt.Fprintln(w, MsgNoPatterns)
	}
	return nil
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "categories [value]",
		Short:   MsgCategoriesShort,
		Long:    MsgCategoriesLong,
		Example: MsgCategoriesExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				c, err := category.Classify(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(w, MsgCategoryMatch, args[0], c.Canonical())
				fmt.Fprintf(w, MsgCategoryGnome, c.GnomeDesktopCategories())
				fmt.Fprintf(w, MsgCategoryOSX, c.OSXApplicationCategoryType())
				return nil
			}

			data := pterm.TableData{{MsgHeaderCategory, MsgHeaderLinux, MsgHeaderMacOS}}
			for _, c := range category.All() {
				data = append(data, []string{c.Canonical(), c.GnomeDesktopCategories(), c.OSXApplicationCategoryType()})
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithData(data).
				WithWriter(w).
				Render()
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Long:  MsgConfigShowLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(cmd, nil)
			if err != nil {
				return err
			}
			out, err := toml.Marshal(proj.config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefShort,
		Long:  MsgConfigDefLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
			return err
		},
	})

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Name() != "help" || helpCmd.Run == nil {
				return fmt.Errorf(MsgErrHelpNotFound)
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgVersionFormat, version.Version)
			fmt.Fprintf(w, MsgCommitFormat, version.Commit)
			fmt.Fprintf(w, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		GroupID:               "misc",
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf(MsgErrUnknownFormat, args[0])
		},
	}
}

// ManHeader is the header of quark's man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "QUARK",
		Section: "1",
		Source:  "quark " + version.Version,
		Manual:  "quark manual",
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man [dir]",
		Short:   MsgManShort,
		Long:    MsgManLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}
}
