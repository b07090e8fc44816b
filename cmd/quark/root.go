package quark

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/quark/internal/version"
	"github.com/arthur-debert/quark/pkg/cobrax/topics"
	"github.com/arthur-debert/quark/pkg/logging"
)

//go:embed topics
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:     "quark",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if noColor || os.Getenv("NO_COLOR") != "" || !stdoutIsTerminal() {
				pterm.DisableStyling()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand: show help but report incorrect usage
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringP("project-dir", "C", "", MsgFlagProjectDir)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBundleCmd())
	rootCmd.AddCommand(newResourcesCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	helpTopics, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, helpTopics, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}
