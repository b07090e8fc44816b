package quark

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Bundle compiled applications for macOS, Linux and Windows"
	MsgBundleShort      = "Build the project and write application bundles"
	MsgCategoriesShort  = "List application categories or classify a value"
	MsgResourcesShort   = "Show the icon and resource files a bundle will contain"
	MsgConfigShort      = "Inspect quark's configuration"
	MsgConfigShowShort  = "Print the merged configuration"
	MsgConfigDefShort   = "Print the built-in defaults"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"
	MsgManShort         = "Generate man pages"
	MsgManLong          = "Man writes one man page per command into the given directory (default: the current directory)."
	MsgTopicsShort      = "Display available documentation topics"
	MsgTopicsLong       = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgConfigShowLong   = "Show prints the configuration after merging defaults, config files, QUARK_ environment variables and flags."
	MsgConfigDefLong    = "Defaults prints the built-in configuration. It is a commented starting point for a config file."
	MsgNoPatterns       = "  (none declared)"
	MsgResourceItem     = "  %s -> %s\n"
	MsgIconItem         = "  %s\n"
	MsgIconsHeader      = "Icons:"
	MsgResourcesHeader  = "Resources:"
	MsgCategoryMatch    = "%q is %s\n"
	MsgCategoryGnome    = "  Linux:  %s\n"
	MsgCategoryOSX      = "  macOS:  %s\n"
	MsgVersionFormat    = "quark version %s\n"
	MsgCommitFormat     = "Commit: %s\n"
	MsgBuiltFormat      = "Built:  %s\n"
	MsgManWritten       = "Wrote man pages to %s\n"
	MsgBundlingFormat   = "%s (%s)"
	MsgHeaderCategory   = "Category"
	MsgHeaderLinux      = "Linux (GNOME)"
	MsgHeaderMacOS      = "macOS (LSApplicationCategoryType)"
	MsgErrNoCommand     = "no command specified"
	MsgErrHelpNotFound  = "help command not found"
	MsgErrInitPaths     = "failed to initialize paths: %w"
	MsgErrOutputDir     = "failed to resolve output directory: %w"
	MsgErrUnknownFormat = "unsupported shell %q"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProjectDir  = "Project directory (default: nearest directory with a manifest)"
	MsgFlagNoColor     = "Disable colored output"
	MsgFlagPackageType = "Package type to produce: osx, deb or msi (default: native to the target)"
	MsgFlagTarget      = "Target triple to build and bundle for"
	MsgFlagFeatures    = "Space or comma separated list of features to build"
	MsgFlagBin         = "Bundle the named binary instead of the package's main one"
	MsgFlagProfile     = "Build profile (default \"release\")"
	MsgFlagNoBuild     = "Bundle an already built binary without building"
	MsgFlagBuildTool   = "Build system: auto, cargo, go or prebuilt"
	MsgFlagOutputDir   = "Directory bundles are written to (default: <profile dir>/bundle)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/bundle-long.txt
	msgBundleLongRaw string
	MsgBundleLong    = strings.TrimSpace(msgBundleLongRaw)

	//go:embed msgs/bundle-example.txt
	msgBundleExampleRaw string
	MsgBundleExample    = strings.TrimRight(msgBundleExampleRaw, "\n")

	//go:embed msgs/categories-long.txt
	msgCategoriesLongRaw string
	MsgCategoriesLong    = strings.TrimSpace(msgCategoriesLongRaw)

	//go:embed msgs/categories-example.txt
	msgCategoriesExampleRaw string
	MsgCategoriesExample    = strings.TrimRight(msgCategoriesExampleRaw, "\n")

	//go:embed msgs/resources-long.txt
	msgResourcesLongRaw string
	MsgResourcesLong    = strings.TrimSpace(msgResourcesLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
