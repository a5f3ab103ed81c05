package cmd

import (
	"io"

	"github.com/charmbracelet/log"
	pkgversion "github.com/rubrical-studios/booklore-sync/internal/version"
	"github.com/spf13/cobra"
)

// version is set by ldflags during goreleaser builds.
// When empty (default), falls back to the source constant in internal/version.
var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.Version
}

func NewRootCommand() *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "booklore-sync",
		Short: "Sync the add-on with the latest BookLore release",
		Long: `booklore-sync checks the latest BookLore release on GitHub and, when it
differs from the version recorded in the add-on, rewrites the add-on files
to reference it. Paths are relative to the repository root:

  booklore/build.yaml   BOOKLORE_REF build argument
  booklore/config.yaml  add-on version
  booklore/DOCS.md      "Version X.Y.Z" phrase
  booklore/README.md    "Version X.Y.Z" phrase and version badge
  booklore/Dockerfile   BOOKLORE_TAG build argument

Results are appended to $GITHUB_OUTPUT when it is set (tag_with_v,
tag_no_v, previous_tag, changed_files, changed) and summarized on stdout.

Set GITHUB_TOKEN or GH_TOKEN to authenticate the release lookup.

Examples:
  # Sync from the repository root
  booklore-sync

  # Track a fork and preview the changes
  booklore-sync --repo my-org/booklore --dry-run

  # Sync a checkout kept elsewhere
  booklore-sync --root ../addons`,
		Version:      getVersion(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.repo, "repo", "R", "", "Upstream repository (owner/name format, default from config)")
	cmd.Flags().StringVar(&opts.root, "root", ".", "Repository root the file paths are relative to")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: .booklore-sync.yml found from --root upwards)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report changes without writing files")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from a dotenv file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "Override the GitHub REST API root")
	_ = cmd.Flags().MarkHidden("api-url")

	cmd.AddCommand(newInitCommand())

	return cmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

// newLogger returns the stderr logger shared by the commands
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "booklore-sync",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
