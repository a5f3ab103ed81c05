package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rubrical-studios/booklore-sync/internal/config"
	"github.com/spf13/cobra"
)

// initOptions holds the command-line options for init
type initOptions struct {
	root  string
	repo  string
	force bool
}

func newInitCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .booklore-sync.yml with the default settings",
		Long: `Initialize booklore-sync configuration by creating a .booklore-sync.yml file
in the add-on root. The file lists the upstream repository and the add-on
files that record the packaged version; edit it to match a custom layout.

Examples:
  # Create the config in the current directory
  booklore-sync init

  # Track a fork instead of the upstream project
  booklore-sync init --repo my-org/booklore`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", ".", "Repository root to write the config file in")
	cmd.Flags().StringVarP(&opts.repo, "repo", "R", "", "Upstream repository (owner/name format)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	path := filepath.Join(opts.root, config.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check existing config: %w", err)
	}

	cfg := config.Default()
	if opts.repo != "" {
		cfg.Upstream.Repo = opts.repo
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
