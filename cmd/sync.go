package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/joho/godotenv"
	"github.com/rubrical-studios/booklore-sync/internal/api"
	"github.com/rubrical-studios/booklore-sync/internal/config"
	"github.com/rubrical-studios/booklore-sync/internal/output"
	"github.com/rubrical-studios/booklore-sync/internal/tag"
	pkgversion "github.com/rubrical-studios/booklore-sync/internal/version"
	"github.com/rubrical-studios/booklore-sync/internal/versionfile"
	"github.com/spf13/cobra"
)

type syncOptions struct {
	repo       string
	root       string
	configPath string
	dryRun     bool
	envFile    string
	verbose    bool
	apiURL     string
}

// syncDeps holds collaborators that tests replace
type syncDeps struct {
	fetcher api.ReleaseFetcher
	sink    output.Sink
}

func runSync(cmd *cobra.Command, opts *syncOptions, deps *syncDeps) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	root, err := filepath.Abs(opts.root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	cfg, err := loadConfig(root, opts.configPath)
	if err != nil {
		return err
	}

	repoArg := opts.repo
	if repoArg == "" {
		repoArg = cfg.Upstream.Repo
	}
	repo, err := api.ParseRepo(repoArg)
	if err != nil {
		return err
	}
	if isShortRepo(repoArg) && cfg.Upstream.Host != "" {
		repo.Host = cfg.Upstream.Host
	}

	if deps == nil {
		deps = &syncDeps{sink: output.SinkFromEnv()}
	}
	if deps.fetcher == nil {
		token, source := api.ResolveToken(repo.Host)
		if token == "" {
			logger.Debug("no token found, requesting anonymously")
		} else {
			logger.Debug("using token", "source", source)
		}
		deps.fetcher = api.NewReleaseClient(api.ClientOptions{
			Host:      repo.Host,
			BaseURL:   opts.apiURL,
			Token:     token,
			UserAgent: pkgversion.UserAgent(getVersion()),
		})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("fetching latest release", "repo", repo.Owner+"/"+repo.Name, "host", repo.Host)
	release, err := deps.fetcher.LatestRelease(ctx, repo)
	if err != nil {
		return err
	}

	latest := tag.Normalize(release.TagName)
	if !tag.IsSemver(latest) {
		logger.Warn("upstream tag is not a semantic version", "tag", release.TagName)
	}
	logger.Info("latest release", "tag", latest.Prefixed, "name", release.Name)

	updater := versionfile.NewUpdater(versionfile.DefaultTargets(cfg.Files), logger)
	updater.DryRun = opts.dryRun

	result, err := versionfile.Sync(root, cfg.Files, latest, updater)
	if result == nil {
		return err
	}
	syncErr := err

	if result.NoOp {
		logger.Info("no update needed", "version", latest.Prefixed)
	} else if len(result.Changed) == 0 {
		logger.Warn("version differs but no file matched", "previous", result.Previous, "latest", latest.Prefixed)
	}

	if deps.sink != nil {
		if err := deps.sink.Write(output.Pairs(result)); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if err := output.PrintSummary(out, result, colorEnabled(out)); err != nil {
		return err
	}

	return syncErr
}

// loadConfig reads an explicit config file, or searches from root upwards
func loadConfig(root, explicit string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, err = config.LoadFromDirectory(root)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// isShortRepo reports whether s is a bare OWNER/REPO identifier without host
func isShortRepo(s string) bool {
	s = strings.TrimSpace(s)
	return strings.Count(s, "/") == 1 && !strings.Contains(s, ":")
}

// colorEnabled reports whether w is a color-capable terminal
func colorEnabled(w io.Writer) bool {
	if f, ok := w.(*os.File); !ok || f != os.Stdout {
		return false
	}
	return term.FromEnv().IsColorEnabled()
}
