package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rubrical-studios/booklore-sync/internal/defaults"
	"gopkg.in/yaml.v3"
)

// Config represents the .booklore-sync.yml configuration file
type Config struct {
	Upstream Upstream `yaml:"upstream"`
	Files    Files    `yaml:"files"`
}

// Upstream identifies the repository whose latest release is tracked
type Upstream struct {
	Repo string `yaml:"repo"`
	Host string `yaml:"host,omitempty"`
}

// Files lists the add-on files that record the packaged version.
// Paths are relative to the add-on root.
type Files struct {
	Build      string `yaml:"build"`
	Config     string `yaml:"config"`
	Docs       string `yaml:"docs"`
	Readme     string `yaml:"readme"`
	Dockerfile string `yaml:"dockerfile"`
}

// ConfigFileName is the default configuration file name
const ConfigFileName = ".booklore-sync.yml"

// ErrNoConfigFile is returned by FindConfigFile when no config file exists
var ErrNoConfigFile = errors.New("no " + ConfigFileName + " found")

// Default returns the configuration built from the embedded defaults
func Default() *Config {
	d := defaults.MustLoad()
	return &Config{
		Upstream: Upstream{
			Repo: d.Upstream.Repo,
			Host: d.Upstream.Host,
		},
		Files: Files{
			Build:      d.Files.Build,
			Config:     d.Files.Config,
			Docs:       d.Files.Docs,
			Readme:     d.Files.Readme,
			Dockerfile: d.Files.Dockerfile,
		},
	}
}

// Load reads a configuration file from the given path. Keys absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadFromDirectory finds and loads the config file for the given directory.
// When no config file exists in dir or any parent, the defaults are returned.
func LoadFromDirectory(dir string) (*Config, error) {
	configPath, err := FindConfigFile(dir)
	if errors.Is(err, ErrNoConfigFile) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(configPath)
}

// FindConfigFile searches for .booklore-sync.yml starting from dir and walking up
// the directory tree until found or filesystem root is reached.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNoConfigFile, startDir)
		}
		dir = parent
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Supported environment variables:
//   - BOOKLORE_SYNC_REPO: overrides upstream.repo
func (c *Config) ApplyEnvOverrides() {
	if repo := strings.TrimSpace(os.Getenv("BOOKLORE_SYNC_REPO")); repo != "" {
		c.Upstream.Repo = repo
	}
}

// Validate checks that required configuration fields are present
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Upstream.Repo) == "" {
		return fmt.Errorf("upstream.repo is required")
	}

	for _, f := range []struct {
		key  string
		path string
	}{
		{"files.build", c.Files.Build},
		{"files.config", c.Files.Config},
		{"files.docs", c.Files.Docs},
		{"files.readme", c.Files.Readme},
		{"files.dockerfile", c.Files.Dockerfile},
	} {
		if f.path == "" {
			return fmt.Errorf("%s is required", f.key)
		}
		if !filepath.IsLocal(filepath.FromSlash(f.path)) {
			return fmt.Errorf("%s must be a relative path inside the add-on root, got %q", f.key, f.path)
		}
	}

	return nil
}

// Save writes the configuration back to the given path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
