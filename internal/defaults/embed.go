// Package defaults provides embedded default configuration for booklore-sync.
package defaults

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultsYAML []byte

// Defaults holds the parsed default configuration.
type Defaults struct {
	Upstream UpstreamDef `yaml:"upstream"`
	Files    FilesDef    `yaml:"files"`
}

// UpstreamDef names the repository whose releases are tracked.
type UpstreamDef struct {
	Repo string `yaml:"repo"`
	Host string `yaml:"host"`
}

// FilesDef holds the add-on files that carry the packaged version,
// relative to the add-on root.
type FilesDef struct {
	Build      string `yaml:"build"`
	Config     string `yaml:"config"`
	Docs       string `yaml:"docs"`
	Readme     string `yaml:"readme"`
	Dockerfile string `yaml:"dockerfile"`
}

// Load parses and returns the embedded defaults.
func Load() (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// MustLoad parses and returns the embedded defaults, panicking on error.
func MustLoad() *Defaults {
	d, err := Load()
	if err != nil {
		panic("failed to load embedded defaults: " + err.Error())
	}
	return d
}
