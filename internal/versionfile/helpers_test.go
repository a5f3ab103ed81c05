package versionfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rubrical-studios/booklore-sync/internal/config"
)

const (
	buildYAML = `build_from:
  aarch64: ghcr.io/home-assistant/aarch64-base:3.19
  amd64: ghcr.io/home-assistant/amd64-base:3.19
args:
  BOOKLORE_REF: "v1.2.0"
`
	configYAML = `name: BookLore
version: "1.2.0"
slug: booklore
homeassistant: "1.2.0"
arch:
  - aarch64
  - amd64
`
	docsMD = `# BookLore add-on

Version 1.2.0 of the add-on ships BookLore with an embedded database.
`
	readmeMD = `# Home Assistant Add-on: BookLore

![Version](https://img.shields.io/badge/version-1.2.0-blue.svg)

Version 1.2.0 packages the upstream release of the same name.
`
	dockerfile = `ARG BUILD_FROM
FROM $BUILD_FROM

ARG BOOKLORE_TAG=v1.2.0
RUN echo "building ${BOOKLORE_TAG}"
`
)

// testFiles returns a layout with every file at the fixture root
func testFiles() config.Files {
	return config.Files{
		Build:      "build.yaml",
		Config:     "config.yaml",
		Docs:       "DOCS.md",
		Readme:     "README.md",
		Dockerfile: "Dockerfile",
	}
}

// writeAddon creates a complete add-on fixture at v1.2.0 and returns its root
func writeAddon(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "build.yaml", buildYAML)
	writeFile(t, root, "config.yaml", configYAML)
	writeFile(t, root, "DOCS.md", docsMD)
	writeFile(t, root, "README.md", readmeMD)
	writeFile(t, root, "Dockerfile", dockerfile)
	return root
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}
