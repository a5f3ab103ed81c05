package versionfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rubrical-studios/booklore-sync/internal/config"
	"github.com/rubrical-studios/booklore-sync/internal/tag"
)

const (
	// versionish matches a whole dotted version token such as 1.2.0,
	// 1.2.0-rc.1 or 1.3.0.1. Every separator must be followed by an
	// identifier, so a trailing sentence period is not consumed.
	versionish = `\d+\.\d+(?:[.+-][0-9A-Za-z]+)*`

	// lineTail is what may follow a field value before the end of its line
	lineTail = `[ \t]*(?:#[^\r\n]*)?\r?`
)

var (
	// buildRefPattern reads `BOOKLORE_REF: "v1.2.0"` from the build descriptor
	buildRefPattern = regexp.MustCompile(`(?m)^[ \t]*BOOKLORE_REF:[ \t]*["']?([vV]?` + versionish + `)["']?` + lineTail + `$`)

	// configVersionPattern reads the top-level `version: 1.2.0` of the config manifest
	configVersionPattern = regexp.MustCompile(`(?m)^version:[ \t]*["']?([vV]?` + versionish + `)["']?` + lineTail + `$`)
)

// ReadPrevious returns the version currently recorded in the add-on, always
// "v"-prefixed. It checks in order:
//  1. the build descriptor's BOOKLORE_REF field
//  2. the config manifest's top-level version field
//
// Returns empty string if neither file records a version. Missing files are
// treated as carrying no version.
func ReadPrevious(root string, files config.Files) (string, error) {
	// Build descriptor takes precedence
	ref, err := readFirstMatch(filepath.Join(root, filepath.FromSlash(files.Build)), buildRefPattern)
	if err != nil {
		return "", err
	}
	if ref != "" {
		return tag.Normalize(ref).Prefixed, nil
	}

	// Fall back to the config manifest
	ver, err := readFirstMatch(filepath.Join(root, filepath.FromSlash(files.Config)), configVersionPattern)
	if err != nil {
		return "", err
	}
	if ver != "" {
		return tag.Normalize(ver).Prefixed, nil
	}

	return "", nil
}

// readFirstMatch returns the first capture group of pattern in the file at
// path, or empty string if the file is absent or does not match.
func readFirstMatch(path string, pattern *regexp.Regexp) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	m := pattern.FindSubmatch(data)
	if m == nil {
		return "", nil
	}
	return string(m[1]), nil
}
