// Package versionfile reads and rewrites the version recorded in the add-on's
// tracked files.
package versionfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rubrical-studios/booklore-sync/internal/tag"
)

// Updater applies targets to files under a root directory
type Updater struct {
	Targets []Target

	// DryRun reports what would change without writing
	DryRun bool

	Logger *log.Logger
}

// NewUpdater creates an Updater for targets that logs to logger.
// A nil logger discards output.
func NewUpdater(targets []Target, logger *log.Logger) *Updater {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Updater{Targets: targets, Logger: logger}
}

// Apply rewrites every target to reference t and returns the paths whose
// content changed, in target order. Targets are independent: a missing file
// is skipped and a failing one does not stop the rest. Failures are joined
// into the returned error alongside the files that did change.
func (u *Updater) Apply(root string, t tag.Tag) ([]string, error) {
	changed := []string{}
	var errs []error

	for _, target := range u.Targets {
		ok, err := u.applyTarget(root, target, t)
		if err != nil {
			u.Logger.Error("update failed", "file", target.Path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", target.Path, err))
			continue
		}
		if ok {
			changed = append(changed, target.Path)
		}
	}

	return changed, errors.Join(errs...)
}

// applyTarget reports whether the target file's content changed. Content is
// compared and saved with LF line endings; a file whose only difference is
// CRLF endings is left as is.
func (u *Updater) applyTarget(root string, target Target, t tag.Tag) (bool, error) {
	filePath := filepath.Join(root, filepath.FromSlash(target.Path))

	info, err := os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		u.Logger.Debug("skipping missing file", "file", target.Path)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return false, err
	}

	original := normalizeNewlines(string(data))
	updated := original
	for _, rule := range target.Rules {
		var n int
		updated, n = rule.apply(updated, t)
		if n == 0 {
			u.Logger.Debug("pattern not found", "file", target.Path, "rule", rule.Name)
		}
	}

	if updated == original {
		u.Logger.Debug("already current", "file", target.Path)
		return false, nil
	}

	if u.DryRun {
		u.Logger.Info("would update", "file", target.Path, "version", t.Prefixed)
		return true, nil
	}

	if err := os.WriteFile(filePath, []byte(updated), info.Mode().Perm()); err != nil {
		return false, err
	}
	u.Logger.Info("updated", "file", target.Path, "version", t.Prefixed)

	return true, nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
