package versionfile

import (
	"fmt"

	"github.com/rubrical-studios/booklore-sync/internal/config"
	"github.com/rubrical-studios/booklore-sync/internal/tag"
)

// Result describes the outcome of one synchronization run
type Result struct {
	Latest tag.Tag

	// Previous is the "v"-prefixed version recorded before the run, or empty
	Previous string

	// Changed lists rewritten files relative to the root, in check order
	Changed []string

	// NoOp is set when Previous already equals the latest tag
	NoOp bool
}

// Sync compares the recorded version with latest and rewrites the add-on
// files when they differ. Only string equality is used; versions are never ordered.
func Sync(root string, files config.Files, latest tag.Tag, u *Updater) (*Result, error) {
	previous, err := ReadPrevious(root, files)
	if err != nil {
		return nil, fmt.Errorf("failed to read recorded version: %w", err)
	}

	result := &Result{Latest: latest, Previous: previous, Changed: []string{}}
	if previous == latest.Prefixed {
		result.NoOp = true
		return result, nil
	}

	changed, err := u.Apply(root, latest)
	result.Changed = changed
	if err != nil {
		return result, fmt.Errorf("failed to update files: %w", err)
	}

	return result, nil
}
