// Package tag normalizes upstream release tags into the two spellings the
// packaging files use: "v1.2.3" and "1.2.3".
package tag

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Tag holds both spellings of one release version.
// Prefixed is always "v" + Bare.
type Tag struct {
	Prefixed string
	Bare     string
}

// Normalize derives both spellings from a raw tag. A single leading "v" or "V"
// is stripped case-insensitively; everything after it is kept verbatim.
func Normalize(raw string) Tag {
	bare := strings.TrimSpace(raw)
	if len(bare) > 0 && (bare[0] == 'v' || bare[0] == 'V') {
		bare = bare[1:]
	}
	return Tag{Prefixed: "v" + bare, Bare: bare}
}

// String returns the prefixed spelling.
func (t Tag) String() string {
	return t.Prefixed
}

// IsZero reports whether the tag carries no version.
func (t Tag) IsZero() bool {
	return t.Bare == ""
}

// IsSemver reports whether the tag is a valid semantic version.
// Only used for diagnostics; tags are never ordered.
func IsSemver(t Tag) bool {
	return semver.IsValid(t.Prefixed)
}

// BadgeEscape escapes text for a shields.io static badge path segment,
// where "-" and "_" are separators and must be doubled.
func BadgeEscape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	return strings.ReplaceAll(s, "_", "__")
}
