package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/rubrical-studios/booklore-sync/internal/versionfile"
)

// Output keys consumed by the release workflow
const (
	KeyTagWithV     = "tag_with_v"
	KeyTagNoV       = "tag_no_v"
	KeyPreviousTag  = "previous_tag"
	KeyChangedFiles = "changed_files"
	KeyChanged      = "changed"
)

// Pairs converts a result into pipeline outputs
func Pairs(r *versionfile.Result) []Pair {
	return []Pair{
		{Key: KeyTagWithV, Value: r.Latest.Prefixed},
		{Key: KeyTagNoV, Value: r.Latest.Bare},
		{Key: KeyPreviousTag, Value: r.Previous},
		{Key: KeyChangedFiles, Value: strings.Join(r.Changed, ",")},
		{Key: KeyChanged, Value: strconv.FormatBool(len(r.Changed) > 0)},
	}
}

// summary is the JSON document printed after an update
type summary struct {
	Latest       string   `json:"latest"`
	Previous     *string  `json:"previous"`
	ChangedFiles []string `json:"changed_files"`
}

// PrintSummary writes a plain message for a no-op run, or a JSON summary
// otherwise. An unknown previous version is reported as null.
func PrintSummary(w io.Writer, r *versionfile.Result, colorize bool) error {
	if r.NoOp {
		_, err := fmt.Fprintf(w, "Already up to date at %s\n", r.Latest.Prefixed)
		return err
	}

	s := summary{Latest: r.Latest.Prefixed, ChangedFiles: r.Changed}
	if s.ChangedFiles == nil {
		s.ChangedFiles = []string{}
	}
	if r.Previous != "" {
		previous := r.Previous
		s.Previous = &previous
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	return jsonpretty.Format(w, bytes.NewReader(data), "  ", colorize)
}
