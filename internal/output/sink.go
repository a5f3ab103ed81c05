// Package output reports a sync run to the calling pipeline and to the user.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Pair is one key/value output for the calling pipeline
type Pair struct {
	Key   string
	Value string
}

// Sink receives the key/value outputs of a run
type Sink interface {
	Write(pairs []Pair) error
}

// FileSink appends outputs to a file in the GitHub Actions output format
type FileSink struct {
	Path string
}

// SinkFromEnv returns a FileSink for GITHUB_OUTPUT, or nil when it is unset
func SinkFromEnv() Sink {
	path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT"))
	if path == "" {
		return nil
	}
	return &FileSink{Path: path}
}

// Write appends one "key=value" line per pair. Values spanning several lines
// use the "key<<DELIMITER" form with a random delimiter.
func (s *FileSink) Write(pairs []Pair) error {
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	var b strings.Builder
	for _, p := range pairs {
		if strings.ContainsAny(p.Value, "\r\n") {
			delim := "ghadelimiter_" + uuid.NewString()
			fmt.Fprintf(&b, "%s<<%s\n%s\n%s\n", p.Key, delim, p.Value, delim)
			continue
		}
		fmt.Fprintf(&b, "%s=%s\n", p.Key, p.Value)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
