// Package version provides the booklore-sync version constant.
// The Version constant is bumped as part of the release workflow.
package version

import "fmt"

// Version is the current booklore-sync version.
const Version = "0.4.0"

// UserAgent returns the User-Agent sent with upstream API requests.
func UserAgent(v string) string {
	if v == "" {
		v = Version
	}
	return fmt.Sprintf("booklore-sync/%s", v)
}
