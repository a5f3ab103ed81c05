package api

import (
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
)

// TokenFromEnv returns GITHUB_TOKEN, falling back to GH_TOKEN.
// An empty result means requests go out anonymously.
func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GH_TOKEN"))
}

// ResolveToken returns the environment token, or the credentials stored by
// the gh CLI for host when the environment has none.
func ResolveToken(host string) (token, source string) {
	if tok := TokenFromEnv(); tok != "" {
		return tok, "environment"
	}
	if host == "" {
		host = DefaultHost
	}
	return auth.TokenForHost(host)
}
