package versionfile

import (
	"path"
	"regexp"
	"strings"

	"github.com/rubrical-studios/booklore-sync/internal/config"
	"github.com/rubrical-studios/booklore-sync/internal/tag"
)

// Rule rewrites the version inside every match of Pattern. Render builds the
// full replacement for one match from its named groups.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Render  func(m Match, t tag.Tag) string
}

// Target is one add-on file and the rules applied to it, in order
type Target struct {
	Path  string
	Rules []Rule
}

// Match exposes the named groups of a single pattern match
type Match struct {
	re     *regexp.Regexp
	groups []string
}

// Group returns the text captured by the named group, or "" if it did not participate
func (m Match) Group(name string) string {
	i := m.re.SubexpIndex(name)
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// apply rewrites content and reports how many matches were rendered
func (r Rule) apply(content string, t tag.Tag) (string, int) {
	locs := r.Pattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content, 0
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(content[last:loc[0]])

		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = content[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(r.Render(Match{re: r.Pattern, groups: groups}, t))
		last = loc[1]
	}
	b.WriteString(content[last:])

	return b.String(), len(locs)
}

var (
	buildRefRule = Rule{
		Name:    "build ref",
		Pattern: regexp.MustCompile(`(?m)^(?P<pre>[ \t]*BOOKLORE_REF:[ \t]*)(?P<open>["']?)[vV]?` + versionish + `(?P<close>["']?)(?P<post>` + lineTail + `)$`),
		Render: func(m Match, t tag.Tag) string {
			lq, rq := m.Group("open"), m.Group("close")
			if lq == "" && rq == "" {
				lq, rq = `"`, `"`
			}
			return m.Group("pre") + lq + t.Prefixed + rq + m.Group("post")
		},
	}

	// configVersionRule is anchored at column 0 so nested keys and other
	// version-shaped fields such as homeassistant: are never touched.
	configVersionRule = Rule{
		Name:    "config version",
		Pattern: regexp.MustCompile(`(?m)^(?P<pre>version:[ \t]*)(?P<open>["']?)[vV]?` + versionish + `(?P<close>["']?)(?P<post>` + lineTail + `)$`),
		Render: func(m Match, t tag.Tag) string {
			return m.Group("pre") + m.Group("open") + t.Bare + m.Group("close") + m.Group("post")
		},
	}

	versionPhraseRule = Rule{
		Name:    "version phrase",
		Pattern: regexp.MustCompile(`(?P<pre>\bVersion[ \t]+)[vV]?` + versionish),
		Render: func(m Match, t tag.Tag) string {
			return m.Group("pre") + t.Bare
		},
	}

	// versionBadgeRule matches static badges, whose text escapes "-" as "--"
	// and "_" as "__".
	versionBadgeRule = Rule{
		Name:    "version badge",
		Pattern: regexp.MustCompile(`(?P<pre>badge/[Vv]ersion-)[vV]?\d(?:[0-9A-Za-z.+]|--|__)*(?P<post>-)`),
		Render: func(m Match, t tag.Tag) string {
			return m.Group("pre") + tag.BadgeEscape(t.Bare) + m.Group("post")
		},
	}

	dockerTagRule = Rule{
		Name:    "docker build arg",
		Pattern: regexp.MustCompile(`(?m)^(?P<pre>[ \t]*ARG[ \t]+BOOKLORE_TAG=)(?P<open>["']?)[vV]?` + versionish + `(?P<close>["']?)(?P<post>` + lineTail + `)$`),
		Render: func(m Match, t tag.Tag) string {
			return m.Group("pre") + m.Group("open") + t.Prefixed + m.Group("close") + m.Group("post")
		},
	}
)

// DefaultTargets returns the add-on files to rewrite, in check order
func DefaultTargets(files config.Files) []Target {
	return []Target{
		{Path: path.Clean(files.Build), Rules: []Rule{buildRefRule}},
		{Path: path.Clean(files.Config), Rules: []Rule{configVersionRule}},
		{Path: path.Clean(files.Docs), Rules: []Rule{versionPhraseRule}},
		{Path: path.Clean(files.Readme), Rules: []Rule{versionPhraseRule, versionBadgeRule}},
		{Path: path.Clean(files.Dockerfile), Rules: []Rule{dockerTagRule}},
	}
}
