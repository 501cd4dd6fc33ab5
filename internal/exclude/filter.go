package exclude

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/codetree/codetree/internal/ignore"
)

// Reasons reported for paths removed by a PathFilter.
const (
	ReasonExcludePattern = "Matched exclude pattern"
	ReasonIncludePattern = "Not matched by include pattern"
	ReasonGitIgnore      = "Ignored by .gitignore"
)

// PathFilter applies user include/exclude globs and an optional ignore file
// on top of the name-based rule set. A nil filter keeps everything.
type PathFilter struct {
	includes []string
	excludes []string
	ign      ignore.Matcher
}

// NewPathFilter parses comma-separated include and exclude globs. ign may be
// nil.
func NewPathFilter(include, exclude string, ign ignore.Matcher) *PathFilter {
	if ign == nil {
		ign = ignore.None()
	}
	return &PathFilter{
		includes: parseGlobsList(include),
		excludes: parseGlobsList(exclude),
		ign:      ign,
	}
}

// Check reports whether rel (relative to the scan root) is filtered out and
// why. Include globs only constrain files so that directories can still be
// descended into.
func (f *PathFilter) Check(rel string, isDir bool) (string, bool) {
	if f == nil {
		return "", false
	}
	rp := strings.ReplaceAll(rel, "\\", "/")
	if f.ign.Match(rp, isDir) {
		return ReasonGitIgnore, true
	}
	if len(f.excludes) > 0 && matchAnyGlob(rp, f.excludes) {
		return ReasonExcludePattern, true
	}
	if !isDir && len(f.includes) > 0 && !matchAnyGlob(rp, f.includes) {
		return ReasonIncludePattern, true
	}
	return "", false
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
