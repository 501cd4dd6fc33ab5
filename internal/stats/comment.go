package stats

import "strings"

type commentRule struct {
	prefixes []string
	contains []string
}

var (
	cStyle    = commentRule{prefixes: []string{"//", "/*", "*", "*/"}}
	hashStyle = commentRule{prefixes: []string{"#"}}
	markup    = commentRule{prefixes: []string{"<!--"}, contains: []string{"-->"}}
	cssStyle  = commentRule{prefixes: []string{"/*", "*/", "*", "//"}}
)

var commentRules = map[string]commentRule{
	"rs": cStyle, "c": cStyle, "cpp": cStyle, "h": cStyle, "hpp": cStyle,
	"js": cStyle, "jsx": cStyle, "ts": cStyle, "tsx": cStyle,
	"java": cStyle, "cs": cStyle, "go": cStyle, "swift": cStyle,

	"py": hashStyle, "rb": hashStyle, "sh": hashStyle, "bash": hashStyle,
	"yml": hashStyle, "yaml": hashStyle,

	"html": markup, "xml": markup, "svg": markup,

	"css": cssStyle, "scss": cssStyle, "sass": cssStyle,
}

// IsComment reports whether a trimmed, non-empty line looks like a comment
// for files with the given lower-case extension.
func IsComment(trimmed, ext string) bool {
	rule, ok := commentRules[ext]
	if !ok {
		return false
	}
	for _, p := range rule.prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	for _, c := range rule.contains {
		if strings.Contains(trimmed, c) {
			return true
		}
	}
	return false
}
