// Package ignore loads .gitignore-style rule files and matches paths
// against them.
package ignore

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Matcher reports whether a path is ignored. Paths are relative to the
// directory holding the rule file, slash or OS separated.
type Matcher interface {
	Match(rel string, isDir bool) bool
}

type none struct{}

func (none) Match(string, bool) bool { return false }

type fileMatcher struct {
	base string
	m    gitignore.IgnoreMatcher
}

func (f fileMatcher) Match(rel string, isDir bool) bool {
	return f.m.Match(filepath.Join(f.base, filepath.FromSlash(rel)), isDir)
}

// None returns a matcher that ignores nothing.
func None() Matcher { return none{} }

// Load parses the rule file at path. A missing file yields a matcher that
// ignores nothing and no error.
func Load(path string) (Matcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return none{}, err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return none{}, nil
		}
		return none{}, err
	}
	base := filepath.Dir(abs)
	m, err := gitignore.NewGitIgnore(abs, base)
	if err != nil {
		return none{}, err
	}
	return fileMatcher{base: base, m: m}, nil
}
