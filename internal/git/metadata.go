// Package git reads repository metadata for the project being analyzed.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Metadata describes the repository containing a project root. Fields are
// empty when unknown.
type Metadata struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// String renders a one-line summary, or "" when nothing is known.
func (m Metadata) String() string {
	if m.Commit == "" && m.Repo == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("Git Repository:")
	if m.Repo != "" {
		b.WriteString(" " + m.Repo)
	}
	if m.Branch != "" {
		b.WriteString(" on " + m.Branch)
	}
	if m.Commit != "" {
		b.WriteString(" @ " + shortHash(m.Commit))
	}
	return b.String()
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

// validateRoot validates and normalizes a repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}

	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}

	return abs, nil
}

// RepoMetadata returns repository metadata best-effort for root, searching
// parent directories for the repository. The zero value is returned when
// root is not inside a repository.
func RepoMetadata(root string) Metadata {
	validRoot, err := validateRoot(root)
	if err != nil {
		return Metadata{}
	}
	r, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Metadata{}
	}

	var m Metadata
	if rem, err := r.Remote("origin"); err == nil {
		if urls := rem.Config().URLs; len(urls) > 0 {
			m.Repo = shortRepo(urls[0])
		}
	}
	if head, err := r.Head(); err == nil {
		m.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			m.Branch = head.Name().Short()
		} else {
			m.Branch = "HEAD"
		}
	}
	return m
}

// shortRepo reduces a remote URL to owner/name when possible.
func shortRepo(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i:], "//") {
		s = s[i+1:]
	}
	return s
}
