// Package files edits small project files on behalf of CLI commands.
package files

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// AppendIgnore ensures the given pattern is present in .gitignore at root.
// It creates the file if missing and terminates an unterminated last line
// before appending. Idempotent.
func AppendIgnore(root, pattern string) error {
	path := filepath.Join(root, ".gitignore")
	existing := map[string]bool{}
	needsNewline := false
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(bytes.NewReader(b))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		needsNewline = len(b) > 0 && b[len(b)-1] != '\n'
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if needsNewline {
		pattern = "\n" + pattern
	}
	_, err = f.WriteString(pattern + "\n")
	return err
}

// ReportPatterns returns one ignore pattern per report extension for a
// report base name.
func ReportPatterns(base string) []string {
	exts := []string{"txt", "json", "md", "html"}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, "/"+base+"."+e)
	}
	return out
}
