// Package walker traverses a project one directory level at a time,
// producing tree text, the surviving file list and exclusion records.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codetree/codetree/internal/exclude"
	"github.com/codetree/codetree/internal/sizeprobe"
	"github.com/codetree/codetree/internal/types"
)

// Tree glyphs.
const (
	Branch     = "├── "
	LastBranch = "└── "
	Indent     = "│   "
)

// Reasons recorded for entries that are not readable as regular files.
const (
	ReasonBrokenLink = "Broken symbolic link"
	ReasonDirLink    = "Symbolic link to directory"
	ReasonSpecial    = "Special file"
)

// Sink receives every surviving file as soon as it is visited.
type Sink interface {
	AddFile(path string) error
}

// Options configures a walk.
type Options struct {
	// Rules decides name-based exclusions. Nil means exclude.Defaults().
	Rules *exclude.RuleSet
	// Filter applies user globs and ignore files. May be nil.
	Filter *exclude.PathFilter
	// Skip lists file names that are dropped silently at every level, such as
	// the running executable and the report file. Directories are never
	// skipped by name.
	Skip []string
	// Sink may be nil.
	Sink Sink
}

// Result is what one directory level (and everything below it) produced.
type Result struct {
	Lines         []string
	Files         []string
	ExcludedDirs  []types.ExcludedDir
	ExcludedFiles []types.ExcludedFile
}

// Merge appends o to r, preserving order.
func (r *Result) Merge(o Result) {
	r.Lines = append(r.Lines, o.Lines...)
	r.Files = append(r.Files, o.Files...)
	r.ExcludedDirs = append(r.ExcludedDirs, o.ExcludedDirs...)
	r.ExcludedFiles = append(r.ExcludedFiles, o.ExcludedFiles...)
}

// Tree returns the tree text, one entry per line.
func (r Result) Tree() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// Walker walks a single root.
type Walker struct {
	root string
	opts Options
	skip map[string]bool
}

// New returns a walker for root.
func New(root string, opts Options) *Walker {
	if opts.Rules == nil {
		opts.Rules = exclude.Defaults()
	}
	skip := make(map[string]bool, len(opts.Skip))
	for _, s := range opts.Skip {
		if s != "" {
			skip[s] = true
		}
	}
	return &Walker{root: root, opts: opts, skip: skip}
}

// Walk traverses the root depth-first. Siblings are ordered directories
// first, then by name, so the output is deterministic.
func (w *Walker) Walk(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return w.walkDir(ctx, w.root, 0)
}

type entry struct {
	name  string
	path  string
	isDir bool
}

func (w *Walker) walkDir(ctx context.Context, dir string, depth int) (Result, error) {
	var res Result
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// a partial listing is used as-is; unreadable entries are dropped
	dirEntries, _ := os.ReadDir(dir)

	var kept []entry
	for _, de := range dirEntries {
		name := de.Name()
		e := entry{name: name, path: filepath.Join(dir, name), isDir: de.IsDir()}
		if !e.isDir {
			if w.skip[name] {
				continue
			}
			if reason, ok := irregular(de, e.path); ok {
				res.ExcludedFiles = append(res.ExcludedFiles, types.ExcludedFile{Path: e.path, Reason: reason})
				continue
			}
		}
		if e.isDir {
			if reason, ok := w.dirExcluded(e); ok {
				if size, count, err := sizeprobe.DirSize(e.path); err == nil {
					res.ExcludedDirs = append(res.ExcludedDirs, types.ExcludedDir{Path: e.path, Size: size, FileCount: count, Reason: reason})
				}
				continue
			}
		} else if reason, ok := w.fileExcluded(e); ok {
			if size, err := sizeprobe.Size(e.path); err == nil {
				res.ExcludedFiles = append(res.ExcludedFiles, types.ExcludedFile{Path: e.path, Size: size, Reason: reason})
			}
			continue
		}
		kept = append(kept, e)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].isDir != kept[j].isDir {
			return kept[i].isDir
		}
		return kept[i].name < kept[j].name
	})

	indent := strings.Repeat(Indent, depth)
	for i, e := range kept {
		glyph := Branch
		if i == len(kept)-1 {
			glyph = LastBranch
		}
		if e.isDir {
			res.Lines = append(res.Lines, indent+glyph+e.name+"/")
			sub, err := w.walkDir(ctx, e.path, depth+1)
			res.Merge(sub)
			if err != nil {
				return res, err
			}
			continue
		}
		res.Lines = append(res.Lines, indent+glyph+e.name)
		res.Files = append(res.Files, e.path)
		if w.opts.Sink != nil {
			if err := w.opts.Sink.AddFile(e.path); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// irregular reports entries that must not reach the tree or the Sink. Links
// are resolved: a link to a regular file is kept, links to directories are
// not followed.
func irregular(de fs.DirEntry, path string) (string, bool) {
	mode := de.Type()
	if mode.IsRegular() {
		return "", false
	}
	if mode&fs.ModeSymlink != 0 {
		fi, err := os.Stat(path)
		switch {
		case err != nil:
			return ReasonBrokenLink, true
		case fi.IsDir():
			return ReasonDirLink, true
		case fi.Mode().IsRegular():
			return "", false
		}
	}
	return ReasonSpecial, true
}

func (w *Walker) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (w *Walker) dirExcluded(e entry) (string, bool) {
	if w.opts.Rules.ShouldExcludeDir(e.name) {
		return w.opts.Rules.DirReason(e.name), true
	}
	return w.opts.Filter.Check(w.rel(e.path), true)
}

func (w *Walker) fileExcluded(e entry) (string, bool) {
	if w.opts.Rules.ShouldExcludeFile(e.name) {
		return exclude.FileReason(e.name), true
	}
	return w.opts.Filter.Check(w.rel(e.path), false)
}
