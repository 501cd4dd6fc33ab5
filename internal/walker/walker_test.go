package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetree/codetree/internal/exclude"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

type recordingSink struct {
	paths []string
	err   error
}

func (s *recordingSink) AddFile(path string) error {
	s.paths = append(s.paths, path)
	return s.err
}

func TestWalk_TreeTextAndOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.txt":          "b",
		"a.txt":          "a",
		"src/main.go":    "package main",
		"src/util/x.go":  "package util",
		"docs/guide.txt": "guide",
	})

	res, err := New(dir, Options{}).Walk(context.Background())
	require.NoError(t, err)

	want := "├── docs/\n" +
		"│   └── guide.txt\n" +
		"├── src/\n" +
		"│   ├── util/\n" +
		"│   │   └── x.go\n" +
		"│   └── main.go\n" +
		"├── a.txt\n" +
		"└── b.txt\n"
	assert.Equal(t, want, res.Tree())
	assert.Equal(t, []string{
		filepath.Join(dir, "docs", "guide.txt"),
		filepath.Join(dir, "src", "util", "x.go"),
		filepath.Join(dir, "src", "main.go"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}, res.Files)
}

func TestWalk_SinkSeesEveryTreeFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.go": "", "pkg/b.go": "", "pkg/c/d.go": ""})

	sink := &recordingSink{}
	res, err := New(dir, Options{Sink: sink}).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Files, sink.paths)
	assert.Len(t, sink.paths, 3)
}

func TestWalk_SinkErrorStopsWalk(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.go": "", "b.go": ""})

	boom := errors.New("boom")
	_, err := New(dir, Options{Sink: &recordingSink{err: boom}}).Walk(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWalk_ExcludedDirsRecordedNotShown(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Cargo.toml":          "[package]",
		"src/lib.rs":          "fn x() {}",
		"target/debug/app":    "binary",
		"target/debug/app.d":  "deps",
		".git/HEAD":           "ref",
		"src/.idea/workspace": "x",
	})
	rules := exclude.Defaults()
	rules.AddProjectDirs("target")

	res, err := New(dir, Options{Rules: rules}).Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "├── src/\n│   └── lib.rs\n└── Cargo.toml\n", res.Tree())
	for _, f := range res.Files {
		assert.NotContains(t, f, "target")
		assert.NotContains(t, f, ".git")
	}

	byPath := map[string]string{}
	for _, d := range res.ExcludedDirs {
		byPath[d.Path] = d.Reason
	}
	assert.Equal(t, "Rust/Java build directory", byPath[filepath.Join(dir, "target")])
	assert.Equal(t, "Base excluded directory", byPath[filepath.Join(dir, ".git")])
	assert.Equal(t, "Base excluded directory", byPath[filepath.Join(dir, "src", ".idea")])

	for _, d := range res.ExcludedDirs {
		if d.Path == filepath.Join(dir, "target") {
			assert.Equal(t, 2, d.FileCount)
		}
	}
}

func TestWalk_ExcludedFilesRecorded(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":  "# hi",
		"yarn.lock":  "lock",
		"index.js":   "x",
		"sub/.env":   "SECRET=1",
		"sub/ok.txt": "ok",
	})

	res, err := New(dir, Options{}).Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "├── sub/\n│   └── ok.txt\n└── index.js\n", res.Tree())
	reasons := map[string]string{}
	for _, f := range res.ExcludedFiles {
		reasons[filepath.Base(f.Path)] = f.Reason
	}
	assert.Equal(t, map[string]string{
		"README.md": "Documentation file",
		"yarn.lock": "Dependency lock file",
		".env":      "Environment configuration file",
	}, reasons)
}

func TestWalk_ExcludedDirNameOnlyAppliesToDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"cache": "a regular file named like a base dir"})

	res, err := New(dir, Options{}).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "└── cache\n", res.Tree())
}

func TestWalk_SkipNames(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"codetree.txt": "old report", "codetree": "bin", "main.go": ""})

	res, err := New(dir, Options{Skip: []string{"codetree", "codetree.txt"}}).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "└── main.go\n", res.Tree())
	assert.Empty(t, res.ExcludedFiles)
}

func TestWalk_SkipNamesApplyToFilesOnly(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"cmd/codetree/main.go": "", "codetree": "bin"})

	res, err := New(dir, Options{Skip: []string{"codetree"}}).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "└── cmd/\n│   └── codetree/\n│   │   └── main.go\n", res.Tree())
	assert.Equal(t, []string{filepath.Join(dir, "cmd", "codetree", "main.go")}, res.Files)
}

func TestWalk_Symlinks(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.go": "package main", "real/x.go": "package real"})
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "main.go"), filepath.Join(dir, "alias.go")))

	sink := &recordingSink{}
	res, err := New(dir, Options{Sink: sink}).Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "├── real/\n│   └── x.go\n├── alias.go\n└── main.go\n", res.Tree())
	assert.Equal(t, res.Files, sink.paths)
	reasons := map[string]string{}
	for _, f := range res.ExcludedFiles {
		reasons[filepath.Base(f.Path)] = f.Reason
	}
	assert.Equal(t, map[string]string{"dangling": ReasonBrokenLink, "linkdir": ReasonDirLink}, reasons)
}

func TestWalk_PathFilter(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.go":        "",
		"main_test.go":   "",
		"notes.txt":      "",
		"gen/out.go":     "",
		"pkg/sub/lib.go": "",
	})
	filter := exclude.NewPathFilter("**/*.go", "**/*_test.go,gen", nil)

	res, err := New(dir, Options{Filter: filter}).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "├── pkg/\n│   └── sub/\n│   │   └── lib.go\n└── main.go\n", res.Tree())

	require.Len(t, res.ExcludedDirs, 1)
	assert.Equal(t, exclude.ReasonExcludePattern, res.ExcludedDirs[0].Reason)
	reasons := map[string]string{}
	for _, f := range res.ExcludedFiles {
		reasons[filepath.Base(f.Path)] = f.Reason
	}
	assert.Equal(t, exclude.ReasonExcludePattern, reasons["main_test.go"])
	assert.Equal(t, exclude.ReasonIncludePattern, reasons["notes.txt"])
}

func TestWalk_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"z/a.txt": "", "a/z.txt": "", "m.txt": "", "B.txt": "", "node_modules/x.js": ""})

	first, err := New(dir, Options{}).Walk(context.Background())
	require.NoError(t, err)
	second, err := New(dir, Options{}).Walk(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWalk_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a/b.txt": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(dir, Options{}).Walk(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalk_MissingRootYieldsEmptyResult(t *testing.T) {
	res, err := New(filepath.Join(t.TempDir(), "nope"), Options{}).Walk(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Tree())
	assert.Empty(t, res.Files)
}

func TestResult_Merge(t *testing.T) {
	var r Result
	r.Merge(Result{Lines: []string{"a"}, Files: []string{"/a"}})
	r.Merge(Result{Lines: []string{"b"}})
	assert.Equal(t, []string{"a", "b"}, r.Lines)
	assert.Equal(t, "a\nb\n", r.Tree())
}
