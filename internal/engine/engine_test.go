package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetree/codetree/internal/detect"
	"github.com/codetree/codetree/internal/report"
	"github.com/codetree/codetree/internal/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func fixedNow() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func rustProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[package]\nname = \"demo\"\n")
	writeFile(t, dir, "src/main.rs", "// entry\nfn main() {\n\n    println!(\"hi\");\n}\n")
	writeFile(t, dir, "target/debug/demo", strings.Repeat("x", 4096))
	writeFile(t, dir, "README.md", "# demo\n")
	return dir
}

func entryByRel(entries []types.FileEntry, rel string) (types.FileEntry, bool) {
	for _, e := range entries {
		if e.RelativePath == rel {
			return e, true
		}
	}
	return types.FileEntry{}, false
}

func TestAnalyze_RustProject(t *testing.T) {
	dir := rustProject(t)

	res, err := Analyze(context.Background(), Config{Root: dir, NoGitInfo: true, Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, []string{detect.TypeRust}, res.ProjectTypes)
	assert.Contains(t, res.Report.ProjectInfo, "Detected Project Types: Rust")
	assert.Contains(t, res.Report.ProjectInfo, "Excluded Content Analysis")

	assert.Contains(t, res.Report.FileTree, "src/")
	assert.Contains(t, res.Report.FileTree, "main.rs")
	assert.NotContains(t, res.Report.FileTree, "target")
	assert.NotContains(t, res.Report.FileTree, "README.md")

	st := res.Report.Statistics
	assert.Equal(t, 2, st.TotalFiles)
	assert.Equal(t, 1, st.FilesByExtension["rs"])
	assert.Equal(t, 1, st.FilesByExtension["toml"])
	assert.Equal(t, 5, st.LinesByExtension["rs"])

	require.Len(t, res.Exclusions.Directories, 1)
	assert.Equal(t, "target", filepath.Base(res.Exclusions.Directories[0].Path))
	assert.Equal(t, 1, res.Exclusions.Directories[0].FileCount)
	require.Len(t, res.Exclusions.Files, 1)
	assert.Equal(t, "README.md", filepath.Base(res.Exclusions.Files[0].Path))

	main, ok := entryByRel(res.Report.Files, "src/main.rs")
	require.True(t, ok)
	require.NotNil(t, main.Content)
	assert.Equal(t, 5, main.LineCount)
	assert.NotEmpty(t, main.Checksum)
	assert.Equal(t, fixedNow(), res.Report.GeneratedAt)
	assert.Equal(t, filepath.Join(dir, "codetree.txt"), res.OutputPath)
}

func TestAnalyze_SensitiveContentWithheld(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env.local", "SECRET=1\n")
	writeFile(t, dir, "config.json", "{\"k\": 1}\n")
	writeFile(t, dir, "main.go", "package main\n")

	res, err := Analyze(context.Background(), Config{Root: dir, NoGitInfo: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Report.Statistics.SensitiveFilesCount)

	for _, rel := range []string{".env.local", "config.json"} {
		e, ok := entryByRel(res.Report.Files, rel)
		require.True(t, ok, rel)
		assert.True(t, e.IsSensitive, rel)
		assert.Nil(t, e.Content, rel)
		assert.Empty(t, e.Checksum, rel)
		assert.Positive(t, e.SizeBytes, rel)
	}
	e, ok := entryByRel(res.Report.Files, "main.go")
	require.True(t, ok)
	assert.False(t, e.IsSensitive)
	require.NotNil(t, e.Content)
	assert.Equal(t, "package main\n", *e.Content)
}

func TestAnalyze_BinaryFileHasNoContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blob.bin", string([]byte{0xff, 0xfe, 0x00, 0x01}))

	res, err := Analyze(context.Background(), Config{Root: dir, NoGitInfo: true})
	require.NoError(t, err)
	e, ok := entryByRel(res.Report.Files, "blob.bin")
	require.True(t, ok)
	assert.Nil(t, e.Content)
	assert.Equal(t, int64(4), e.SizeBytes)
}

func TestAnalyze_Deterministic(t *testing.T) {
	dir := rustProject(t)
	writeFile(t, dir, "src/lib.rs", "pub fn f() {}\n")
	writeFile(t, dir, "docs/a.txt", "a\n")

	cfg := Config{Root: dir, Format: report.FormatJSON, NoGitInfo: true, Now: fixedNow}
	first, err := Analyze(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Analyze(context.Background(), cfg)
	require.NoError(t, err)

	a, err := first.Renderer.Render(first.Report)
	require.NoError(t, err)
	b, err := second.Renderer.Render(second.Report)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAnalyze_GlobsAndProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.txt", "b\n")
	writeFile(t, dir, "gen/c.go", "package gen\n")

	var calls, lastTotal int
	res, err := Analyze(context.Background(), Config{
		Root:         dir,
		IncludeGlobs: "**/*.go",
		ExcludeGlobs: "gen/**",
		NoGitInfo:    true,
		Progress:     func(done, total int) { calls++; lastTotal = total },
	})
	require.NoError(t, err)
	require.Len(t, res.Report.Files, 1)
	assert.Equal(t, "a.go", res.Report.Files[0].RelativePath)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, lastTotal)
}

func TestAnalyze_SymlinksKeepTreeAndStatsInStep(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "real/x.go", "package real\n")
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "linkdir")))

	res, err := Analyze(context.Background(), Config{Root: dir, NoGitInfo: true, Now: fixedNow})
	require.NoError(t, err)

	assert.Len(t, res.Report.Files, res.Report.Statistics.TotalFiles)
	assert.Len(t, res.Records, 2)
	assert.NotContains(t, res.Report.FileTree, "dangling")
	assert.NotContains(t, res.Report.FileTree, "linkdir")
	_, ok := res.Report.Statistics.FilesByExtension[types.NoExtension]
	assert.False(t, ok)
	assert.Len(t, res.Exclusions.Files, 2)
}

func TestAnalyze_MissingRoot(t *testing.T) {
	_, err := Analyze(context.Background(), Config{Root: filepath.Join(t.TempDir(), "nope"), NoGitInfo: true})
	assert.Error(t, err)
}

func TestAnalyze_UnknownFormat(t *testing.T) {
	_, err := Analyze(context.Background(), Config{Root: t.TempDir(), Format: "pdf"})
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestAnalyze_Canceled(t *testing.T) {
	dir := rustProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Analyze(ctx, Config{Root: dir, NoGitInfo: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_WritesReportAndSkipsIt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")

	cfg := Config{Root: dir, Format: report.FormatMarkdown, OutputName: "out", NoGitInfo: true}
	res, out, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "out.md", filepath.Base(res.OutputPath))
	written, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, out, written)

	// The previous report must not show up in the next run.
	res, _, err = Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotContains(t, res.Report.FileTree, "out.md")
	assert.Len(t, res.Report.Files, 1)
}

func TestOutputPath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "report")
	p, r, err := OutputPath(Config{Root: "/elsewhere", Format: report.FormatHTML, OutputName: abs})
	require.NoError(t, err)
	assert.Equal(t, abs+".html", p)
	assert.Equal(t, "html", r.Extension())
}

func TestWriteReport_ReplacesExisting(t *testing.T) {
	p := filepath.Join(t.TempDir(), "codetree.txt")
	require.NoError(t, os.WriteFile(p, []byte("old content that is longer"), 0o644))
	require.NoError(t, WriteReport(p, []byte("new")))
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteReport_Failure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "codetree.txt")
	err := WriteReport(p, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write report")
}
