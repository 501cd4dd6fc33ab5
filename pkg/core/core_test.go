package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Smoke(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("# app\nprint(1)\n"), 0o644))

	rep, err := Analyze(context.Background(), Config{Root: dir, NoGitInfo: true})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Statistics.TotalFiles)
	assert.Equal(t, 1, rep.Statistics.CommentLines)
	assert.NoFileExists(t, filepath.Join(dir, "codetree.txt"))
}

func TestMarshalUnmarshalReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644))
	rep, err := Analyze(context.Background(), Config{Root: dir, NoGitInfo: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, MarshalReport(&buf, rep))
	back, err := UnmarshalReport(&buf)
	require.NoError(t, err)
	require.Len(t, back.Files, 1)
	require.NotNil(t, back.Files[0].Content)
	assert.Equal(t, "hello\n", *back.Files[0].Content)
	assert.Equal(t, rep.FileTree, back.FileTree)
}

func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello\n"), 0o644))
	path, err := Run(context.Background(), Config{Root: dir, Format: FormatHTML, NoGitInfo: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "codetree.html"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "a.txt")
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(&Report{}, "pdf")
	assert.Error(t, err)
}
