package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetree/codetree/internal/exclude"
	"github.com/codetree/codetree/internal/types"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"main.go":        "go",
		"/a/b/Main.JAVA": "java",
		"archive.tar.gz": "gz",
		"Makefile":       types.NoExtension,
		".env":           types.NoExtension,
		".env.local":     "local",
		"trailing.":      types.NoExtension,
		"dir.d/noext":    types.NoExtension,
	}
	for in, want := range cases {
		assert.Equal(t, want, Extension(in), in)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\n\n", []string{"a", ""}},
		{"\n", []string{""}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SplitLines(tc.in), "%q", tc.in)
	}
}

func TestIsComment(t *testing.T) {
	cases := []struct {
		line, ext string
		want      bool
	}{
		{"// hi", "go", true},
		{"/* block", "rs", true},
		{"* continued", "java", true},
		{"*/", "ts", true},
		{"x := 1 // trailing", "go", false},
		{"# comment", "py", true},
		{"# heading", "md", false},
		{"#!/bin/sh", "sh", true},
		{"<!-- note", "html", true},
		{"end -->", "xml", true},
		{"<div>", "svg", false},
		{"// not css standard but counted", "scss", true},
		{"/* c */", "css", true},
		{"-- sql", "sql", false},
		{"// anything", types.NoExtension, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsComment(tc.line, tc.ext), "%s %q", tc.ext, tc.line)
	}
}

func TestAddFile_LineClassification(t *testing.T) {
	dir := t.TempDir()
	src := "package main\n\n// comment\n/* block\n * more\n */\nfunc main() {}\r\n   \n"
	p := writeFile(t, dir, "main.go", []byte(src))

	a := New(nil)
	require.NoError(t, a.AddFile(p))
	a.Finalize()

	rec, ok := a.Record(p)
	require.True(t, ok)
	assert.Equal(t, 8, rec.TotalLines)
	assert.Equal(t, 2, rec.BlankLines)
	assert.Equal(t, 4, rec.CommentLines)
	assert.Equal(t, 2, rec.CodeLines)
	assert.True(t, rec.Text)
	assert.Len(t, rec.Checksum, 16)

	s := a.Stats()
	assert.Equal(t, 1, s.TotalFiles)
	assert.Equal(t, 8, s.TotalLines)
	assert.Equal(t, s.TotalLines, s.CodeLines+s.BlankLines+s.CommentLines)
	assert.Equal(t, int64(len(src)), s.TotalContentSizeBytes)
	assert.Equal(t, 8, s.LinesByExtension["go"])
	assert.Equal(t, 1, s.FilesByExtension["go"])
}

func TestAddFile_MissingFileIsNoop(t *testing.T) {
	a := New(nil)
	require.NoError(t, a.AddFile(filepath.Join(t.TempDir(), "gone.txt")))
	a.Finalize()

	s := a.Stats()
	assert.Equal(t, 0, s.TotalFiles)
	assert.Equal(t, int64(0), s.AverageFileSize)
	assert.Empty(t, s.FilesByExtension)
	assert.Empty(t, a.Records())
}

func TestAddFile_BinaryCountsSizeOnly(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "blob.bin", []byte{0xff, 0xfe, 0x00, 0x01, '\n', 0xc3})

	a := New(nil)
	require.NoError(t, a.AddFile(p))

	s := a.Stats()
	assert.Equal(t, 1, s.TotalFiles)
	assert.Equal(t, 1, s.FilesByExtension["bin"])
	assert.Equal(t, 0, s.TotalLines)
	assert.Equal(t, 0, s.LinesByExtension["bin"])
	assert.Equal(t, int64(0), s.TotalContentSizeBytes)
	rec, _ := a.Record(p)
	assert.False(t, rec.Text)
}

func TestAddFile_SensitiveByNameOnly(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", []byte("HARMLESS=1\n"))
	cfg := writeFile(t, dir, "app/config.json", []byte("{}\n"))
	plain := writeFile(t, dir, "notes.txt", []byte("password=hunter2\n"))

	a := New(nil)
	for _, p := range []string{env, cfg, plain} {
		require.NoError(t, a.AddFile(p))
	}

	assert.Equal(t, 2, a.Stats().SensitiveFilesCount)
	assert.True(t, a.IsSensitive(env))
	assert.True(t, a.IsSensitive(cfg))
	assert.False(t, a.IsSensitive(plain))

	rec, _ := a.Record(env)
	assert.Equal(t, types.NoExtension, rec.Extension)
	assert.True(t, rec.Sensitive)
}

func TestAddFile_CustomSensitiveSet(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "id_rsa", []byte("key\n"))
	a := New(exclude.NewSensitiveSet([]string{"id_rsa"}))
	require.NoError(t, a.AddFile(p))
	assert.Equal(t, 1, a.Stats().SensitiveFilesCount)
}

func TestAddFile_LargestBoundedAndSorted(t *testing.T) {
	dir := t.TempDir()
	a := New(nil)
	sizes := map[string]int64{}
	a.size = func(p string) (int64, error) { return sizes[p], nil }

	for i := 0; i < 15; i++ {
		p := writeFile(t, dir, fmt.Sprintf("f%02d.txt", i), []byte("x"))
		sizes[p] = int64((i*7)%15) * 100
		require.NoError(t, a.AddFile(p))
		assert.LessOrEqual(t, len(a.Stats().LargestFiles), MaxLargest)
	}

	largest := a.Stats().LargestFiles
	require.Len(t, largest, MaxLargest)
	for i := 1; i < len(largest); i++ {
		assert.GreaterOrEqual(t, largest[i-1].Size, largest[i].Size)
	}
	assert.Equal(t, int64(1400), largest[0].Size)
	assert.Equal(t, int64(500), largest[9].Size)
}

func TestAddFile_SizeProbeErrorAddsZero(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", []byte("hello\n"))
	a := New(nil)
	a.size = func(string) (int64, error) { return 0, os.ErrPermission }

	require.NoError(t, a.AddFile(p))
	s := a.Stats()
	assert.Equal(t, 1, s.TotalFiles)
	assert.Equal(t, int64(0), s.TotalSizeBytes)
	assert.Equal(t, 1, s.TotalLines)
}

func TestAddFile_ProbedSizeBelowLogicalLength(t *testing.T) {
	dir := t.TempDir()
	content := []byte(strings.Repeat("x", 4096) + "\n")
	p := writeFile(t, dir, "big.log", content)
	a := New(nil)
	a.size = func(string) (int64, error) { return 512, nil }

	require.NoError(t, a.AddFile(p))
	a.Finalize()
	s := a.Stats()
	assert.Equal(t, int64(512), s.TotalSizeBytes)
	assert.Equal(t, int64(512), s.SizeByExtension["log"])
	assert.Equal(t, int64(len(content)), s.TotalContentSizeBytes)
	assert.Equal(t, int64(512), s.AverageFileSize)
	require.Len(t, s.LargestFiles, 1)
	assert.Equal(t, int64(512), s.LargestFiles[0].Size)
}

func TestPerExtensionSumsMatchTotals(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.go":       "package a\n// x\n\n",
		"b.py":       "# c\nprint(1)\n",
		"Makefile":   "all:\n\techo hi\n",
		"c.GO":       "package c\n",
		"img.png":    "\x89PNG\r\n\x1a\n\xff",
		".env.local": "A=1\n",
	}
	a := New(nil)
	for name, content := range files {
		require.NoError(t, a.AddFile(writeFile(t, dir, name, []byte(content))))
	}
	a.Finalize()
	s := a.Stats()

	var files2, lines int
	var size int64
	for _, n := range s.FilesByExtension {
		files2 += n
	}
	for _, n := range s.LinesByExtension {
		lines += n
	}
	for _, n := range s.SizeByExtension {
		size += n
	}
	assert.Equal(t, s.TotalFiles, files2)
	assert.Equal(t, s.TotalLines, lines)
	assert.Equal(t, s.TotalSizeBytes, size)
	assert.Equal(t, s.TotalLines, s.CodeLines+s.BlankLines+s.CommentLines)
	assert.Equal(t, 2, s.FilesByExtension["go"])
	assert.Equal(t, s.TotalSizeBytes/int64(s.TotalFiles), s.AverageFileSize)
}

func TestStats_SnapshotIsIndependent(t *testing.T) {
	dir := t.TempDir()
	a := New(nil)
	require.NoError(t, a.AddFile(writeFile(t, dir, "a.go", []byte("x\n"))))
	s := a.Stats()
	s.FilesByExtension["go"] = 99
	assert.Equal(t, 1, a.Stats().FilesByExtension["go"])
}

func TestFastHash(t *testing.T) {
	assert.Equal(t, "0000000000000000", fastHash(nil))
	assert.Equal(t, fastHash([]byte("abc")), fastHash([]byte("abc")))
	assert.NotEqual(t, fastHash([]byte("abc")), fastHash([]byte("abd")))
}
