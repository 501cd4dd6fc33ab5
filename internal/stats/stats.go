// Package stats accumulates per-file line and size statistics.
package stats

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/codetree/codetree/internal/exclude"
	"github.com/codetree/codetree/internal/sizeprobe"
	"github.com/codetree/codetree/internal/types"
)

// MaxLargest bounds the largest-files list.
const MaxLargest = 10

// Accumulator collects statistics for files fed to AddFile. It is not safe
// for concurrent use.
type Accumulator struct {
	stats     types.Stats
	records   []types.FileRecord
	sensitive *exclude.SensitiveSet
	size      func(string) (int64, error)
}

// New returns an empty accumulator. A nil set means exclude.DefaultSensitive().
func New(sensitive *exclude.SensitiveSet) *Accumulator {
	if sensitive == nil {
		sensitive = exclude.DefaultSensitive()
	}
	return &Accumulator{
		stats:     types.NewStats(),
		sensitive: sensitive,
		size:      sizeprobe.Size,
	}
}

// Extension returns the lower-cased extension of name without the dot, or
// types.NoExtension. Leading-dot names such as ".env" have no extension.
func Extension(name string) string {
	name = filepath.Base(name)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return types.NoExtension
	}
	return strings.ToLower(name[i+1:])
}

// IsSensitive reports whether the file at path is treated as sensitive.
func (a *Accumulator) IsSensitive(path string) bool {
	return a.sensitive.IsSensitive(filepath.Base(path))
}

// AddFile records the file at path. A file that no longer exists is ignored
// without error.
func (a *Accumulator) AddFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	rec := types.FileRecord{
		Path:      path,
		Extension: Extension(path),
		Sensitive: a.IsSensitive(path),
	}
	if size, err := a.size(path); err == nil {
		rec.SizeBytes = size
	}

	if data, err := os.ReadFile(path); err == nil {
		rec.Checksum = fastHash(data)
		if utf8.Valid(data) {
			rec.Text = true
			countLines(&rec, string(data))
			a.stats.TotalContentSizeBytes += int64(len(data))
		}
	}

	a.add(rec)
	return nil
}

func (a *Accumulator) add(rec types.FileRecord) {
	s := &a.stats
	s.TotalFiles++
	if rec.Sensitive {
		s.SensitiveFilesCount++
	}
	s.FilesByExtension[rec.Extension]++
	s.TotalSizeBytes += rec.SizeBytes
	s.SizeByExtension[rec.Extension] += rec.SizeBytes
	if rec.Text {
		s.TotalLines += rec.TotalLines
		s.BlankLines += rec.BlankLines
		s.CommentLines += rec.CommentLines
		s.CodeLines += rec.CodeLines
		s.LinesByExtension[rec.Extension] += rec.TotalLines
	}

	s.LargestFiles = append(s.LargestFiles, types.SizedPath{Path: rec.Path, Size: rec.SizeBytes})
	sort.SliceStable(s.LargestFiles, func(i, j int) bool { return s.LargestFiles[i].Size > s.LargestFiles[j].Size })
	if len(s.LargestFiles) > MaxLargest {
		s.LargestFiles = s.LargestFiles[:MaxLargest]
	}

	a.records = append(a.records, rec)
}

// Finalize computes derived values. Call once after the last AddFile.
func (a *Accumulator) Finalize() {
	if a.stats.TotalFiles > 0 {
		a.stats.AverageFileSize = a.stats.TotalSizeBytes / int64(a.stats.TotalFiles)
	}
}

// Stats returns a snapshot of the aggregate statistics.
func (a *Accumulator) Stats() types.Stats {
	s := a.stats
	s.FilesByExtension = copyMap(a.stats.FilesByExtension)
	s.LinesByExtension = copyMap(a.stats.LinesByExtension)
	s.SizeByExtension = copyMap(a.stats.SizeByExtension)
	s.LargestFiles = append([]types.SizedPath{}, a.stats.LargestFiles...)
	return s
}

// Records returns the per-file records in the order they were added.
func (a *Accumulator) Records() []types.FileRecord {
	return append([]types.FileRecord(nil), a.records...)
}

// Record returns the record for path, if one was added.
func (a *Accumulator) Record(path string) (types.FileRecord, bool) {
	for _, r := range a.records {
		if r.Path == path {
			return r, true
		}
	}
	return types.FileRecord{}, false
}

func copyMap[V int | int64](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SplitLines splits content on "\n", dropping a trailing "\r" from each line.
// A final newline does not start an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func countLines(rec *types.FileRecord, content string) {
	lines := SplitLines(content)
	rec.TotalLines = len(lines)
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		switch {
		case trimmed == "":
			rec.BlankLines++
		case IsComment(trimmed, rec.Extension):
			rec.CommentLines++
		}
	}
	rec.CodeLines = rec.TotalLines - rec.BlankLines - rec.CommentLines
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
