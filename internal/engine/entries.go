package engine

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/codetree/codetree/internal/stats"
	"github.com/codetree/codetree/internal/types"
)

// buildEntries turns walked paths into report entries. Sensitive files never
// have their content read.
func buildEntries(ctx context.Context, root string, paths []string, acc *stats.Accumulator, records []types.FileRecord, progress func(done, total int)) ([]types.FileEntry, error) {
	checksums := make(map[string]string, len(records))
	for _, r := range records {
		checksums[r.Path] = r.Checksum
	}

	entries := make([]types.FileEntry, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries = append(entries, buildEntry(root, p, acc.IsSensitive(p), checksums[p]))
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return entries, nil
}

func buildEntry(root, path string, sensitive bool, checksum string) types.FileEntry {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	e := types.FileEntry{
		Path:         path,
		RelativePath: filepath.ToSlash(rel),
		IsSensitive:  sensitive,
	}
	info, err := os.Stat(path)
	if err != nil {
		return e
	}
	e.SizeBytes = info.Size()
	if sensitive {
		return e
	}
	e.Checksum = checksum
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return e
	}
	content := string(data)
	e.Content = &content
	e.LineCount = len(stats.SplitLines(content))
	return e
}
