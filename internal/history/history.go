// Package history keeps an append-only JSONL log of analysis runs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/codetree/codetree/internal/types"
)

// FileName is the log file name inside the config directory.
const FileName = "history.jsonl"

// Record summarizes one run.
type Record struct {
	Timestamp    time.Time     `json:"timestamp"`
	RunID        string        `json:"run_id"`
	Root         string        `json:"root"`
	Format       string        `json:"format"`
	OutputPath   string        `json:"output_path"`
	ProjectTypes []string      `json:"project_types,omitempty"`
	TotalFiles   int           `json:"total_files"`
	TotalLines   int           `json:"total_lines"`
	CodeLines    int           `json:"code_lines"`
	TotalSize    int64         `json:"total_size_bytes"`
	Sensitive    int           `json:"sensitive_files"`
	ExcludedSize int64         `json:"excluded_size_bytes"`
	TopTypes     []TypeSummary `json:"top_types,omitempty"`
	Duration     string        `json:"duration"`
	Git          *GitSummary   `json:"git,omitempty"`
}

// TypeSummary is a per-extension file count.
type TypeSummary struct {
	Extension string `json:"extension"`
	Files     int    `json:"files"`
}

// GitSummary is the repository state at the time of the run.
type GitSummary struct {
	Repo   string `json:"repo,omitempty"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// Log is a history file on disk.
type Log struct {
	path string
}

// NewLog opens the log at path. The file is created on first write.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// NewLogIn opens FileName inside dir.
func NewLogIn(dir string) *Log {
	return NewLog(filepath.Join(dir, FileName))
}

// Path returns the log file location.
func (l *Log) Path() string { return l.path }

// LoadHistory returns all records, newest first. Reading stops at the first
// malformed line.
func (l *Log) LoadHistory() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var records []Record
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes record as one line, creating the file and its directory.
func (l *Log) Append(record Record) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", record.Timestamp.Unix())
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	// Owner-only: records carry local paths and repository names.
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}
	return nil
}

// Clear removes the log file. A missing file is not an error.
func (l *Log) Clear() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// MaxTopTypes bounds Record.TopTypes.
const MaxTopTypes = 5

// NewRecord summarizes a finished report.
func NewRecord(root, format, outputPath string, projectTypes []string, r *types.ProjectReport, excludedSize int64, git GitSummary, duration time.Duration) Record {
	rec := Record{
		Timestamp:    r.GeneratedAt,
		Root:         root,
		Format:       format,
		OutputPath:   outputPath,
		ProjectTypes: projectTypes,
		TotalFiles:   r.Statistics.TotalFiles,
		TotalLines:   r.Statistics.TotalLines,
		CodeLines:    r.Statistics.CodeLines,
		TotalSize:    r.Statistics.TotalSizeBytes,
		Sensitive:    r.Statistics.SensitiveFilesCount,
		ExcludedSize: excludedSize,
		TopTypes:     topTypes(r.Statistics.FilesByExtension),
		Duration:     duration.Round(time.Millisecond).String(),
	}
	if git != (GitSummary{}) {
		rec.Git = &git
	}
	return rec
}

func topTypes(byExt map[string]int) []TypeSummary {
	out := make([]TypeSummary, 0, len(byExt))
	for ext, n := range byExt {
		out = append(out, TypeSummary{Extension: ext, Files: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Extension < out[j].Extension
	})
	if len(out) > MaxTopTypes {
		out = out[:MaxTopTypes]
	}
	return out
}
