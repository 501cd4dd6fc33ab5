package types

import "time"

// NoExtension is the extension key used for files without an extension.
const NoExtension = "no_extension"

// FileRecord is the per-file result of statistics collection. Records are
// created once when a file is visited and never modified afterwards.
type FileRecord struct {
	Path         string `json:"path"`
	Extension    string `json:"extension"`
	SizeBytes    int64  `json:"size_bytes"`
	TotalLines   int    `json:"total_lines"`
	BlankLines   int    `json:"blank_lines"`
	CommentLines int    `json:"comment_lines"`
	CodeLines    int    `json:"code_lines"`
	Sensitive    bool   `json:"is_sensitive"`
	// Text is false when the content could not be decoded as UTF-8.
	Text     bool   `json:"is_text"`
	Checksum string `json:"checksum,omitempty"`
}

// SizedPath pairs a path with its on-disk size.
type SizedPath struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Stats holds aggregate project statistics.
type Stats struct {
	TotalLines            int              `json:"total_lines"`
	CodeLines             int              `json:"code_lines"`
	BlankLines            int              `json:"blank_lines"`
	CommentLines          int              `json:"comment_lines"`
	TotalFiles            int              `json:"total_files"`
	FilesByExtension      map[string]int   `json:"files_by_extension"`
	LinesByExtension      map[string]int   `json:"lines_by_extension"`
	TotalSizeBytes        int64            `json:"total_size_bytes"`
	TotalContentSizeBytes int64            `json:"total_content_size_bytes"`
	SizeByExtension       map[string]int64 `json:"size_by_extension"`
	SensitiveFilesCount   int              `json:"sensitive_files_count"`
	LargestFiles          []SizedPath      `json:"largest_files"`
	AverageFileSize       int64            `json:"average_file_size"`
}

// NewStats returns an empty Stats with initialized maps.
func NewStats() Stats {
	return Stats{
		FilesByExtension: map[string]int{},
		LinesByExtension: map[string]int{},
		SizeByExtension:  map[string]int64{},
		LargestFiles:     []SizedPath{},
	}
}

// ExcludedDir is a directory skipped during the walk.
type ExcludedDir struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	FileCount int    `json:"file_count"`
	Reason    string `json:"reason"`
}

// ExcludedFile is a file skipped during the walk.
type ExcludedFile struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Reason string `json:"reason"`
}

// ExclusionReport accumulates what the walk left out and how large it was.
type ExclusionReport struct {
	TotalExcludedSize int64          `json:"total_excluded_size"`
	Directories       []ExcludedDir  `json:"excluded_directories"`
	Files             []ExcludedFile `json:"excluded_files"`
}

// AddDirectory records an excluded directory.
func (r *ExclusionReport) AddDirectory(d ExcludedDir) {
	r.TotalExcludedSize += d.Size
	r.Directories = append(r.Directories, d)
}

// AddFile records an excluded file.
func (r *ExclusionReport) AddFile(f ExcludedFile) {
	r.TotalExcludedSize += f.Size
	r.Files = append(r.Files, f)
}

// FileEntry is one file as handed to the renderers. Content is nil when the
// file is sensitive or could not be read as text.
type FileEntry struct {
	Path         string  `json:"path"`
	RelativePath string  `json:"relative_path"`
	Content      *string `json:"content"`
	IsSensitive  bool    `json:"is_sensitive"`
	SizeBytes    int64   `json:"size_bytes"`
	LineCount    int     `json:"line_count"`
	Checksum     string  `json:"checksum,omitempty"`
}

// ProjectReport is the finished analysis consumed by output renderers.
type ProjectReport struct {
	ProjectInfo string      `json:"project_info"`
	FileTree    string      `json:"file_tree"`
	Statistics  Stats       `json:"statistics"`
	Files       []FileEntry `json:"files"`
	GeneratedAt time.Time   `json:"generated_at"`
}
