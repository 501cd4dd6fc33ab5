package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/codetree/codetree/internal/types"
)

// HTMLRenderer writes a self-contained HTML page with highlighted sources.
type HTMLRenderer struct{}

func (HTMLRenderer) Extension() string { return "html" }

type htmlFile struct {
	RelativePath  string
	SizeFormatted string
	LineCount     int
	Language      string
	Sensitive     bool
	Readable      bool
	Code          template.HTML
}

type htmlExtension struct {
	Extension string
	Count     int
	Lines     int
}

type htmlPage struct {
	Title             string
	GeneratedAt       string
	ProjectInfo       string
	FileTree          string
	TotalFiles        int
	TotalLines        int
	CodeLines         int
	CommentLines      int
	BlankLines        int
	TotalSize         string
	CodePercentage    float64
	CommentPercentage float64
	BlankPercentage   float64
	Extensions        []htmlExtension
	Files             []htmlFile
}

var pageTemplate = template.Must(template.New("report").Parse(htmlTemplate))

func (HTMLRenderer) Render(r *types.ProjectReport) ([]byte, error) {
	s := r.Statistics
	page := htmlPage{
		Title:             "Codetree Project Analysis",
		GeneratedAt:       r.GeneratedAt.UTC().Format(timestampLayout),
		ProjectInfo:       r.ProjectInfo,
		FileTree:          r.FileTree,
		TotalFiles:        s.TotalFiles,
		TotalLines:        s.TotalLines,
		CodeLines:         s.CodeLines,
		CommentLines:      s.CommentLines,
		BlankLines:        s.BlankLines,
		TotalSize:         FormatSize(s.TotalSizeBytes),
		CodePercentage:    percent(s.CodeLines, s.TotalLines),
		CommentPercentage: percent(s.CommentLines, s.TotalLines),
		BlankPercentage:   percent(s.BlankLines, s.TotalLines),
	}
	for _, e := range ByExtension(s) {
		page.Extensions = append(page.Extensions, htmlExtension{Extension: e.Extension, Count: e.Files, Lines: e.Lines})
	}
	for _, f := range r.Files {
		hf := htmlFile{
			RelativePath:  f.RelativePath,
			SizeFormatted: FormatSize(f.SizeBytes),
			LineCount:     f.LineCount,
			Language:      fenceLanguage(f.RelativePath),
			Sensitive:     f.IsSensitive,
		}
		if !f.IsSensitive && f.Content != nil {
			hf.Readable = true
			hf.Code = highlightCode(*f.Content, f.RelativePath)
		}
		page.Files = append(page.Files, hf)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// highlightCode returns code as inline-styled HTML. Falls back to escaped
// plain text when tokenizing or formatting fails.
func highlightCode(code, filename string) template.HTML {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainCode(code)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return plainCode(code)
	}
	return template.HTML(buf.String())
}

func plainCode(code string) template.HTML {
	return template.HTML("<pre>" + template.HTMLEscapeString(code) + "</pre>")
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; background: #f8f9fa; }
.container { max-width: 1200px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 2rem; border-radius: 10px; margin-bottom: 2rem; text-align: center; }
.header h1 { font-size: 2.5rem; margin-bottom: 0.5rem; }
.nav { background: white; padding: 1rem; border-radius: 10px; margin-bottom: 2rem; box-shadow: 0 2px 10px rgba(0,0,0,0.1); display: flex; gap: 1rem; flex-wrap: wrap; }
.nav-btn { padding: 0.5rem 1rem; background: #667eea; color: white; border: none; border-radius: 5px; cursor: pointer; }
.nav-btn.active { background: #764ba2; }
.search-input { flex: 1; min-width: 200px; padding: 0.5rem; border: 2px solid #e9ecef; border-radius: 5px; font-size: 1rem; }
.section { background: white; margin-bottom: 2rem; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); overflow: hidden; }
.section-header { background: #f8f9fa; padding: 1rem 1.5rem; border-bottom: 1px solid #e9ecef; }
.section-content { padding: 1.5rem; }
.stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 1rem; margin-bottom: 2rem; }
.stat-card { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 1.5rem; border-radius: 8px; text-align: center; }
.stat-number { font-size: 2rem; font-weight: bold; }
.file-tree, .project-info { background: #f8f9fa; padding: 1rem; border-radius: 5px; font-family: 'Courier New', monospace; white-space: pre-wrap; border: 1px solid #e9ecef; margin-bottom: 1rem; }
.extension-list { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 1rem; }
.extension-item { background: #f8f9fa; padding: 1rem; border-radius: 5px; border-left: 4px solid #667eea; }
.file-item { border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; margin-bottom: 1rem; }
.file-header { background: #f8f9fa; padding: 1rem; cursor: pointer; display: flex; justify-content: space-between; }
.file-meta { font-size: 0.9rem; color: #6c757d; }
.file-content { display: none; }
.file-content.active { display: block; }
.code-header { background: #e9ecef; padding: 0.5rem 1rem; font-size: 0.9rem; }
.file-content pre { padding: 1rem; overflow-x: auto; }
.notice { background: #fff3cd; color: #856404; padding: 1rem; text-align: center; font-style: italic; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>🌳 {{.Title}}</h1>
    <div class="subtitle">Generated on {{.GeneratedAt}}</div>
  </div>
  <div class="nav">
    <button class="nav-btn active" onclick="showSection('overview', this)">📊 Overview</button>
    <button class="nav-btn" onclick="showSection('structure', this)">🗂️ Structure</button>
    <button class="nav-btn" onclick="showSection('files', this)">📄 Files</button>
    <input type="text" class="search-input" placeholder="Search files..." onkeyup="searchFiles(this.value)">
  </div>

  <div id="overview-section" class="section">
    <div class="section-header"><h2>📊 Project Overview</h2></div>
    <div class="section-content">
      <div class="stats-grid">
        <div class="stat-card"><div class="stat-number">{{.TotalFiles}}</div><div>Total Files</div></div>
        <div class="stat-card"><div class="stat-number">{{.TotalLines}}</div><div>Total Lines</div></div>
        <div class="stat-card"><div class="stat-number">{{.CodeLines}}</div><div>Code Lines ({{printf "%.1f" .CodePercentage}}%)</div></div>
        <div class="stat-card"><div class="stat-number">{{.CommentLines}}</div><div>Comment Lines ({{printf "%.1f" .CommentPercentage}}%)</div></div>
        <div class="stat-card"><div class="stat-number">{{.BlankLines}}</div><div>Blank Lines ({{printf "%.1f" .BlankPercentage}}%)</div></div>
        <div class="stat-card"><div class="stat-number">{{.TotalSize}}</div><div>Total Size</div></div>
      </div>
      <div class="project-info">{{.ProjectInfo}}</div>
      {{if .Extensions}}
      <h3>📁 Files by Type</h3>
      <div class="extension-list">
        {{range .Extensions}}<div class="extension-item"><strong>.{{.Extension}}</strong><br>{{.Count}} files, {{.Lines}} lines</div>
        {{end}}
      </div>
      {{end}}
    </div>
  </div>

  <div id="structure-section" class="section">
    <div class="section-header"><h2>🗂️ Project Structure</h2></div>
    <div class="section-content"><div class="file-tree">{{.FileTree}}</div></div>
  </div>

  <div id="files-section" class="section">
    <div class="section-header"><h2>📄 File Contents</h2></div>
    <div class="section-content">
      {{range .Files}}
      <div class="file-item" data-file-path="{{.RelativePath}}">
        <div class="file-header" onclick="this.nextElementSibling.classList.toggle('active')">
          <div class="file-path">{{.RelativePath}}</div>
          <div class="file-meta">{{.SizeFormatted}} • {{.LineCount}} lines</div>
        </div>
        <div class="file-content">
          {{if .Sensitive}}<div class="notice">🔒 SENSITIVE FILE - Content Protected</div>
          {{else if .Readable}}<div class="code-header">{{.Language}}</div>{{.Code}}
          {{else}}<div class="notice">⚠️ Unable to read file content</div>{{end}}
        </div>
      </div>
      {{end}}
    </div>
  </div>
</div>
<script>
function showSection(name, btn) {
  document.querySelectorAll('.nav-btn').forEach(b => b.classList.remove('active'));
  btn.classList.add('active');
  document.querySelectorAll('.section').forEach(s => {
    s.style.display = s.id === name + '-section' ? 'block' : 'none';
  });
}
function searchFiles(query) {
  const q = query.toLowerCase();
  document.querySelectorAll('.file-item').forEach(item => {
    item.style.display = item.dataset.filePath.toLowerCase().includes(q) ? 'block' : 'none';
  });
}
</script>
</body>
</html>
`
