package tui

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codetree/codetree/internal/report"
	"github.com/codetree/codetree/internal/stats"
	"github.com/codetree/codetree/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	sensitiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)
)

const defaultStatus = "q: quit | ?: help | j/k: navigate | /: search | tab: summary | y: copy path"

// Model is the state of the report viewer.
type Model struct {
	table    table.Model
	viewport viewport.Model
	report   *types.ProjectReport
	// visible maps table rows to indices in report.Files.
	visible []int

	prefs     Prefs
	savePrefs func(Prefs) error

	searchMode  bool
	searchInput textinput.Model
	searchQuery string

	showSummary bool
	showHelp    bool
	ready       bool
	quitting    bool
	width       int
	height      int

	statusMessage string
	statusTimeout *time.Time
}

// NewModel builds a viewer for r using the given preferences.
func NewModel(r *types.ProjectReport, prefs Prefs) Model {
	columns := []table.Column{
		{Title: "Path", Width: 48},
		{Title: "Type", Width: 12},
		{Title: "Lines", Width: 8},
		{Title: "Size", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Search file paths..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	m := Model{
		table:         t,
		report:        r,
		prefs:         prefs,
		savePrefs:     SavePrefs,
		searchInput:   ti,
		statusMessage: defaultStatus,
	}
	m.applyFilter()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// applyFilter recomputes the visible rows from the search query.
func (m *Model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.searchQuery))
	m.visible = make([]int, 0, len(m.report.Files))
	rows := make([]table.Row, 0, len(m.report.Files))
	for i, f := range m.report.Files {
		if q != "" && !strings.Contains(strings.ToLower(f.RelativePath), q) {
			continue
		}
		m.visible = append(m.visible, i)
		rows = append(rows, fileRow(f))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
	m.updateViewportContent()
}

func fileRow(f types.FileEntry) table.Row {
	ext := stats.Extension(f.RelativePath)
	lines := strconv.Itoa(f.LineCount)
	if f.IsSensitive {
		ext = "sensitive"
		lines = "-"
	} else if f.Content == nil {
		lines = "-"
	}
	return table.Row{f.RelativePath, ext, lines, report.FormatSize(f.SizeBytes)}
}

// selected returns the file under the cursor.
func (m *Model) selected() (types.FileEntry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return types.FileEntry{}, false
	}
	return m.report.Files[m.visible[idx]], true
}

func (m *Model) setStatus(msg string, d time.Duration) {
	timeout := time.Now().Add(d)
	m.statusTimeout = &timeout
	m.statusMessage = msg
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	if m.showSummary {
		m.viewport.SetContent(summaryContent(m.report))
		return
	}
	f, ok := m.selected()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(fileContent(f, m.prefs))
	m.viewport.GotoTop()
}

func summaryContent(r *types.ProjectReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Project Summary") + "\n\n")
	b.WriteString(r.ProjectInfo)
	b.WriteString("\n")
	b.WriteString(report.FormatStats(r.Statistics))
	b.WriteString("\n" + titleStyle.Render("File Tree") + "\n\n")
	b.WriteString(r.FileTree)
	return b.String()
}

func fileContent(f types.FileEntry, prefs Prefs) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.RelativePath) + "\n")
	fmt.Fprintf(&b, "%s %s   %s %d\n", keyStyle.Render("Size:"), report.FormatSize(f.SizeBytes), keyStyle.Render("Lines:"), f.LineCount)
	if f.Checksum != "" {
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Checksum:"), f.Checksum)
	}
	b.WriteString("\n")
	switch {
	case f.IsSensitive:
		b.WriteString(sensitiveStyle.Render("[SENSITIVE FILE - Content Protected]"))
	case f.Content == nil:
		b.WriteString("[Unable to read file content]")
	default:
		code := *f.Content
		if prefs.Highlight {
			code = highlightCode(code, f.RelativePath)
		}
		if prefs.LineNumbers {
			code = numberLines(code)
		}
		b.WriteString(code)
	}
	return b.String()
}

func numberLines(code string) string {
	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	width := len(strconv.Itoa(len(lines)))
	var b strings.Builder
	for i, l := range lines {
		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%*d ", width, i+1)))
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func highlightCode(code, filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

func (m *Model) togglePref(name string, toggle func(*Prefs)) {
	toggle(&m.prefs)
	m.updateViewportContent()
	if m.savePrefs != nil {
		if err := m.savePrefs(m.prefs); err != nil {
			m.setStatus("Could not save preferences: "+err.Error(), 3*time.Second)
			return
		}
	}
	m.setStatus(name+" toggled", 2*time.Second)
}

func (m *Model) copyPath() {
	f, ok := m.selected()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(f.Path); err != nil {
		m.setStatus("Copy failed: "+err.Error(), 3*time.Second)
		return
	}
	m.setStatus("Copied "+f.RelativePath, 2*time.Second)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			m.statusMessage = defaultStatus
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.searchMode = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.Blur()
				m.searchInput.SetValue(m.searchQuery)
				m.applyFilter()
				return m, nil
			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				m.searchQuery = m.searchInput.Value()
				m.applyFilter()
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "/":
			m.searchMode = true
			m.searchInput.SetValue(m.searchQuery)
			cmd = m.searchInput.Focus()
			return m, cmd
		case "esc":
			if m.searchQuery != "" {
				m.searchQuery = ""
				m.searchInput.SetValue("")
				m.applyFilter()
				m.setStatus("Search cleared", 2*time.Second)
			}
			return m, nil
		case "?", "h":
			m.showHelp = true
			return m, nil
		case "tab":
			m.showSummary = !m.showSummary
			m.updateViewportContent()
			return m, nil
		case "l":
			m.togglePref("Line numbers", func(p *Prefs) { p.LineNumbers = !p.LineNumbers })
			return m, nil
		case "c":
			m.togglePref("Highlighting", func(p *Prefs) { p.Highlight = !p.Highlight })
			return m, nil
		case "y":
			m.copyPath()
			return m, nil
		case "J", "ctrl+d":
			m.viewport.LineDown(max(m.viewport.Height/2, 1))
			return m, nil
		case "K", "ctrl+u":
			m.viewport.LineUp(max(m.viewport.Height/2, 1))
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			m.updateViewportContent()
			return m, nil
		case "g", "home":
			m.table.GotoTop()
			m.updateViewportContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		fixed := 12 + 8 + 10 + 12
		cols := m.table.Columns()
		cols[0].Width = max(m.width-fixed, 20)
		m.table.SetColumns(cols)

		headerHeight := 1
		available := m.height - lipgloss.Height(statusStyle.Render("")) - headerHeight
		tableHeight := int(float64(available) * 0.4)
		viewportHeight := available - tableHeight - tableBorderStyle.GetVerticalFrameSize() - detailPaneBorderStyle.GetVerticalFrameSize()

		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)
		if m.viewport.Height == 0 {
			m.viewport = viewport.New(m.width, viewportHeight)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		return m, nil
	}

	before := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != before {
		m.updateViewportContent()
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupStyle.Render(helpText()))
	}

	st := m.report.Statistics
	header := fmt.Sprintf("Files: %d/%d  |  Lines: %d  |  Size: %s  |  Sensitive: %d",
		len(m.visible), len(m.report.Files), st.TotalLines, report.FormatSize(st.TotalSizeBytes), st.SensitiveFilesCount)
	if m.searchQuery != "" {
		header += fmt.Sprintf("  [SEARCH: '%s']", m.searchQuery)
	}
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(header)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var detail string
	if len(m.visible) == 0 && !m.showSummary {
		msg := "No files in this report.\n\nPress 'tab' for the project summary"
		if m.searchQuery != "" {
			msg = "No files match the search.\n\nPress 'Esc' to clear"
		}
		detail = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, emptyTextStyle.Render(msg))
	} else {
		detail = m.viewport.View()
	}
	detailRender := detailPaneBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(detail)

	status := m.statusMessage
	if m.searchMode {
		status = m.searchInput.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		statsHeader,
		tableRender,
		detailRender,
		statusStyle.Width(m.width).Render(status),
	)
}

func helpText() string {
	rows := [][2]string{
		{"j/k, up/down", "move between files"},
		{"g/G", "first/last file"},
		{"J/K, ctrl+d/u", "scroll the detail pane"},
		{"/", "search file paths"},
		{"esc", "clear search"},
		{"tab", "toggle project summary"},
		{"l", "toggle line numbers"},
		{"c", "toggle syntax highlighting"},
		{"y", "copy file path"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-14s", r[0])), r[1])
	}
	return b.String()
}
