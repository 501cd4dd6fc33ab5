package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codetree/codetree/internal/exclude"
	"github.com/codetree/codetree/internal/report"
	"github.com/codetree/codetree/internal/types"
)

// Project type labels.
const (
	TypeRust   = "Rust"
	TypeNode   = "JavaScript/Node.js"
	TypePython = "Python"
	TypeMaven  = "Java/Maven"
	TypeGradle = "Java/Gradle"
	TypeDotNet = ".NET"
	TypeGo     = "Go"
	TypeRuby   = "Ruby"
	TypePHP    = "PHP"
)

// commonExcludedDirs are added for every project regardless of type.
var commonExcludedDirs = []string{"assets", "asset", "public", "bin"}

// ProjectDetector owns the exclusion rules, detected project types,
// frameworks and the exclusion report for one run.
type ProjectDetector struct {
	rules      *exclude.RuleSet
	types      map[string]bool
	frameworks *FrameworkDetector
	excluded   types.ExclusionReport
	extraInfo  []string
}

// NewProjectDetector wraps rules. A nil rule set means exclude.Defaults().
func NewProjectDetector(rules *exclude.RuleSet) *ProjectDetector {
	if rules == nil {
		rules = exclude.Defaults()
	}
	return &ProjectDetector{
		rules:      rules,
		types:      map[string]bool{},
		frameworks: NewFrameworkDetector(),
	}
}

// DetectProjectTypes inspects marker files in root, records project types and
// frameworks, and extends the exclusion rules. Each check is independent.
func (p *ProjectDetector) DetectProjectTypes(root string) error {
	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("detect project types: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("detect project types: %s is not a directory", root)
	}
	at := func(name ...string) string { return filepath.Join(append([]string{root}, name...)...) }

	if exists(at("Cargo.toml")) {
		p.add(TypeRust, "target")
	}
	if exists(at("package.json")) {
		p.add(TypeNode, "node_modules", "dist", "build")
		if b, err := os.ReadFile(at("package.json")); err == nil {
			p.frameworks.DetectJS(string(b))
		}
	}
	if exists(at("setup.py")) || exists(at("requirements.txt")) || exists(at("pyproject.toml")) {
		p.add(TypePython, "__pycache__", ".pytest_cache", "venv", "dist", "build")
		p.frameworks.DetectPython(root)
	}
	if exists(at("pom.xml")) {
		p.add(TypeMaven, "target")
		if b, err := os.ReadFile(at("pom.xml")); err == nil {
			p.frameworks.DetectJava(string(b))
		}
	}
	if exists(at("build.gradle")) || exists(at("build.gradle.kts")) {
		p.add(TypeGradle, "build", ".gradle")
	}
	if hasProjectFile(root) {
		p.add(TypeDotNet, "bin", "obj")
		p.frameworks.DetectDotNet(root)
	}
	if exists(at("go.mod")) {
		p.add(TypeGo, "vendor")
	}
	if exists(at("Gemfile")) {
		p.add(TypeRuby)
		p.frameworks.DetectRuby(root)
	}
	if exists(at("composer.json")) {
		p.add(TypePHP, "vendor")
		p.frameworks.DetectPHP(root)
	}
	p.rules.AddProjectDirs(commonExcludedDirs...)
	return nil
}

func (p *ProjectDetector) add(label string, dirs ...string) {
	p.types[label] = true
	p.rules.AddProjectDirs(dirs...)
}

func hasProjectFile(root string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".csproj", ".fsproj":
			return true
		}
	}
	return false
}

// IsExcludedDir reports whether a directory name is skipped.
func (p *ProjectDetector) IsExcludedDir(name string) bool {
	return p.rules.ShouldExcludeDir(name)
}

// Rules returns the rule set the detector extends.
func (p *ProjectDetector) Rules() *exclude.RuleSet { return p.rules }

// ProjectTypes returns the detected labels, sorted.
func (p *ProjectDetector) ProjectTypes() []string {
	out := make([]string, 0, len(p.types))
	for t := range p.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Frameworks returns a copy of the detected frameworks.
func (p *ProjectDetector) Frameworks() Record { return p.frameworks.Frameworks() }

// Exclusions returns the exclusion report populated during the walk.
func (p *ProjectDetector) Exclusions() *types.ExclusionReport { return &p.excluded }

// AddInfo appends a free-form line printed after the project types, such as
// repository metadata.
func (p *ProjectDetector) AddInfo(line string) {
	if line = strings.TrimSpace(line); line != "" {
		p.extraInfo = append(p.extraInfo, line)
	}
}

// FormatProjectInfo renders detected types, auto-excluded directories,
// frameworks and the exclusion analysis.
func (p *ProjectDetector) FormatProjectInfo() string {
	var b strings.Builder
	if len(p.types) > 0 {
		b.WriteString("Detected Project Types: " + strings.Join(p.ProjectTypes(), ", ") + "\n")
		b.WriteString("Auto-excluded build directories: " + strings.Join(p.rules.ProjectDirs(), ", ") + "\n")
	} else {
		b.WriteString("No specific project type detected\n")
	}
	for _, l := range p.extraInfo {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n")
	b.WriteString(p.frameworks.Format())
	b.WriteString(FormatExclusions(&p.excluded))
	return b.String()
}

// FormatExclusions renders the ten largest excluded directories and files.
// An empty report renders as the empty string.
func FormatExclusions(r *types.ExclusionReport) string {
	if r == nil || r.TotalExcludedSize == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nExcluded Content Analysis:\n")
	b.WriteString("==========================\n")
	fmt.Fprintf(&b, "Total excluded content size: %s\n\n", report.FormatSize(r.TotalExcludedSize))

	if len(r.Directories) > 0 {
		dirs := append([]types.ExcludedDir(nil), r.Directories...)
		sort.SliceStable(dirs, func(i, j int) bool { return dirs[i].Size > dirs[j].Size })
		b.WriteString("Top 10 Largest Excluded Directories:\n")
		for i, d := range dirs {
			if i == 10 {
				break
			}
			fmt.Fprintf(&b, "  %d. %s - %s (%d files) - Reason: %s\n", i+1, d.Path, report.FormatSize(d.Size), d.FileCount, d.Reason)
		}
		b.WriteString("\n")
	}
	if len(r.Files) > 0 {
		files := append([]types.ExcludedFile(nil), r.Files...)
		sort.SliceStable(files, func(i, j int) bool { return files[i].Size > files[j].Size })
		b.WriteString("Top 10 Largest Excluded Files:\n")
		for i, f := range files {
			if i == 10 {
				break
			}
			fmt.Fprintf(&b, "  %d. %s - %s - Reason: %s\n", i+1, f.Path, report.FormatSize(f.Size), f.Reason)
		}
		b.WriteString("\n")
	}
	return b.String()
}
