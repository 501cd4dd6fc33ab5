// Package exclude decides which directories and files a scan skips and
// which files are treated as sensitive.
package exclude

import (
	"sort"
	"strings"
)

// BaseDirs returns the directory names that are always excluded.
func BaseDirs() []string {
	return []string{".idea", ".git", ".github", ".gitlab", ".vscode", ".venv", "cache", "fonts", "obj", "out"}
}

// Files returns the file names that are always excluded.
func Files() []string {
	return []string{
		".DS_Store", ".env", ".eslintrc.json", ".gitignore", ".npmignore",
		"Cargo.lock", "eslint.config.js", "favicon.ico", "globals.css",
		"next.config.mjs", "next-env.d.ts", "postcss.config.js", "postcss.config.mjs",
		"README.md", "package-lock.json", "pnpm-lock.yaml",
		"tailwind.config.js", "tailwind.config.ts",
		"tsconfig.app.json", "tsconfig.node.json", "tsconfig.json",
		"thumbs.db", "vite.config.ts", "yarn.lock",
	}
}

// RuleSet is the combined base and project-specific exclusion list. Base
// entries are never removed and project entries only accumulate.
type RuleSet struct {
	base    map[string]bool
	project map[string]bool
	files   map[string]bool
}

// NewRuleSet builds a rule set from explicit base directories and file names.
func NewRuleSet(baseDirs, files []string) *RuleSet {
	r := &RuleSet{
		base:    make(map[string]bool, len(baseDirs)),
		project: map[string]bool{},
		files:   make(map[string]bool, len(files)),
	}
	for _, d := range baseDirs {
		r.base[d] = true
	}
	for _, f := range files {
		r.files[f] = true
	}
	return r
}

// Defaults returns a fresh rule set holding the built-in lists.
func Defaults() *RuleSet {
	return NewRuleSet(BaseDirs(), Files())
}

// AddProjectDirs extends the project-specific directory list.
func (r *RuleSet) AddProjectDirs(names ...string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || r.base[n] {
			continue
		}
		r.project[n] = true
	}
}

// AddFiles extends the excluded file name list.
func (r *RuleSet) AddFiles(names ...string) {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			r.files[n] = true
		}
	}
}

// ShouldExcludeDir reports whether a directory with this name is skipped.
func (r *RuleSet) ShouldExcludeDir(name string) bool {
	return r.base[name] || r.project[name]
}

// ShouldExcludeFile reports whether a file with this exact name is skipped.
func (r *RuleSet) ShouldExcludeFile(name string) bool {
	return r.files[name]
}

// ProjectDirs returns the project-specific additions, sorted.
func (r *RuleSet) ProjectDirs() []string {
	out := make([]string, 0, len(r.project))
	for d := range r.project {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

var projectDirReasons = map[string]string{
	"target":        "Rust/Java build directory",
	"node_modules":  "Node.js dependencies",
	"dist":          "Build output directory",
	"build":         "Build output directory",
	"__pycache__":   "Python cache directory",
	".pytest_cache": "Pytest cache directory",
	"venv":          "Python virtual environment",
	".gradle":       "Gradle cache directory",
	"bin":           ".NET build directory",
	"obj":           ".NET build directory",
	"vendor":        "Dependencies directory",
	"assets":        "Static assets directory",
	"asset":         "Static assets directory",
	"public":        "Static assets directory",
}

// DirReason explains why a directory name is excluded.
func (r *RuleSet) DirReason(name string) string {
	switch {
	case r.base[name]:
		return "Base excluded directory"
	case r.project[name]:
		if reason, ok := projectDirReasons[name]; ok {
			return reason
		}
		return "Project-specific excluded directory"
	default:
		return "Unknown exclusion reason"
	}
}

var fileReasons = map[string]string{
	".DS_Store":          "macOS system file",
	".env":               "Environment configuration file",
	".env.local":         "Environment configuration file",
	".env.development":   "Environment configuration file",
	".env.production":    "Environment configuration file",
	".env.test":          "Environment configuration file",
	".eslintrc.json":     "ESLint configuration",
	"eslint.config.js":   "ESLint configuration",
	".gitignore":         "Version control ignore file",
	".npmignore":         "Version control ignore file",
	"Cargo.lock":         "Dependency lock file",
	"package-lock.json":  "Dependency lock file",
	"pnpm-lock.yaml":     "Dependency lock file",
	"yarn.lock":          "Dependency lock file",
	"favicon.ico":        "Website icon file",
	"globals.css":        "Global CSS file",
	"next.config.mjs":    "Next.js configuration",
	"next-env.d.ts":      "Next.js configuration",
	"postcss.config.js":  "PostCSS configuration",
	"postcss.config.mjs": "PostCSS configuration",
	"README.md":          "Documentation file",
	"tailwind.config.js": "Tailwind CSS configuration",
	"tailwind.config.ts": "Tailwind CSS configuration",
	"tsconfig.app.json":  "TypeScript configuration",
	"tsconfig.node.json": "TypeScript configuration",
	"tsconfig.json":      "TypeScript configuration",
	"thumbs.db":          "Windows thumbnail cache",
	"vite.config.ts":     "Vite configuration",
}

// FileReason explains why a file name is excluded.
func FileReason(name string) string {
	if reason, ok := fileReasons[name]; ok {
		return reason
	}
	return "Configuration/system file"
}
