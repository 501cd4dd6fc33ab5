// Package detect identifies project types and frameworks from marker and
// manifest files at the project root.
package detect

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/codetree/codetree/internal/types"
)

// Record maps a detected framework to its version, or types.UnknownVersion.
type Record map[types.Framework]string

type jsDependency struct {
	framework types.Framework
	names     []string
}

// Checked in order. The first name that resolves a version wins.
var jsDependencies = []jsDependency{
	{types.React, []string{"react"}},
	{types.Vue, []string{"vue"}},
	{types.Angular, []string{"@angular/core"}},
	{types.NextJS, []string{"next"}},
	{types.ThreeJS, []string{"three"}},
	{types.Svelte, []string{"svelte"}},
	{types.TailwindCSS, []string{"tailwindcss"}},
	{types.MaterialUI, []string{"@mui/material", "@material-ui/core"}},
	{types.Bootstrap, []string{"bootstrap"}},
	{types.ChakraUI, []string{"@chakra-ui/react"}},
	{types.Express, []string{"express"}},
	{types.NestJS, []string{"@nestjs/core"}},
	{types.Fastify, []string{"fastify"}},
	{types.Redux, []string{"redux"}},
	{types.MobX, []string{"mobx"}},
	{types.Jest, []string{"jest"}},
	{types.Cypress, []string{"cypress"}},
}

var requirementsFrameworks = []struct {
	needle    string
	framework types.Framework
}{
	{"django", types.Django},
	{"flask", types.Flask},
	{"fastapi", types.FastAPI},
	{"sqlalchemy", types.SQLAlchemy},
	{"pytest", types.Pytest},
}

// dotnetSearchDepth bounds how deep DetectDotNet looks for *.csproj files.
const dotnetSearchDepth = 3

// FrameworkDetector collects frameworks found by the per-ecosystem checks.
// Manifest read failures are ignored; that ecosystem reports nothing.
type FrameworkDetector struct {
	found Record
}

// NewFrameworkDetector returns an empty detector.
func NewFrameworkDetector() *FrameworkDetector {
	return &FrameworkDetector{found: Record{}}
}

// Frameworks returns a copy of the detected frameworks.
func (d *FrameworkDetector) Frameworks() Record {
	out := make(Record, len(d.found))
	for k, v := range d.found {
		out[k] = v
	}
	return out
}

// DetectJS inspects package.json content for known dependencies.
func (d *FrameworkDetector) DetectJS(packageJSON string) {
	for _, dep := range jsDependencies {
		present := false
		for _, n := range dep.names {
			if strings.Contains(packageJSON, `"`+n+`"`) {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		version := types.UnknownVersion
		for _, n := range dep.names {
			if v, ok := ExtractVersion(packageJSON, n); ok {
				version = v
				break
			}
		}
		d.found[dep.framework] = version
	}
}

// DetectPython searches requirements.txt and looks for a Django layout.
func (d *FrameworkDetector) DetectPython(root string) {
	if b, err := os.ReadFile(filepath.Join(root, "requirements.txt")); err == nil {
		content := string(b)
		for _, rf := range requirementsFrameworks {
			if strings.Contains(content, rf.needle) {
				d.found[rf.framework] = types.UnknownVersion
			}
		}
	}
	if exists(filepath.Join(root, "manage.py")) && hasDjangoSettings(root) {
		d.found[types.Django] = types.UnknownVersion
	}
}

func hasDjangoSettings(root string) bool {
	if exists(filepath.Join(root, "settings.py")) {
		return true
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() && exists(filepath.Join(root, e.Name(), "settings.py")) {
			return true
		}
	}
	return false
}

// DetectRuby reports Rails when config/routes.rb exists.
func (d *FrameworkDetector) DetectRuby(root string) {
	if exists(filepath.Join(root, "config", "routes.rb")) {
		d.found[types.Rails] = types.UnknownVersion
	}
}

// DetectPHP reports Laravel and Symfony from their marker files.
func (d *FrameworkDetector) DetectPHP(root string) {
	if exists(filepath.Join(root, "artisan")) {
		d.found[types.Laravel] = types.UnknownVersion
	}
	if exists(filepath.Join(root, "bin", "console")) &&
		isDir(filepath.Join(root, "config")) &&
		exists(filepath.Join(root, "src", "Kernel.php")) {
		d.found[types.Symfony] = types.UnknownVersion
	}
}

// DetectJava searches pom.xml content. Gradle builds have no detection path.
func (d *FrameworkDetector) DetectJava(pomXML string) {
	if strings.Contains(pomXML, "spring-boot") {
		d.found[types.SpringBoot] = types.UnknownVersion
	}
	if strings.Contains(pomXML, "hibernate") {
		d.found[types.Hibernate] = types.UnknownVersion
	}
}

// DetectDotNet reports ASP.NET Core when a *.csproj within a bounded depth
// references Microsoft.AspNetCore. It stops at the first match.
func (d *FrameworkDetector) DetectDotNet(root string) {
	_ = filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		depth := 0
		if rel != "." {
			depth = strings.Count(filepath.ToSlash(rel), "/") + 1
		}
		if e.IsDir() {
			if depth >= dotnetSearchDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".csproj" {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if strings.Contains(string(b), "Microsoft.AspNetCore") {
			d.found[types.AspNetCore] = types.UnknownVersion
			return fs.SkipAll
		}
		return nil
	})
}

// ExtractVersion finds the version string declared for dependency name in
// JSON-like text. The pattern match is tried first and ScanVersion is the
// fallback.
func ExtractVersion(text, name string) (string, bool) {
	re, err := regexp.Compile(`"` + regexp.QuoteMeta(name) + `"\s*:\s*"([^"]+)"`)
	if err == nil {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return ScanVersion(text, name)
}

// ScanVersion locates `"name"` followed by a colon and returns the value
// after it. Quoted values are returned without quotes; unquoted values run
// to the next comma, brace or line break.
func ScanVersion(text, name string) (string, bool) {
	key := `"` + name + `"`
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], key)
		if idx < 0 {
			return "", false
		}
		rest := strings.TrimLeft(text[from+idx+len(key):], " \t\r\n")
		from += idx + len(key)
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		rest = strings.TrimLeft(rest[1:], " \t\r\n")
		if strings.HasPrefix(rest, `"`) {
			end := strings.Index(rest[1:], `"`)
			if end <= 0 {
				continue
			}
			return rest[1 : 1+end], true
		}
		end := strings.IndexAny(rest, ",}\r\n")
		if end < 0 {
			end = len(rest)
		}
		if v := strings.TrimSpace(rest[:end]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Format renders the detected frameworks grouped by category. Versions are
// printed as declared, range operators included.
func (d *FrameworkDetector) Format() string {
	if len(d.found) == 0 {
		return "No specific frameworks detected\n"
	}
	groups := map[types.Category][]types.Framework{}
	for f := range d.found {
		groups[f.Category()] = append(groups[f.Category()], f)
	}
	var b strings.Builder
	b.WriteString("Detected Frameworks:\n")
	for _, c := range []types.Category{types.CategoryFrontend, types.CategoryBackend, types.CategoryTesting, types.CategoryOther} {
		fws := groups[c]
		if len(fws) == 0 {
			continue
		}
		sort.Slice(fws, func(i, j int) bool { return fws[i].String() < fws[j].String() })
		b.WriteString("  " + c.String() + " Frameworks:\n")
		for _, f := range fws {
			b.WriteString("    - " + f.String() + " (v" + d.found[f] + ")\n")
		}
	}
	return b.String()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
