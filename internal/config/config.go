package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalNames are the repo-local config file names in search order.
var LocalNames = []string{".codetree.yml", ".codetree.yaml", "codetree.yml", "codetree.yaml"}

// FileConfig is the on-disk YAML configuration shape for codetree. Nil
// fields are unset and fall through to the next source.
type FileConfig struct {
	Format  *string `yaml:"format"`
	Output  *string `yaml:"output"`
	Include *string `yaml:"include"`
	Exclude *string `yaml:"exclude"`

	// Extra entries extend the built-in lists; they never replace them.
	ExtraExcludedDirs  []string `yaml:"extra_excluded_dirs"`
	ExtraExcludedFiles []string `yaml:"extra_excluded_files"`
	ExtraSensitive     []string `yaml:"extra_sensitive"`

	GitIgnore *bool `yaml:"gitignore"`
	NoColor   *bool `yaml:"no_color"`
	History   *bool `yaml:"history"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches root for one of LocalNames.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// Dir returns the codetree directory under XDG_CONFIG_HOME or ~/.config.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("no config dir")
	}
	return filepath.Join(base, "codetree"), nil
}

// LoadGlobal loads the global config file from Dir.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	dir, err := Dir()
	if err != nil {
		return cfg, err
	}
	p := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge layers c over base: set fields in c win, extra lists are appended.
func (c FileConfig) Merge(base FileConfig) FileConfig {
	out := base
	if c.Format != nil {
		out.Format = c.Format
	}
	if c.Output != nil {
		out.Output = c.Output
	}
	if c.Include != nil {
		out.Include = c.Include
	}
	if c.Exclude != nil {
		out.Exclude = c.Exclude
	}
	if c.GitIgnore != nil {
		out.GitIgnore = c.GitIgnore
	}
	if c.NoColor != nil {
		out.NoColor = c.NoColor
	}
	if c.History != nil {
		out.History = c.History
	}
	out.ExtraExcludedDirs = append(append([]string(nil), base.ExtraExcludedDirs...), c.ExtraExcludedDirs...)
	out.ExtraExcludedFiles = append(append([]string(nil), base.ExtraExcludedFiles...), c.ExtraExcludedFiles...)
	out.ExtraSensitive = append(append([]string(nil), base.ExtraSensitive...), c.ExtraSensitive...)
	return out
}

// HistoryEnabled reports whether run history is recorded (default true).
func (c FileConfig) HistoryEnabled() bool {
	if c.History == nil {
		return true
	}
	return *c.History
}

// Template is the starter file written by `codetree config init`.
const Template = `# codetree configuration
# format: text | json | markdown | html
format: text
# output: report base name without extension
output: codetree
# include: "**/*.go,**/*.md"
# exclude: "testdata/**"
gitignore: false
no_color: false
history: true
# extra_excluded_dirs: [generated]
# extra_excluded_files: [LICENSE]
# extra_sensitive: [.pem]
`
