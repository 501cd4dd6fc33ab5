package exclude

import "strings"

// SensitiveSuffixes returns the built-in file name suffixes that mark a file
// as sensitive.
func SensitiveSuffixes() []string {
	return []string{
		".env", ".env.local", ".env.development", ".env.production", ".env.test",
		"config.json", "secrets.json", "credentials.json", "aws-config.json",
		"firebase-config.json", "database.yml", "settings.py", "config.py",
		"wp-config.php", "application.properties",
	}
}

// SensitiveSet matches file names by suffix. Matching is exact, not glob.
type SensitiveSet struct {
	suffixes []string
}

// NewSensitiveSet copies the given suffixes into a new set.
func NewSensitiveSet(suffixes []string) *SensitiveSet {
	s := &SensitiveSet{}
	s.Add(suffixes...)
	return s
}

// DefaultSensitive returns a fresh set holding the built-in suffixes.
func DefaultSensitive() *SensitiveSet {
	return NewSensitiveSet(SensitiveSuffixes())
}

// Add appends suffixes, ignoring blanks.
func (s *SensitiveSet) Add(suffixes ...string) {
	for _, sfx := range suffixes {
		if sfx = strings.TrimSpace(sfx); sfx != "" {
			s.suffixes = append(s.suffixes, sfx)
		}
	}
}

// IsSensitive reports whether name ends with any suffix in the set.
func (s *SensitiveSet) IsSensitive(name string) bool {
	if s == nil {
		return false
	}
	for _, sfx := range s.suffixes {
		if strings.HasSuffix(name, sfx) {
			return true
		}
	}
	return false
}
