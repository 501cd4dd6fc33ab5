package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/codetree/codetree/internal/config"
)

// Prefs holds viewer preferences that persist across sessions.
type Prefs struct {
	LineNumbers bool `json:"line_numbers"`
	Highlight   bool `json:"highlight"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{LineNumbers: true, Highlight: true}
}

func prefsPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "browse_prefs.json"), nil
}

// LoadPrefs loads preferences from disk, returning defaults if not found.
func LoadPrefs() Prefs {
	prefs := DefaultPrefs()
	path, err := prefsPath()
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	_ = json.Unmarshal(data, &prefs)
	return prefs
}

// SavePrefs persists preferences to disk.
func SavePrefs(prefs Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
