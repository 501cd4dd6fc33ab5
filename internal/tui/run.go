package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codetree/codetree/internal/types"
)

// Run opens the viewer for r in the alternate screen and blocks until the
// user quits.
func Run(r *types.ProjectReport) error {
	m := NewModel(r, LoadPrefs())
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
