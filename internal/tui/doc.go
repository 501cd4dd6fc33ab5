// Package tui is an interactive viewer for a finished project report. A
// file table sits above a detail pane that shows the selected file with
// syntax highlighting, or the project summary.
package tui
