package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Shakeskeyboarde/monox/internal/workspace"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pendingStyle = lipgloss.NewStyle().Faint(true)
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// RenderStatus colorizes a workspace status for terminal output.
func RenderStatus(status workspace.Status) string {
	switch status {
	case workspace.StatusSuccess:
		return successStyle.Render(string(status))
	case workspace.StatusFailure:
		return failureStyle.Render(string(status))
	case workspace.StatusSkipped:
		return skippedStyle.Render(string(status))
	default:
		return pendingStyle.Render(string(status))
	}
}
