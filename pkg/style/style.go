// Package style provides terminal styling for dirsync command output.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/dirsync/pkg/types"
)

// Colors
var (
	SuccessColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#F57F17", Dark: "#FFD54F"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	PathStyle = lipgloss.NewStyle().
			Italic(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// commandStyles maps each change command to its color.
var commandStyles = map[types.Command]lipgloss.Style{
	types.CommandCreate:  lipgloss.NewStyle().Foreground(SuccessColor).Bold(true),
	types.CommandModify:  lipgloss.NewStyle().Foreground(InfoColor).Bold(true),
	types.CommandMove:    lipgloss.NewStyle().Foreground(WarningColor).Bold(true),
	types.CommandCopy:    lipgloss.NewStyle().Foreground(WarningColor).Bold(true),
	types.CommandDelete:  lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
	types.CommandRestore: lipgloss.NewStyle().Foreground(InfoColor).Bold(true),
}

// hashDisplayLength truncates fingerprints for terminal output; the full
// digest only matters to the index, not to a human reading a change list.
const hashDisplayLength = 12

// RenderChange renders one change record for terminal display.
func RenderChange(rec types.ChangeRecord) string {
	cmdStyle, ok := commandStyles[rec.Command]
	if !ok {
		cmdStyle = MutedStyle
	}

	hash := string(rec.Hash)
	if len(hash) > hashDisplayLength {
		hash = hash[:hashDisplayLength]
	}

	return cmdStyle.Render(string(rec.Command)) + " " +
		MutedStyle.Render(hash) + " -> " +
		PathStyle.Render(rec.Path)
}

// RenderChanges renders a change log as one line per record.
func RenderChanges(records []types.ChangeRecord) string {
	if len(records) == 0 {
		return MutedStyle.Render("no changes detected")
	}

	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = RenderChange(rec)
	}
	return strings.Join(lines, "\n")
}
