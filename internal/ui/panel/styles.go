package panel

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the panel
type Styles struct {
	Title       lipgloss.Style
	Section     lipgloss.Style
	Dim         lipgloss.Style
	Label       lipgloss.Style
	Focused     lipgloss.Style
	Option      lipgloss.Style
	InlineError lipgloss.Style
	Errors      lipgloss.Style
	Results     lipgloss.Style
	Loading     lipgloss.Style
	Status      lipgloss.Style
	Key         lipgloss.Style
	Confirm     lipgloss.Style
	ConfirmBox  lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Label:       lipgloss.NewStyle().Width(12),
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Option:      lipgloss.NewStyle().Background(lipgloss.Color("238")).Padding(0, 1),
		InlineError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Errors: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("203")).
			PaddingLeft(1),
		Results: lipgloss.NewStyle().PaddingLeft(1),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Confirm: lipgloss.NewStyle().Bold(true),
		ConfirmBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1).
			MarginTop(1),
		TableHeader: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		TableCell:   lipgloss.NewStyle().Padding(0, 1),
		Main:        lipgloss.NewStyle().Padding(1, 2),
	}
}
