package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("39")
	colorDim    = lipgloss.Color("242")
	colorError  = lipgloss.Color("203")
	colorText   = lipgloss.Color("255")
)

// Styles holds the Lip Gloss styles of the terminal dashboard.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Label       lipgloss.Style
	Input       lipgloss.Style
	InputFocus  lipgloss.Style
	Tile        lipgloss.Style
	TileLabel   lipgloss.Style
	TileValue   lipgloss.Style
	Section     lipgloss.Style
	Sparkline   lipgloss.Style
	BarLabel    lipgloss.Style
	BarValue    lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default look.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginBottom(1),
		Subtitle:   lipgloss.NewStyle().Foreground(colorDim),
		Label:      lipgloss.NewStyle().Foreground(colorDim),
		Input:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorDim).Padding(0, 1),
		InputFocus: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 2).
			MarginRight(1),
		TileLabel:   lipgloss.NewStyle().Foreground(colorDim),
		TileValue:   lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginTop(1),
		Sparkline:   lipgloss.NewStyle().Foreground(colorAccent),
		BarLabel:    lipgloss.NewStyle().Width(18),
		BarValue:    lipgloss.NewStyle().Foreground(colorDim),
		StatusError: lipgloss.NewStyle().Foreground(colorError),
		Help:        lipgloss.NewStyle().Foreground(colorDim).MarginTop(1),
	}
}
