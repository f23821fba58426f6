package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/bike-sharing-dashboard/internal/dashboard"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.styles
	v := m.view
	var b strings.Builder

	b.WriteString(s.Title.Render(v.Title))
	b.WriteString("\n")
	if v.Description != "" {
		b.WriteString(s.Subtitle.Render(v.Description) + "\n")
	}
	if v.Subtitle != "" {
		b.WriteString(s.Subtitle.Render(v.Subtitle) + "\n")
	}

	b.WriteString(m.renderInputs() + "\n")
	b.WriteString(m.renderMetrics() + "\n")

	b.WriteString(s.Section.Render("Daily Rentals") + "\n")
	if v.Empty {
		b.WriteString(s.Subtitle.Render("No rentals in the selected range") + "\n")
	} else {
		b.WriteString(s.Sparkline.Render(sparkline(v.Daily.Values, m.chartWidth())) + "\n")
		b.WriteString(s.Subtitle.Render(v.Start+" .. "+v.End) + "\n")
	}

	b.WriteString(s.Section.Render("Rentals by Season") + "\n")
	b.WriteString(m.renderBars(v.Seasons))
	if v.Weather != nil {
		b.WriteString(s.Section.Render("Rentals by Weather") + "\n")
		b.WriteString(m.renderBars(v.Weather))
	}

	if m.status != "" {
		b.WriteString("\n" + s.StatusError.Render(m.status) + "\n")
	}
	b.WriteString(s.Help.Render("tab switch field • enter apply • v layout (" + v.Variant + ") • q quit"))
	return b.String()
}

func (m Model) renderInputs() string {
	fields := make([]string, len(m.inputs))
	labels := []string{"Start", "End"}
	for i, in := range m.inputs {
		style := m.styles.Input
		if i == m.focus {
			style = m.styles.InputFocus
		}
		fields[i] = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Label.Render(labels[i]),
			style.Render(in.View()),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, fields[0], "  ", fields[1])
}

func (m Model) renderMetrics() string {
	tiles := make([]string, len(m.view.Metrics))
	for i, metric := range m.view.Metrics {
		tiles[i] = m.styles.Tile.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.TileLabel.Render(metric.Label),
			m.styles.TileValue.Render(metric.Value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m Model) renderBars(bars []dashboard.Bar) string {
	if len(bars) == 0 {
		return m.styles.Subtitle.Render("No data") + "\n"
	}

	width := m.chartWidth() - 30
	if width < 10 {
		width = 10
	}
	peak := bars[0].Count

	var b strings.Builder
	for _, bar := range bars {
		n := 0
		if peak > 0 {
			n = bar.Count * width / peak
		}
		if n == 0 && bar.Count > 0 {
			n = 1
		}
		fill := strings.Repeat("█", n)
		if bar.Color != "" {
			fill = lipgloss.NewStyle().Foreground(lipgloss.Color(bar.Color)).Render(fill)
		}
		b.WriteString(m.styles.BarLabel.Render(bar.Label))
		b.WriteString(fill + " " + m.styles.BarValue.Render(bar.Value) + "\n")
	}
	return b.String()
}

func (m Model) chartWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width - 2
}

// sparkline draws values in at most width cells. Longer series are bucketed
// and each cell shows the bucket maximum.
func sparkline(values []int, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	cells := values
	if len(values) > width {
		cells = make([]int, width)
		for i, v := range values {
			c := i * width / len(values)
			if v > cells[c] {
				cells[c] = v
			}
		}
	}

	peak := 0
	for _, v := range cells {
		if v > peak {
			peak = v
		}
	}

	out := make([]rune, len(cells))
	top := len(sparkLevels) - 1
	for i, v := range cells {
		lvl := 0
		if peak > 0 {
			lvl = v * top / peak
		}
		out[i] = sparkLevels[lvl]
	}
	return string(out)
}
