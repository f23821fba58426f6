package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/i474232898/bike-sharing-dashboard/internal/dashboard"
	"github.com/i474232898/bike-sharing-dashboard/internal/logging"
	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
)

const (
	focusStart = iota
	focusEnd
)

// Model is the terminal dashboard. It holds the last valid snapshot; a
// rejected range only changes the status line.
type Model struct {
	service *rental.Service
	variant dashboard.Variant
	styles  Styles

	inputs [2]textinput.Model
	focus  int

	snapshot rental.Snapshot
	view     dashboard.View
	status   string

	width    int
	height   int
	quitting bool
}

// New creates a model showing the full date range of the table.
func New(service *rental.Service, variant dashboard.Variant) Model {
	bounds, _ := service.Bounds()

	m := Model{
		service: service,
		variant: variant,
		styles:  DefaultStyles(),
		width:   80,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = len(time.RFC3339)
		ti.Width = 12
		ti.Placeholder = rental.DateLayout
		m.inputs[i] = ti
	}
	m.inputs[focusStart].SetValue(formatDay(bounds.Start))
	m.inputs[focusEnd].SetValue(formatDay(bounds.End))
	m.inputs[focusStart].Focus()

	m.snapshot = service.Snapshot(bounds)
	m.view = dashboard.Build(m.snapshot, variant)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab", "shift+tab":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			return m, m.inputs[m.focus].Focus()

		case "enter":
			m.apply()
			return m, nil

		case "v":
			m.variant = dashboard.Next(m.variant.Name)
			m.view = dashboard.Build(m.snapshot, m.variant)
			logging.Debug("variant changed", "variant", m.variant.Name)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// apply recomputes the snapshot for the typed range. Invalid input sets the
// status line and keeps the previous snapshot.
func (m *Model) apply() {
	r, err := m.typedRange()
	if err == nil {
		err = m.service.Validate(r)
	}
	if err != nil {
		m.status = err.Error()
		logging.Warn("range rejected", "start", m.inputs[focusStart].Value(), "end", m.inputs[focusEnd].Value(), "err", err)
		return
	}

	m.snapshot = m.service.Snapshot(r)
	m.view = dashboard.Build(m.snapshot, m.variant)
	m.status = ""
	logging.Debug("range applied", "range", r.String(), "records", m.snapshot.Records)
}

func (m Model) typedRange() (rental.DateRange, error) {
	start, err := parseDay(m.inputs[focusStart].Value())
	if err != nil {
		return rental.DateRange{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := parseDay(m.inputs[focusEnd].Value())
	if err != nil {
		return rental.DateRange{}, fmt.Errorf("invalid end: %w", err)
	}
	return rental.DateRange{Start: start, End: end}, nil
}

// Snapshot returns the snapshot currently on screen.
func (m Model) Snapshot() rental.Snapshot {
	return m.snapshot
}

// Status returns the current validation message, if any.
func (m Model) Status() string {
	return m.status
}

// Variant returns the active presentation variant.
func (m Model) Variant() dashboard.Variant {
	return m.variant
}

func parseDay(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if t, err := time.Parse(rental.DateLayout, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return rental.Day(t), nil
	}
	return time.Time{}, fmt.Errorf("%q is not a date (use %s)", s, rental.DateLayout)
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(rental.DateLayout)
}
