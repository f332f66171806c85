// Package tui provides the Bubble Tea line prompt used during a quiz.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/drill/internal/history"
	"github.com/verte-zerg/drill/internal/quiz"
)

const promptMarker = "  > "

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model reads a single line with history recall.
type Model struct {
	prompt  quiz.Prompt
	input   textinput.Model
	history *history.History

	// histIndex == history.Len() while editing a fresh line.
	histIndex int
	draft     string

	width     int
	submitted bool
	canceled  bool
}

// NewModel constructs a prompt model. hist may be nil.
func NewModel(p quiz.Prompt, hist *history.History) *Model {
	if hist == nil {
		hist = history.New()
	}
	ti := textinput.New()
	ti.Prompt = markerStyle.Render(promptMarker)
	ti.Focus()
	return &Model{
		prompt:    p,
		input:     ti,
		history:   hist,
		histIndex: hist.Len(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.canceled = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.prompt.ShowQuestion {
		b.WriteString(questionStyle.Render(m.prompt.Question))
		b.WriteString("\n")
	}
	if m.submitted || m.canceled {
		b.WriteString(markerStyle.Render(promptMarker))
		b.WriteString(m.input.Value())
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.input.View())
	if footer := m.renderFooter(); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
	}
	return b.String()
}

// Value returns the line typed so far.
func (m *Model) Value() string {
	return m.input.Value()
}

// Canceled reports whether the user closed the prompt without submitting.
func (m *Model) Canceled() bool {
	return m.canceled
}

func (m *Model) recall(step int) {
	next := m.histIndex + step
	if next < 0 || next > m.history.Len() {
		return
	}
	if m.histIndex == m.history.Len() {
		m.draft = m.input.Value()
	}
	m.histIndex = next
	if next == m.history.Len() {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history.At(next))
	}
	m.input.CursorEnd()
}

func (m *Model) renderFooter() string {
	if m.prompt.Total == 0 {
		return ""
	}
	learned := m.prompt.Total - m.prompt.Remaining
	footer := fmt.Sprintf("Learned %d/%d · :h hint · :f flash · :skip · :w save · :q quit", learned, m.prompt.Total)
	if m.width > 0 && runewidth.StringWidth(footer) > m.width {
		footer = runewidth.Truncate(footer, m.width, "…")
	}
	return footerStyle.Render(footer)
}
