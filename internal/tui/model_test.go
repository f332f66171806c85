package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/drill/internal/history"
	"github.com/verte-zerg/drill/internal/quiz"
)

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestViewShowsQuestionAndFooter(t *testing.T) {
	m := NewModel(quiz.Prompt{Question: "haus", ShowQuestion: true, Remaining: 3, Total: 5}, nil)
	out := m.View()
	if !strings.Contains(out, "haus") {
		t.Fatalf("expected question in view: %s", out)
	}
	if !strings.Contains(out, "Learned 2/5") {
		t.Fatalf("expected footer in view: %s", out)
	}
}

func TestViewSuppressesQuestion(t *testing.T) {
	m := NewModel(quiz.Prompt{Question: "haus", ShowQuestion: false, Remaining: 1, Total: 1}, nil)
	if strings.Contains(m.View(), "haus") {
		t.Fatalf("expected question to be hidden")
	}
}

func TestFooterTruncatesToWidth(t *testing.T) {
	m := NewModel(quiz.Prompt{Question: "haus", Remaining: 1, Total: 10}, nil)
	m.Update(tea.WindowSizeMsg{Width: 12, Height: 5})
	footer := m.renderFooter()
	if !strings.Contains(footer, "…") {
		t.Fatalf("expected truncated footer, got %q", footer)
	}
}

func TestEnterSubmits(t *testing.T) {
	m := NewModel(quiz.Prompt{Question: "haus", ShowQuestion: true}, nil)
	typeText(m, "house")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command on enter")
	}
	if m.Value() != "house" {
		t.Fatalf("expected typed value, got %q", m.Value())
	}
	if m.Canceled() {
		t.Fatalf("expected submitted, not canceled")
	}
	if !strings.Contains(m.View(), "house") {
		t.Fatalf("expected final view to keep the answer")
	}
}

func TestCtrlDOnEmptyLineCancels(t *testing.T) {
	m := NewModel(quiz.Prompt{}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.Canceled() {
		t.Fatalf("expected prompt to be canceled")
	}
}

func TestHistoryRecall(t *testing.T) {
	hist := history.New()
	hist.Add(":h")
	hist.Add("house")
	m := NewModel(quiz.Prompt{}, hist)
	typeText(m, "dra")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != "house" {
		t.Fatalf("expected most recent entry, got %q", m.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != ":h" {
		t.Fatalf("expected oldest entry, got %q", m.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Value() != ":h" {
		t.Fatalf("expected recall to stop at oldest entry, got %q", m.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Value() != "dra" {
		t.Fatalf("expected draft to be restored, got %q", m.Value())
	}
}
