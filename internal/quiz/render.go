package quiz

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	flashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

func styleFor(kind NoticeKind) lipgloss.Style {
	switch kind {
	case NoticeCorrect:
		return correctStyle
	case NoticeWrong, NoticeUnknown:
		return wrongStyle
	case NoticeHint, NoticeTypo:
		return hintStyle
	case NoticeFlash:
		return flashStyle
	default:
		return mutedStyle
	}
}

// RenderNotice styles a notice for terminal output.
func RenderNotice(n Notice) string {
	return styleFor(n.Kind).Render(n.Text)
}

// RenderError styles an inline error.
func RenderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("error: %v", err))
}

func writeLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		// Best-effort dialogue output.
		_ = err
	}
}
