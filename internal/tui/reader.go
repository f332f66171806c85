package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/verte-zerg/drill/internal/history"
	"github.com/verte-zerg/drill/internal/quiz"
)

// NewReader returns an interactive reader when in is a terminal and a plain
// line reader otherwise.
func NewReader(in *os.File, out io.Writer, hist *history.History) quiz.LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return &TeaReader{in: in, out: out, history: hist}
	}
	return NewPlainReader(in, out)
}

// TeaReader runs a Bubble Tea prompt for every line.
type TeaReader struct {
	in      io.Reader
	out     io.Writer
	history *history.History
}

// ReadLine implements quiz.LineReader. Ctrl+C and Ctrl+D map to io.EOF.
func (r *TeaReader) ReadLine(p quiz.Prompt) (string, error) {
	program := tea.NewProgram(NewModel(p, r.history), tea.WithInput(r.in), tea.WithOutput(r.out))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.Canceled() {
		return "", io.EOF
	}
	return m.Value(), nil
}

// PlainReader reads lines from a non-interactive stream.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader wraps in for line reading.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine implements quiz.LineReader.
func (r *PlainReader) ReadLine(p quiz.Prompt) (string, error) {
	var b strings.Builder
	if p.ShowQuestion {
		b.WriteString(questionStyle.Render(p.Question))
		b.WriteString("\n")
	}
	b.WriteString(promptMarker)
	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
