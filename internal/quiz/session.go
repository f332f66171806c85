package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/verte-zerg/drill/internal/card"
	"github.com/verte-zerg/drill/internal/history"
	"github.com/verte-zerg/drill/internal/model"
)

// ErrSaveUnavailable is reported when a save is requested without a persister.
var ErrSaveUnavailable = errors.New("saving progress is not configured")

// Prompt is what the reader shows before reading a line.
type Prompt struct {
	Question     string
	ShowQuestion bool
	Remaining    int
	Total        int
}

// LineReader reads one line of user input.
type LineReader interface {
	ReadLine(p Prompt) (string, error)
}

// Persister saves and clears resumable progress for the deck being learned.
type Persister interface {
	SaveProgress(ctx context.Context, deck []card.Card) error
	RemoveProgress(ctx context.Context) error
}

// TerminateError is returned when the user ends the whole run.
type TerminateError struct {
	Code int
}

func (e *TerminateError) Error() string {
	return fmt.Sprintf("session terminated (exit code %d)", e.Code)
}

// Session runs single passes over a deck it borrows from the controller.
type Session struct {
	deck      []card.Card
	reader    LineReader
	out       io.Writer
	history   *history.History
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
}

// NewSession builds a session over deck. persister may be nil.
func NewSession(deck []card.Card, reader LineReader, out io.Writer, hist *history.History, persister Persister, logger *slog.Logger) *Session {
	if hist == nil {
		hist = history.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		deck:      deck,
		reader:    reader,
		out:       out,
		history:   hist,
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
}

// RunPass walks the deck once, left to right. It returns when the cursor
// reaches the end or on :revise. Quit commands return a *TerminateError.
func (s *Session) RunPass(ctx context.Context) (model.PassStats, error) {
	stats := model.PassStats{StartedAt: s.now()}
	finish := func(err error) (model.PassStats, error) {
		stats.EndedAt = s.now()
		return stats, err
	}

	writeLine(s.out, fmt.Sprintf("\nYou have %d words to learn, let's start!\n", card.Remaining(s.deck)))

	i := 0
	lastAnswered := -1
	lastPrompted := -1
	for i < len(s.deck) {
		cur := &s.deck[i]
		if cur.Status() == card.StatusDone {
			i++
			continue
		}
		if lastPrompted != i {
			stats.Prompted++
		}

		var prev *card.Card
		if lastAnswered >= 0 {
			prev = &s.deck[lastAnswered]
		}

		prompt := Prompt{
			Question:     cur.Question(),
			ShowQuestion: lastPrompted != i || !s.lastWasInformational(),
			Remaining:    card.Remaining(s.deck),
			Total:        len(s.deck),
		}
		lastPrompted = i
		line, err := s.reader.ReadLine(prompt)
		if err != nil {
			return finish(fmt.Errorf("failed to read input: %w", err))
		}
		s.history.Add(line)

		cmd := Parse(line)
		outcome := Interpret(cmd, cur, prev, Position{
			Index:     i,
			Total:     len(s.deck),
			Remaining: prompt.Remaining,
		})
		if outcome.Notice.Kind != NoticeNone {
			writeLine(s.out, RenderNotice(outcome.Notice))
		}

		switch cmd.Kind {
		case KindHint:
			stats.Hints++
		case KindSkip:
			stats.Skipped++
		case KindFlash:
			stats.Flashed++
		}

		if outcome.CreditPrev && prev != nil {
			prev.Incr()
			stats.Typos++
			lastAnswered = -1
		}
		if outcome.Save {
			if err := s.save(ctx); err != nil {
				writeLine(s.out, RenderError(err))
				s.logger.Error("failed to save progress", "error", err)
				// A failed :wq does not terminate.
				continue
			}
			writeLine(s.out, RenderNotice(Notice{Kind: NoticeNone, Text: "Progress saved."}))
		}

		switch outcome.Signal {
		case Continue:
		case AdvanceWithoutCredit:
			i++
		case AdvanceWithCredit:
			cur.Incr()
			if cmd.Kind == KindGuess {
				stats.Correct++
			}
			lastAnswered = i
			i++
		case AdvanceWithDebit:
			cur.Decr()
			stats.Wrong++
			lastAnswered = i
			i++
		case AbortPass:
			stats.Aborted = true
			return finish(nil)
		case Terminate:
			return finish(&TerminateError{Code: outcome.ExitCode})
		}
	}
	return finish(nil)
}

func (s *Session) lastWasInformational() bool {
	last, ok := s.history.Last()
	if !ok {
		return false
	}
	return Parse(last).Informational()
}

func (s *Session) save(ctx context.Context) error {
	if s.persister == nil {
		return ErrSaveUnavailable
	}
	if err := s.persister.SaveProgress(ctx, s.deck); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
