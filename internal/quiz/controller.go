package quiz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/verte-zerg/drill/internal/card"
	"github.com/verte-zerg/drill/internal/history"
	"github.com/verte-zerg/drill/internal/model"
)

// Recorder stores statistics about a run. Implementations must tolerate
// FinishRun being called without any recorded pass.
type Recorder interface {
	RecordPass(ctx context.Context, stats model.PassStats) error
	FinishRun(ctx context.Context, completed bool) error
}

// Options configures a Controller. Reader, Out and Rand are required.
type Options struct {
	Reader    LineReader
	Out       io.Writer
	Rand      *rand.Rand
	NoShuffle bool
	Persister Persister
	Recorder  Recorder
	Logger    *slog.Logger
	// History is shared with the reader for recall; a fresh one is used when nil.
	History *history.History
}

// Controller repeats passes until every card is learned.
type Controller struct {
	opts    Options
	history *history.History
	logger  *slog.Logger
}

// NewController returns a controller for one run.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	hist := opts.History
	if hist == nil {
		hist = history.New()
	}
	return &Controller{opts: opts, history: hist, logger: logger}
}

// Run drives the deck to full mastery, then clears saved progress.
func (c *Controller) Run(ctx context.Context, deck []card.Card) error {
	session := NewSession(deck, c.opts.Reader, c.opts.Out, c.history, c.opts.Persister, c.logger)
	for card.CountDone(deck) < len(deck) {
		if !c.opts.NoShuffle {
			c.logger.Debug("shuffling deck", "cards", len(deck))
			card.Shuffle(c.opts.Rand, deck)
		}
		stats, err := session.RunPass(ctx)
		c.record(ctx, stats)
		if err != nil {
			c.finish(ctx, false)
			return err
		}
		c.logger.Debug("pass finished",
			"answered", stats.Answered(),
			"correct", stats.Correct,
			"wrong", stats.Wrong,
			"aborted", stats.Aborted,
			"remaining", card.Remaining(deck))
	}
	c.finish(ctx, true)

	writeLine(c.opts.Out, correctStyle.Render("Gone through everything you wanted, great job!"))
	if c.opts.Persister != nil {
		if err := c.opts.Persister.RemoveProgress(ctx); err != nil {
			return fmt.Errorf("failed to remove saved progress: %w", err)
		}
	}
	return nil
}

func (c *Controller) record(ctx context.Context, stats model.PassStats) {
	if c.opts.Recorder == nil {
		return
	}
	if err := c.opts.Recorder.RecordPass(ctx, stats); err != nil {
		c.logger.Warn("failed to record pass", "error", err)
	}
}

func (c *Controller) finish(ctx context.Context, completed bool) {
	if c.opts.Recorder == nil {
		return
	}
	if err := c.opts.Recorder.FinishRun(ctx, completed); err != nil {
		c.logger.Warn("failed to finish run", "error", err)
	}
}
