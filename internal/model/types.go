// Package model defines shared data structures.
package model

import "time"

// Mode selects what a run does with the deck.
type Mode string

const (
	// ModeCards quizzes the deck.
	ModeCards Mode = "cards"
	// ModeVerbsToCards converts a verb deck into a card deck.
	ModeVerbsToCards Mode = "verbs2cards"
)

// ParseMode accepts the mode names and their aliases.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "cards", "card":
		return ModeCards, true
	case "verbs2cards", "convert":
		return ModeVerbsToCards, true
	default:
		return "", false
	}
}

// Config defines quiz settings after merging flags, deck header and config file.
type Config struct {
	DeckPath  string `validate:"required"`
	Delim     string `validate:"len=1"`
	Mode      Mode   `validate:"oneof=cards verbs2cards"`
	Swap      bool
	AskBoth   bool
	NoShuffle bool
	Fresh     bool
	LogLevel  string `validate:"oneof=debug info warn error"`
	Seed      int64
}

// DelimRune returns the delimiter as a rune.
func (c Config) DelimRune() rune {
	for _, r := range c.Delim {
		return r
	}
	return 0
}

// StatsConfig defines filters for stats output.
type StatsConfig struct {
	DeckPath string
	Since    *time.Time
	Last     int
	Window   int
}

// PassStats captures one pass over a deck.
type PassStats struct {
	StartedAt time.Time
	EndedAt   time.Time
	Prompted  int
	Correct   int
	Wrong     int
	Skipped   int
	Flashed   int
	Hints     int
	Typos     int
	Aborted   bool
}

// Answered returns the number of graded answers in the pass.
func (p PassStats) Answered() int {
	return p.Correct + p.Wrong
}

// RunSummary aggregates the passes of one run.
type RunSummary struct {
	RunID     string
	DeckPath  string
	StartedAt time.Time
	EndedAt   *time.Time
	Completed bool
	Passes    int
	Correct   int
	Wrong     int
	Skipped   int
	Flashed   int
}

// PassAggregate is a recorded pass used for curves.
type PassAggregate struct {
	RunID   string
	EndedAt time.Time
	Correct int
	Wrong   int
}

// Answered returns the number of graded answers in the pass.
func (p PassAggregate) Answered() int {
	return p.Correct + p.Wrong
}

// ProgressSummary describes a saved progress snapshot.
type ProgressSummary struct {
	DeckPath string
	SavedAt  time.Time
	Cards    int
	Done     int
}
