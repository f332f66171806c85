// Package quiz implements the session engine: command interpretation, the
// per-pass session loop, and the repetition controller.
package quiz

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/drill/internal/card"
)

// Sentinel starts every command line.
const Sentinel = ':'

// Kind identifies what a submitted line asks for.
type Kind int

const (
	KindGuess Kind = iota
	KindQuit
	KindHint
	KindSave
	KindSaveQuit
	KindTypo
	KindSkip
	KindRevise
	KindFlash
	KindProgress
	KindUnknown
)

var commands = map[string]Kind{
	":q":      KindQuit,
	":quit":   KindQuit,
	":exit":   KindQuit,
	":h":      KindHint,
	":help":   KindHint,
	":hint":   KindHint,
	":w":      KindSave,
	":write":  KindSave,
	":save":   KindSave,
	":wq":     KindSaveQuit,
	":typo":   KindTypo,
	":skip":   KindSkip,
	":revise": KindRevise,
	":f":      KindFlash,
	":flash":  KindFlash,
	":n":      KindProgress,
	":num":    KindProgress,
	":togo":   KindProgress,
}

// Command is a parsed input line.
type Command struct {
	Kind Kind
	Text string
}

// Parse classifies a raw input line.
func Parse(line string) Command {
	text := strings.TrimSpace(line)
	if !strings.HasPrefix(text, string(Sentinel)) {
		return Command{Kind: KindGuess, Text: text}
	}
	kind, ok := commands[text]
	if !ok {
		kind = KindUnknown
	}
	return Command{Kind: kind, Text: text}
}

// Informational reports whether the command only displays something and
// leaves the cursor on the same card.
func (c Command) Informational() bool {
	switch c.Kind {
	case KindHint, KindProgress, KindTypo:
		return true
	default:
		return false
	}
}

// Signal tells the session loop how to move after a line.
type Signal int

const (
	// Continue keeps the cursor on the current card.
	Continue Signal = iota
	// AdvanceWithoutCredit moves on without touching the counter.
	AdvanceWithoutCredit
	// AdvanceWithCredit increments the current card and moves on.
	AdvanceWithCredit
	// AdvanceWithDebit decrements the current card and moves on.
	AdvanceWithDebit
	// AbortPass ends the pass early.
	AbortPass
	// Terminate ends the run.
	Terminate
)

// NoticeKind selects how a notice is rendered.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeCorrect
	NoticeWrong
	NoticeHint
	NoticeFlash
	NoticeSkip
	NoticeTypo
	NoticeProgress
	NoticeRevise
	NoticeExit
	NoticeUnknown
)

// Notice is a message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Position locates the cursor within a pass.
type Position struct {
	Index     int
	Total     int
	Remaining int
}

// Outcome is the effect of one interpreted line.
type Outcome struct {
	Signal     Signal
	Notice     Notice
	CreditPrev bool
	Save       bool
	ExitCode   int
}

// Interpret computes the effect of cmd on the current card. prev is the last
// answered card of the pass, nil when there is none. It does not mutate
// either card.
func Interpret(cmd Command, cur *card.Card, prev *card.Card, pos Position) Outcome {
	switch cmd.Kind {
	case KindGuess:
		if cmd.Text == cur.Correct() {
			return Outcome{Signal: AdvanceWithCredit, Notice: Notice{Kind: NoticeCorrect, Text: "Correct!"}}
		}
		return Outcome{
			Signal: AdvanceWithDebit,
			Notice: Notice{Kind: NoticeWrong, Text: fmt.Sprintf("Wrong, it was: %s", cur.Correct())},
		}
	case KindQuit:
		return Outcome{Signal: Terminate, Notice: Notice{Kind: NoticeExit, Text: "Exiting."}}
	case KindSaveQuit:
		return Outcome{Signal: Terminate, Save: true, Notice: Notice{Kind: NoticeExit, Text: "Exiting."}}
	case KindHint:
		text := "hint: " + cur.Hint()
		if cur.Annotation() != "" {
			text += "  (" + cur.Annotation() + ")"
		}
		return Outcome{Signal: Continue, Notice: Notice{Kind: NoticeHint, Text: text}}
	case KindSave:
		return Outcome{Signal: Continue, Save: true}
	case KindTypo:
		if prev == nil {
			return Outcome{Signal: Continue, Notice: Notice{Kind: NoticeTypo, Text: "Nothing to correct."}}
		}
		return Outcome{
			Signal:     Continue,
			CreditPrev: true,
			Notice:     Notice{Kind: NoticeTypo, Text: "Typo corrected: " + prev.Ser(" = ")},
		}
	case KindSkip:
		return Outcome{Signal: AdvanceWithoutCredit, Notice: Notice{Kind: NoticeSkip, Text: "Skipping: " + cur.Ser(" = ")}}
	case KindRevise:
		return Outcome{Signal: AbortPass, Notice: Notice{Kind: NoticeRevise, Text: "Revising from the start."}}
	case KindFlash:
		return Outcome{Signal: AdvanceWithCredit, Notice: Notice{Kind: NoticeFlash, Text: cur.Flashcard()}}
	case KindProgress:
		return Outcome{
			Signal: Continue,
			Notice: Notice{
				Kind: NoticeProgress,
				Text: fmt.Sprintf("%d left to learn, at card %d of %d", pos.Remaining, pos.Index+1, pos.Total),
			},
		}
	default:
		return Outcome{Signal: Continue, Notice: Notice{Kind: NoticeUnknown, Text: "Unknown command: " + cmd.Text}}
	}
}
