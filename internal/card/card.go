// Package card defines the learnable unit of a deck and its mastery model.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLine is returned when a deck line cannot be split into a card.
var ErrMalformedLine = errors.New("malformed card line")

// maxStreak is the ceiling of the mastery counter.
const maxStreak = ^uint8(0)

// Card is a term/definition pair with a mastery counter.
type Card struct {
	term       string
	definition string
	annotation string
	streak     uint8
}

// New returns a card with a zero mastery counter.
func New(term, definition, annotation string) Card {
	return Card{term: term, definition: definition, annotation: annotation}
}

// Restore returns a card with a previously saved mastery counter.
func Restore(term, definition, annotation string, streak uint8) Card {
	return Card{term: term, definition: definition, annotation: annotation, streak: streak}
}

// Deser parses `term<delim>definition[<delim>annotation]`.
func Deser(line string, delim rune) (Card, error) {
	parts := strings.Split(line, string(delim))
	if len(parts) < 2 {
		return Card{}, fmt.Errorf("%w: missing delimiter %q in %q", ErrMalformedLine, delim, line)
	}
	if len(parts) > 3 {
		parts = append(parts[:2], strings.Join(parts[2:], string(delim)))
	}
	c, err := FromFields(parts)
	if err != nil {
		return Card{}, fmt.Errorf("%w in %q", err, line)
	}
	return c, nil
}

// FromFields builds a card from term, definition and an optional annotation.
// Fields are trimmed; extra fields are ignored.
func FromFields(fields []string) (Card, error) {
	if len(fields) < 2 {
		return Card{}, fmt.Errorf("%w: expected at least 2 fields, got %d", ErrMalformedLine, len(fields))
	}
	term := strings.TrimSpace(fields[0])
	definition := strings.TrimSpace(fields[1])
	if term == "" || definition == "" {
		return Card{}, fmt.Errorf("%w: empty term or definition", ErrMalformedLine)
	}
	annotation := ""
	if len(fields) > 2 {
		annotation = strings.TrimSpace(fields[2])
	}
	return New(term, definition, annotation), nil
}

// Question returns the side being asked.
func (c *Card) Question() string {
	return c.term
}

// Correct returns the expected answer.
func (c *Card) Correct() string {
	return c.definition
}

// Annotation returns the optional note attached to the card.
func (c *Card) Annotation() string {
	return c.annotation
}

// Streak returns the raw mastery counter.
func (c *Card) Streak() uint8 {
	return c.streak
}

// Hint reveals the first half of the answer.
func (c *Card) Hint() string {
	return Hint(c.definition)
}

// Flashcard renders both sides of the card.
func (c *Card) Flashcard() string {
	out := c.term + FlashSeparator + c.definition
	if c.annotation != "" {
		out += " (" + c.annotation + ")"
	}
	return out
}

// Ser joins term and definition with sep.
func (c *Card) Ser(sep string) string {
	return c.term + sep + c.definition
}

// Incr credits one learning event.
func (c *Card) Incr() {
	if c.streak < maxStreak {
		c.streak++
	}
}

// Decr debits one learning event, never below zero.
func (c *Card) Decr() {
	if c.streak > 0 {
		c.streak--
	}
}

// Swap exchanges term and definition.
func (c *Card) Swap() {
	c.term, c.definition = c.definition, c.term
}

// Status classifies the mastery counter.
func (c *Card) Status() Status {
	return Classify(c.streak)
}

// FlashSeparator sits between the two sides of a flashcard.
const FlashSeparator = "  →  "
