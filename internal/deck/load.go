// Package deck reads decks from text and spreadsheet files and converts verb
// decks into card decks.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/drill/internal/card"
)

// ErrEmptyDeck is returned when a deck file holds no cards.
var ErrEmptyDeck = errors.New("deck has no cards")

// IsSpreadsheet reports whether path is read through excelize.
func IsSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// Load reads a deck from path. Text files hold one card per line; blank
// lines and lines starting with '#' are skipped.
func Load(path string, delim rune) ([]card.Card, error) {
	if IsSpreadsheet(path) {
		return loadSpreadsheet(path)
	}
	var cards []card.Card
	err := eachLine(path, func(n int, line string) error {
		c, err := card.Deser(line, delim)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
		cards = append(cards, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDeck)
	}
	return cards, nil
}

func loadSpreadsheet(path string) ([]card.Card, error) {
	var cards []card.Card
	err := eachRow(path, func(n int, fields []string) error {
		c, err := card.FromFields(fields)
		if err != nil {
			return fmt.Errorf("%s: row %d: %w", path, n, err)
		}
		cards = append(cards, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDeck)
	}
	return cards, nil
}

func skippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// eachLine calls fn with every non-blank, non-comment line and its 1-based number.
func eachLine(path string, fn func(n int, line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open deck: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only deck.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if skippable(line) {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read deck: %w", err)
	}
	return nil
}

// eachRow calls fn with the cells of every non-empty row of the first sheet.
func eachRow(path string, fn func(n int, fields []string) error) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only spreadsheet.
			_ = cerr
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("%s: spreadsheet has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}
	for i, row := range rows {
		if strings.TrimSpace(strings.Join(row, "")) == "" || skippable(row[0]) {
			continue
		}
		if err := fn(i+1, row); err != nil {
			return err
		}
	}
	return nil
}
