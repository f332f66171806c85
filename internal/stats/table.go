package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

type column struct {
	title string
	right bool
}

// table lays out cells by terminal display width.
type table struct {
	columns []column
	rows    [][]string
}

func newTable(columns ...column) *table {
	return &table{columns: columns}
}

// add appends a row; missing cells render empty, extra cells are dropped.
func (t *table) add(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func (t *table) lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := t.widths()
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.title
	}
	lines := make([]string, 0, len(t.rows)+1)
	lines = append(lines, t.format(header, widths))
	for _, row := range t.rows {
		lines = append(lines, t.format(row, widths))
	}
	return lines
}

func (t *table) format(row []string, widths []int) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		if t.columns[i].right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(cells, columnGap)
}

// write prints the table followed by a blank line.
func (t *table) write(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
