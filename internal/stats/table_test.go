package stats

import (
	"bytes"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable(column{title: "Deck"}, column{title: "Accuracy", right: true}, column{title: "Runs", right: true})
	tbl.add("verbs", "97.50%", "12")
	tbl.add("német.csv", "8.00%", "3")

	lines := tbl.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Deck       Accuracy  Runs" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "verbs        97.50%    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "német.csv     8.00%     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableWideRunes(t *testing.T) {
	tbl := newTable(column{title: "Term"}, column{title: "N"})
	tbl.add("日本", "1")
	tbl.add("ab", "2")
	lines := tbl.lines()
	if lines[1] != "日本  1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab    2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestTableShortRowsAndBlankLine(t *testing.T) {
	tbl := newTable(column{title: "A"}, column{title: "B", right: true})
	tbl.add("x")
	tbl.add("y", "z", "dropped")
	var buf bytes.Buffer
	if err := tbl.write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "A  B\nx   \ny  z\n\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
