package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/drill/internal/model"
)

func TestAccuracy(t *testing.T) {
	if got := Accuracy(3, 1); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 without answers, got %v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	same := MovingAverage([]float64{1, 5}, 1)
	if same[0] != 1 || same[1] != 5 {
		t.Fatalf("window 1 should copy values, got %v", same)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100, 150, -5}); got != "▁▅██▁" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderSummaryTotals(t *testing.T) {
	runs := []model.RunSummary{
		{DeckPath: "a", Completed: true, Passes: 2, Correct: 6, Wrong: 2},
		{DeckPath: "b", Passes: 1, Correct: 0, Wrong: 0, Skipped: 1},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Runs: 2 (1 completed)", "Passes: 3", "6 correct, 2 wrong", "Accuracy: 75.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderRunTableStatus(t *testing.T) {
	ended := time.Unix(100, 0)
	runs := []model.RunSummary{
		{DeckPath: "/x/done.csv", StartedAt: time.Unix(0, 0), Completed: true, EndedAt: &ended},
		{DeckPath: "/x/stopped.csv", StartedAt: time.Unix(0, 0), EndedAt: &ended},
		{DeckPath: "/x/open.csv", StartedAt: time.Unix(0, 0)},
	}
	var buf bytes.Buffer
	if err := RenderRunTable(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if len(lines) != 5 {
		t.Fatalf("expected title, header and 3 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[2], "done.csv") || !strings.HasSuffix(lines[2], "done") {
		t.Fatalf("unexpected done row: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "stopped") {
		t.Fatalf("unexpected stopped row: %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "open") {
		t.Fatalf("unexpected open row: %q", lines[4])
	}
}

func TestRenderCurveSkipsUnansweredPasses(t *testing.T) {
	passes := []model.PassAggregate{
		{Correct: 0, Wrong: 4},
		{Correct: 0, Wrong: 0},
		{Correct: 4, Wrong: 0},
	}
	var buf bytes.Buffer
	if err := RenderCurve(&buf, passes, 1); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "▁█  0% -> 100%") {
		t.Fatalf("unexpected curve: %q", buf.String())
	}
}
