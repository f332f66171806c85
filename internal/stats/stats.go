// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/drill/internal/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

const timeFormat = "2006-01-02 15:04"

// Accuracy returns the share of correct answers, or 0 when nothing was answered.
func Accuracy(correct, wrong int) float64 {
	total := correct + wrong
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders percentages in [0, 100] as a single line of block runes.
func Sparkline(values []float64) string {
	var b strings.Builder
	top := len(sparkRunes) - 1
	for _, v := range values {
		v = math.Max(0, math.Min(100, v))
		b.WriteRune(sparkRunes[int(math.Round(v/100*float64(top)))])
	}
	return b.String()
}

// RenderSummary prints totals over runs.
func RenderSummary(w io.Writer, runs []model.RunSummary) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var completed, passes, correct, wrong, skipped, flashed int
	for _, r := range runs {
		if r.Completed {
			completed++
		}
		passes += r.Passes
		correct += r.Correct
		wrong += r.Wrong
		skipped += r.Skipped
		flashed += r.Flashed
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d (%d completed)", len(runs), completed),
		fmt.Sprintf("Passes: %d", passes),
		fmt.Sprintf("Answers: %d correct, %d wrong", correct, wrong),
		fmt.Sprintf("Skipped: %d, flashed: %d", skipped, flashed),
		fmt.Sprintf("Accuracy: %.2f%%", Accuracy(correct, wrong)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRunTable prints one row per run.
func RenderRunTable(w io.Writer, runs []model.RunSummary) error {
	if len(runs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Runs"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Started"},
		column{title: "Deck"},
		column{title: "Passes", right: true},
		column{title: "Correct", right: true},
		column{title: "Wrong", right: true},
		column{title: "Accuracy", right: true},
		column{title: "Status"},
	)
	for _, r := range runs {
		tbl.add(
			r.StartedAt.Local().Format(timeFormat),
			filepath.Base(r.DeckPath),
			fmt.Sprintf("%d", r.Passes),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Wrong),
			fmt.Sprintf("%.2f%%", Accuracy(r.Correct, r.Wrong)*100),
			runStatus(r),
		)
	}
	return tbl.write(w)
}

func runStatus(r model.RunSummary) string {
	switch {
	case r.Completed:
		return "done"
	case r.EndedAt != nil:
		return "stopped"
	default:
		return "open"
	}
}

// RenderCurve prints the per-pass accuracy as a smoothed sparkline.
func RenderCurve(w io.Writer, passes []model.PassAggregate, window int) error {
	accs := make([]float64, 0, len(passes))
	for _, p := range passes {
		if p.Answered() == 0 {
			continue
		}
		accs = append(accs, Accuracy(p.Correct, p.Wrong)*100)
	}
	if len(accs) == 0 {
		return nil
	}
	accs = MovingAverage(accs, window)
	title := "Accuracy per pass"
	if window > 1 {
		title = fmt.Sprintf("Accuracy per pass (moving average over %d)", window)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s  %.0f%% -> %.0f%%\n\n", Sparkline(accs), accs[0], accs[len(accs)-1]); err != nil {
		return err
	}
	return nil
}
