package stats

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/verte-zerg/drill/internal/model"
)

// DeckAggregate sums the runs of one deck.
type DeckAggregate struct {
	DeckPath  string
	Runs      int
	Completed int
	Correct   int
	Wrong     int
}

// Accuracy returns the deck's share of correct answers.
func (d DeckAggregate) Accuracy() float64 {
	return Accuracy(d.Correct, d.Wrong)
}

// AggregateDecks groups runs by deck path.
func AggregateDecks(runs []model.RunSummary) []DeckAggregate {
	index := map[string]int{}
	var out []DeckAggregate
	for _, r := range runs {
		i, ok := index[r.DeckPath]
		if !ok {
			i = len(out)
			index[r.DeckPath] = i
			out = append(out, DeckAggregate{DeckPath: r.DeckPath})
		}
		agg := &out[i]
		agg.Runs++
		if r.Completed {
			agg.Completed++
		}
		agg.Correct += r.Correct
		agg.Wrong += r.Wrong
	}
	return out
}

// WeakestDecks returns up to n decks ordered by lowest accuracy. n <= 0 returns all of them.
func WeakestDecks(aggs []DeckAggregate, n int) []DeckAggregate {
	out := make([]DeckAggregate, len(aggs))
	copy(out, aggs)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].Accuracy(), out[j].Accuracy()
		if ai == aj {
			return out[i].DeckPath < out[j].DeckPath
		}
		return ai < aj
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// RenderDeckTable prints per-deck aggregates, weakest first.
func RenderDeckTable(w io.Writer, aggs []DeckAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Decks (weakest first)"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Deck"},
		column{title: "Runs", right: true},
		column{title: "Completed", right: true},
		column{title: "Accuracy", right: true},
	)
	for _, agg := range WeakestDecks(aggs, 0) {
		tbl.add(
			filepath.Base(agg.DeckPath),
			fmt.Sprintf("%d", agg.Runs),
			fmt.Sprintf("%d", agg.Completed),
			fmt.Sprintf("%.2f%%", agg.Accuracy()*100),
		)
	}
	return tbl.write(w)
}
