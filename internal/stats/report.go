package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/drill/internal/model"
	"github.com/verte-zerg/drill/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs   []model.RunSummary
	Passes []model.PassAggregate
	Decks  []DeckAggregate
	Window int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	passes, err := st.ListPasses(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:   runs,
		Passes: passesOf(runs, passes),
		Decks:  AggregateDecks(runs),
		Window: cfg.Window,
	}, nil
}

// Render writes the full report.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Runs); err != nil {
		return err
	}
	if err := RenderRunTable(w, r.Runs); err != nil {
		return err
	}
	if err := RenderCurve(w, r.Passes, r.Window); err != nil {
		return err
	}
	return RenderDeckTable(w, r.Decks)
}

// passesOf keeps only passes belonging to the selected runs.
func passesOf(runs []model.RunSummary, passes []model.PassAggregate) []model.PassAggregate {
	ids := make(map[string]struct{}, len(runs))
	for _, r := range runs {
		ids[r.RunID] = struct{}{}
	}
	out := make([]model.PassAggregate, 0, len(passes))
	for _, p := range passes {
		if _, ok := ids[p.RunID]; ok {
			out = append(out, p)
		}
	}
	return out
}
