package stats

import (
	"testing"

	"github.com/verte-zerg/drill/internal/model"
)

func TestAggregateDecks(t *testing.T) {
	runs := []model.RunSummary{
		{DeckPath: "b", Correct: 1, Wrong: 1},
		{DeckPath: "a", Correct: 4, Wrong: 0, Completed: true},
		{DeckPath: "b", Correct: 3, Wrong: 1, Completed: true},
	}
	aggs := AggregateDecks(runs)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(aggs))
	}
	if aggs[0].DeckPath != "b" || aggs[0].Runs != 2 || aggs[0].Completed != 1 || aggs[0].Correct != 4 || aggs[0].Wrong != 2 {
		t.Fatalf("unexpected aggregate for b: %+v", aggs[0])
	}
}

func TestWeakestDecks(t *testing.T) {
	aggs := []DeckAggregate{
		{DeckPath: "strong", Correct: 9, Wrong: 1},
		{DeckPath: "weak", Correct: 1, Wrong: 9},
		{DeckPath: "mid", Correct: 5, Wrong: 5},
	}
	top := WeakestDecks(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(top))
	}
	if top[0].DeckPath != "weak" || top[1].DeckPath != "mid" {
		t.Fatalf("unexpected order: %+v", top)
	}
	if aggs[0].DeckPath != "strong" {
		t.Fatalf("input slice must not be reordered")
	}
	if all := WeakestDecks(aggs, 0); len(all) != 3 {
		t.Fatalf("expected all decks, got %d", len(all))
	}
}
