package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/drill/internal/model"
)

// Run records the passes of one quiz run.
type Run struct {
	store *Store
	id    uuid.UUID
}

// StartRun inserts a run for deckPath.
func (s *Store) StartRun(ctx context.Context, deckPath string) (*Run, error) {
	id := uuid.New()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, deck_path, started_at) VALUES (?, ?, ?)`,
		id.String(), deckPath, formatTime(s.now()),
	); err != nil {
		return nil, err
	}
	return &Run{store: s, id: id}, nil
}

// ID returns the run identifier.
func (r *Run) ID() string {
	return r.id.String()
}

// RecordPass implements quiz.Recorder.
func (r *Run) RecordPass(ctx context.Context, stats model.PassStats) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO passes (run_id, started_at, ended_at, prompted, correct, wrong, skipped, flashed, hints, typos, aborted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id.String(),
		formatTime(stats.StartedAt),
		formatTime(stats.EndedAt),
		stats.Prompted,
		stats.Correct,
		stats.Wrong,
		stats.Skipped,
		stats.Flashed,
		stats.Hints,
		stats.Typos,
		boolToInt(stats.Aborted),
	)
	return err
}

// FinishRun implements quiz.Recorder.
func (r *Run) FinishRun(ctx context.Context, completed bool) error {
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET ended_at = ?, completed = ? WHERE id = ?`,
		formatTime(r.store.now()), boolToInt(completed), r.id.String())
	return err
}

type runRow struct {
	ID        string         `db:"id"`
	DeckPath  string         `db:"deck_path"`
	StartedAt string         `db:"started_at"`
	EndedAt   sql.NullString `db:"ended_at"`
	Completed int            `db:"completed"`
	Passes    int            `db:"passes"`
	Correct   int            `db:"correct"`
	Wrong     int            `db:"wrong"`
	Skipped   int            `db:"skipped"`
	Flashed   int            `db:"flashed"`
}

func runFilter(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.DeckPath != "" {
		clauses = append(clauses, "r.deck_path = ?")
		args = append(args, cfg.DeckPath)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "r.started_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	return strings.Join(clauses, " AND "), args
}

// ListRuns returns run summaries, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunSummary, error) {
	where, args := runFilter(cfg)
	query := fmt.Sprintf(`SELECT r.id, r.deck_path, r.started_at, r.ended_at, r.completed,
			COUNT(p.id) AS passes,
			COALESCE(SUM(p.correct), 0) AS correct,
			COALESCE(SUM(p.wrong), 0) AS wrong,
			COALESCE(SUM(p.skipped), 0) AS skipped,
			COALESCE(SUM(p.flashed), 0) AS flashed
		FROM runs r
		LEFT JOIN passes p ON p.run_id = r.id
		WHERE %s
		GROUP BY r.id
		ORDER BY r.started_at ASC, r.rowid ASC`, where)

	var rows []runRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]model.RunSummary, 0, len(rows))
	for _, row := range rows {
		started, err := parseTime(row.StartedAt)
		if err != nil {
			return nil, err
		}
		summary := model.RunSummary{
			RunID:     row.ID,
			DeckPath:  row.DeckPath,
			StartedAt: started,
			Completed: row.Completed != 0,
			Passes:    row.Passes,
			Correct:   row.Correct,
			Wrong:     row.Wrong,
			Skipped:   row.Skipped,
			Flashed:   row.Flashed,
		}
		if row.EndedAt.Valid {
			ended, err := parseTime(row.EndedAt.String)
			if err != nil {
				return nil, err
			}
			summary.EndedAt = &ended
		}
		out = append(out, summary)
	}
	if cfg.Last > 0 && len(out) > cfg.Last {
		out = out[len(out)-cfg.Last:]
	}
	return out, nil
}

// ListPasses returns recorded passes, oldest first.
func (s *Store) ListPasses(ctx context.Context, cfg model.StatsConfig) ([]model.PassAggregate, error) {
	where, args := runFilter(cfg)
	query := fmt.Sprintf(`SELECT p.run_id, p.ended_at, p.correct, p.wrong
		FROM passes p
		JOIN runs r ON r.id = p.run_id
		WHERE %s
		ORDER BY p.id ASC`, where)

	var rows []struct {
		RunID   string `db:"run_id"`
		EndedAt string `db:"ended_at"`
		Correct int    `db:"correct"`
		Wrong   int    `db:"wrong"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]model.PassAggregate, 0, len(rows))
	for _, row := range rows {
		ended, err := parseTime(row.EndedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, model.PassAggregate{
			RunID:   row.RunID,
			EndedAt: ended,
			Correct: row.Correct,
			Wrong:   row.Wrong,
		})
	}
	return out, nil
}
