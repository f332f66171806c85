package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/drill/internal/card"
	"github.com/verte-zerg/drill/internal/model"
)

// ErrNoProgress is returned when no snapshot is saved for a deck.
var ErrNoProgress = errors.New("no saved progress")

type progressCardRow struct {
	Position   int    `db:"position"`
	Term       string `db:"term"`
	Definition string `db:"definition"`
	Annotation string `db:"annotation"`
	Streak     int    `db:"streak"`
}

// SaveProgress replaces the snapshot stored for deckPath.
func (s *Store) SaveProgress(ctx context.Context, deckPath, delim string, deck []card.Card) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO progress_decks (deck_path, delim, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(deck_path) DO UPDATE SET delim = excluded.delim, saved_at = excluded.saved_at`,
		deckPath, delim, formatTime(s.now()),
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM progress_cards WHERE deck_path = ?`, deckPath); err != nil {
		return err
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO progress_cards (deck_path, position, term, definition, annotation, streak)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i := range deck {
		c := &deck[i]
		if _, err = stmt.ExecContext(ctx, deckPath, i, c.Question(), c.Correct(), c.Annotation(), int(c.Streak())); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadProgress returns the saved deck for deckPath in saved order.
func (s *Store) LoadProgress(ctx context.Context, deckPath string) ([]card.Card, error) {
	var exists int
	if err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM progress_decks WHERE deck_path = ?`, deckPath); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNoProgress
	}

	var rows []progressCardRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT position, term, definition, annotation, streak
		 FROM progress_cards
		 WHERE deck_path = ?
		 ORDER BY position ASC`, deckPath); err != nil {
		return nil, err
	}
	deck := make([]card.Card, 0, len(rows))
	for _, row := range rows {
		if row.Streak < 0 || row.Streak > 255 {
			return nil, fmt.Errorf("invalid saved streak %d at position %d", row.Streak, row.Position)
		}
		deck = append(deck, card.Restore(row.Term, row.Definition, row.Annotation, uint8(row.Streak)))
	}
	return deck, nil
}

// RemoveProgress deletes the snapshot for deckPath. Missing snapshots are not an error.
func (s *Store) RemoveProgress(ctx context.Context, deckPath string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM progress_cards WHERE deck_path = ?`, deckPath); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM progress_decks WHERE deck_path = ?`, deckPath); err != nil {
		return err
	}
	return tx.Commit()
}

// ListProgress summarizes every saved snapshot.
func (s *Store) ListProgress(ctx context.Context) ([]model.ProgressSummary, error) {
	var rows []struct {
		DeckPath string `db:"deck_path"`
		SavedAt  string `db:"saved_at"`
		Cards    int    `db:"cards"`
		Done     int    `db:"done"`
	}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT d.deck_path, d.saved_at,
			COUNT(c.position) AS cards,
			COALESCE(SUM(CASE WHEN c.streak >= ? THEN 1 ELSE 0 END), 0) AS done
		 FROM progress_decks d
		 LEFT JOIN progress_cards c ON c.deck_path = d.deck_path
		 GROUP BY d.deck_path, d.saved_at
		 ORDER BY d.saved_at DESC`, int(card.MasteryThreshold)); err != nil {
		return nil, err
	}
	out := make([]model.ProgressSummary, 0, len(rows))
	for _, row := range rows {
		savedAt, err := parseTime(row.SavedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ProgressSummary{
			DeckPath: row.DeckPath,
			SavedAt:  savedAt,
			Cards:    row.Cards,
			Done:     row.Done,
		})
	}
	return out, nil
}

// DeckProgress binds progress persistence to one deck.
type DeckProgress struct {
	store    *Store
	deckPath string
	delim    string
}

// Progress returns a persister for deckPath.
func (s *Store) Progress(deckPath, delim string) *DeckProgress {
	return &DeckProgress{store: s, deckPath: deckPath, delim: delim}
}

// SaveProgress implements quiz.Persister.
func (p *DeckProgress) SaveProgress(ctx context.Context, deck []card.Card) error {
	return p.store.SaveProgress(ctx, p.deckPath, p.delim, deck)
}

// RemoveProgress implements quiz.Persister.
func (p *DeckProgress) RemoveProgress(ctx context.Context) error {
	return p.store.RemoveProgress(ctx, p.deckPath)
}
