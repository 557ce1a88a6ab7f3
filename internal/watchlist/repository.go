package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/store"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUserAndMovie(ctx context.Context, userID string, movieID uuid.UUID) (*Entry, error) {
	e := &Entry{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, movie_id, created_at
		FROM watchlist WHERE user_id=$1 AND movie_id=$2`,
		userID, movieID,
	).Scan(&e.ID, &e.UserID, &e.MovieID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get watchlist entry: %w", err)
	}
	return e, nil
}

func (r *Repository) Insert(ctx context.Context, e *Entry) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO watchlist (id, user_id, movie_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		e.ID, e.UserID, e.MovieID,
	).Scan(&e.CreatedAt)
	if store.IsUniqueViolation(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert watchlist entry: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, entryID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM watchlist WHERE id=$1 AND user_id=$2", entryID, userID)
	if store.IsInvalidInput(err) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]EntryWithMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.movie_id, w.created_at,
		       m.id, m.imdb_id, m.title, m.year, m.poster, m.created_at, m.updated_at
		FROM watchlist w
		JOIN movies m ON w.movie_id = m.id
		WHERE w.user_id=$1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	out := []EntryWithMovie{}
	for rows.Next() {
		var e Entry
		var m movies.Movie
		if err := rows.Scan(&e.ID, &e.UserID, &e.MovieID, &e.CreatedAt,
			&m.ID, &m.ImdbID, &m.Title, &m.Year, &m.Poster, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, EntryWithMovie{Entry: e, Movie: m})
	}
	return out, rows.Err()
}
