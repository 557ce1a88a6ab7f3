package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelist/reelist/internal/store"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByImdbID(ctx context.Context, imdbID string) (*Movie, error) {
	return r.get(ctx, "imdb_id", imdbID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Movie, error) {
	return r.get(ctx, "id", id)
}

func (r *Repository) get(ctx context.Context, column, value string) (*Movie, error) {
	m := &Movie{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, imdb_id, title, year, poster, created_at, updated_at
		FROM movies WHERE `+column+`=$1`, value,
	).Scan(&m.ID, &m.ImdbID, &m.Title, &m.Year, &m.Poster, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie by %s: %w", column, err)
	}
	return m, nil
}

func (r *Repository) Insert(ctx context.Context, m *Movie) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (id, imdb_id, title, year, poster)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		m.ID, m.ImdbID, m.Title, m.Year, m.Poster,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if store.IsUniqueViolation(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}
