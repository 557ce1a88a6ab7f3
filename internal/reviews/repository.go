package reviews

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

func (r *Repository) Insert(ctx context.Context, rev *Review) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (id, user_id, movie_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		rev.ID, rev.UserID, rev.MovieID, rev.Score, rev.Comment,
	).Scan(&rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *Repository) GetOwned(ctx context.Context, reviewID, userID string) (*Review, error) {
	rev := &Review{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, movie_id, score, comment, created_at, updated_at
		FROM reviews WHERE id=$1 AND user_id=$2`,
		reviewID, userID,
	).Scan(&rev.ID, &rev.UserID, &rev.MovieID, &rev.Score, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || store.IsInvalidInput(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rev, nil
}

func (r *Repository) Update(ctx context.Context, rev *Review) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE reviews SET score=$1, comment=$2, updated_at=NOW()
		WHERE id=$3 AND user_id=$4
		RETURNING updated_at`,
		rev.Score, rev.Comment, rev.ID, rev.UserID,
	).Scan(&rev.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || store.IsInvalidInput(err) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, reviewID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE id=$1 AND user_id=$2", reviewID, userID)
	if store.IsInvalidInput(err) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
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

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]ReviewWithMovie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.movie_id, r.score, r.comment, r.created_at, r.updated_at,
		       m.id, m.imdb_id, m.title, m.year, m.poster, m.created_at, m.updated_at
		FROM reviews r
		JOIN movies m ON r.movie_id = m.id
		WHERE r.user_id=$1
		ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by user: %w", err)
	}
	defer rows.Close()

	out := []ReviewWithMovie{}
	for rows.Next() {
		var rev Review
		var m movies.Movie
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.MovieID, &rev.Score, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
			&m.ID, &m.ImdbID, &m.Title, &m.Year, &m.Poster, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ReviewWithMovie{Review: rev, Movie: m})
	}
	return out, rows.Err()
}

func (r *Repository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]ReviewWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.movie_id, r.score, r.comment, r.created_at, r.updated_at,
		       u.id, u.username
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.movie_id=$1
		ORDER BY r.created_at DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by movie: %w", err)
	}
	defer rows.Close()

	out := []ReviewWithAuthor{}
	for rows.Next() {
		var rev Review
		var author ReviewWithAuthor
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.MovieID, &rev.Score, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
			&author.Author.ID, &author.Author.Username); err != nil {
			return nil, err
		}
		author.Review = rev
		out = append(out, author)
	}
	return out, rows.Err()
}
