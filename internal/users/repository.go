package users

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

// CreateUser inserts a new account and returns its id. A username or email
// collision surfaces as store.ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, username, email, passwordHash string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3) RETURNING id`,
		username, email, passwordHash,
	).Scan(&id)
	if store.IsUniqueViolation(err) {
		return "", store.ErrDuplicate
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// GetCredentials returns the id and password hash for the account with the
// given email.
func (r *Repository) GetCredentials(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM users WHERE email=$1", email,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", store.ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("get credentials: %w", err)
	}
	return id, hash, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	u := &User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
