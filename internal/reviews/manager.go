package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/store"
)

const (
	MinScore = 1
	MaxScore = 10
)

var (
	// ErrInvalidScore means the score is outside [MinScore, MaxScore].
	ErrInvalidScore = errors.New("score must be between 1 and 10")

	// ErrNotFound covers both a missing review and one owned by another
	// account.
	ErrNotFound = errors.New("review not found")
)

// Manager validates and persists review mutations. Repeat reviews for the
// same (user, movie) pair are allowed.
type Manager struct {
	store Store
}

func NewManager(s Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) Create(ctx context.Context, userID string, movie *movies.Movie, score int, comment *string) (*Review, error) {
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}

	review := &Review{
		ID:      uuid.New(),
		UserID:  userID,
		MovieID: movie.ID,
		Score:   score,
		Comment: comment,
	}
	if err := m.store.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update applies only the supplied fields to an owned review and returns the
// updated record.
func (m *Manager) Update(ctx context.Context, userID, reviewID string, score *int, comment *string) (*Review, error) {
	review, err := m.store.GetOwned(ctx, reviewID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if score != nil {
		if *score < MinScore || *score > MaxScore {
			return nil, ErrInvalidScore
		}
		review.Score = *score
	}
	if comment != nil {
		review.Comment = comment
	}

	err = m.store.Update(ctx, review)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (m *Manager) Delete(ctx context.Context, userID, reviewID string) error {
	err := m.store.Delete(ctx, reviewID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (m *Manager) ListForUser(ctx context.Context, userID string) ([]ReviewWithMovie, error) {
	return m.store.ListByUser(ctx, userID)
}

func (m *Manager) ListForMovie(ctx context.Context, movieID uuid.UUID) ([]ReviewWithAuthor, error) {
	return m.store.ListByMovie(ctx, movieID)
}
