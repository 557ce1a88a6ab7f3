package watchlist

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/store"
)

var (
	// ErrDuplicate means the movie is already on the user's watchlist.
	ErrDuplicate = errors.New("movie already in watchlist")

	// ErrNotFound covers both a missing entry and one owned by someone
	// else, so callers cannot probe other accounts' watchlists.
	ErrNotFound = errors.New("watchlist entry not found")
)

// Manager enforces the one-entry-per-(user, movie) rule and ownership of
// removals.
type Manager struct {
	store Store
}

func NewManager(s Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) Add(ctx context.Context, userID string, movie *movies.Movie) (*Entry, error) {
	_, err := m.store.GetByUserAndMovie(ctx, userID, movie.ID)
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	entry := &Entry{
		ID:      uuid.New(),
		UserID:  userID,
		MovieID: movie.ID,
	}
	err = m.store.Insert(ctx, entry)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent add; same outcome as the
		// existence check above.
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (m *Manager) Remove(ctx context.Context, userID, entryID string) error {
	err := m.store.Delete(ctx, entryID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (m *Manager) List(ctx context.Context, userID string) ([]EntryWithMovie, error) {
	return m.store.ListByUser(ctx, userID)
}
