package watchlist

import (
	"context"

	"github.com/google/uuid"
)

// Store persists watchlist entries. Insert reports store.ErrDuplicate when
// the (user, movie) pair already exists; Delete reports store.ErrNotFound
// when no entry with that id is owned by userID.
type Store interface {
	GetByUserAndMovie(ctx context.Context, userID string, movieID uuid.UUID) (*Entry, error)
	Insert(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, entryID, userID string) error
	ListByUser(ctx context.Context, userID string) ([]EntryWithMovie, error)
}
