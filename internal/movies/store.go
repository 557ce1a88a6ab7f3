package movies

import "context"

// Store persists movie rows. Insert must report store.ErrDuplicate when the
// imdb id is already present so the resolver can converge instead of failing.
type Store interface {
	GetByImdbID(ctx context.Context, imdbID string) (*Movie, error)
	GetByID(ctx context.Context, id string) (*Movie, error)
	Insert(ctx context.Context, m *Movie) error
}
