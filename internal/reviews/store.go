package reviews

import (
	"context"

	"github.com/google/uuid"
)

// Store persists reviews. GetOwned and Delete report store.ErrNotFound when
// no review with that id belongs to userID, conflating absent and unowned.
type Store interface {
	Insert(ctx context.Context, r *Review) error
	GetOwned(ctx context.Context, reviewID, userID string) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, reviewID, userID string) error
	ListByUser(ctx context.Context, userID string) ([]ReviewWithMovie, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]ReviewWithAuthor, error)
}
