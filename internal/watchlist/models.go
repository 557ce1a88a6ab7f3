package watchlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
)

// Entry links an account to a movie. At most one entry exists per
// (user, movie) pair.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   uuid.UUID `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryWithMovie is the explicit join shape returned by listings.
type EntryWithMovie struct {
	Entry Entry        `json:"entry"`
	Movie movies.Movie `json:"movie"`
}
