package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/users"
)

// Review is a scored, optionally commented annotation of a movie by one
// account. Nothing prevents an account from reviewing the same movie twice.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   uuid.UUID `json:"movie_id"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewWithMovie is the join shape for per-account listings.
type ReviewWithMovie struct {
	Review Review       `json:"review"`
	Movie  movies.Movie `json:"movie"`
}

// ReviewWithAuthor is the join shape for per-movie listings; only the
// author's public fields are exposed.
type ReviewWithAuthor struct {
	Review Review           `json:"review"`
	Author users.PublicUser `json:"author"`
}
