package movies

import (
	"time"

	"github.com/google/uuid"
)

// Movie is the locally cached record for an externally catalogued film.
// Rows are created on first reference and never refreshed from the provider.
type Movie struct {
	ID        uuid.UUID `json:"id"`
	ImdbID    string    `json:"imdb_id"`
	Title     string    `json:"title"`
	Year      string    `json:"year"`
	Poster    *string   `json:"poster,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Descriptor carries provider-shaped movie attributes, either straight from
// the catalog gateway or supplied by a client as a creation fallback.
type Descriptor struct {
	ImdbID string
	Title  string
	Year   string
	Poster string
}
