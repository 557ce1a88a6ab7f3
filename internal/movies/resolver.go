package movies

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/omdb"
	"github.com/reelist/reelist/internal/store"
)

// Catalog is the slice of the OMDb client the resolver needs.
type Catalog interface {
	FetchByID(ctx context.Context, imdbID string) (*omdb.Result, error)
	SearchByTitle(ctx context.Context, title string) (*omdb.Result, error)
}

// Resolver guarantees one local Movie row per imdb id. Lookups never refresh
// an existing row; creation falls back to the catalog gateway when the caller
// supplies no descriptor.
type Resolver struct {
	store   Store
	catalog Catalog
}

func NewResolver(s Store, catalog Catalog) *Resolver {
	return &Resolver{store: s, catalog: catalog}
}

// Resolve returns the canonical Movie for imdbID, creating it on first
// reference. Two concurrent resolvers for the same id can both miss the
// initial lookup; the loser of the insert race re-fetches the winner's row,
// so both converge on the same surrogate id.
func (r *Resolver) Resolve(ctx context.Context, imdbID string, fallback *Descriptor) (*Movie, error) {
	if imdbID == "" {
		return nil, fmt.Errorf("imdb id is required")
	}

	m, err := r.store.GetByImdbID(ctx, imdbID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	desc := fallback
	if desc == nil {
		result, err := r.catalog.FetchByID(ctx, imdbID)
		if err != nil {
			return nil, err
		}
		desc = &Descriptor{
			ImdbID: result.ImdbID,
			Title:  result.Title,
			Year:   result.Year,
			Poster: result.Poster,
		}
	}

	movie := &Movie{
		ID:     uuid.New(),
		ImdbID: imdbID,
		Title:  desc.Title,
		Year:   desc.Year,
	}
	if desc.Poster != "" {
		movie.Poster = &desc.Poster
	}

	err = r.store.Insert(ctx, movie)
	if errors.Is(err, store.ErrDuplicate) {
		return r.store.GetByImdbID(ctx, imdbID)
	}
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// ResolveByTitle resolves through a free-text catalog search, then converges
// on the canonical row for whatever imdb id the catalog matched.
func (r *Resolver) ResolveByTitle(ctx context.Context, title string) (*Movie, error) {
	result, err := r.catalog.SearchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, result.ImdbID, &Descriptor{
		ImdbID: result.ImdbID,
		Title:  result.Title,
		Year:   result.Year,
		Poster: result.Poster,
	})
}
