package reviews

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/store"
	"github.com/reelist/reelist/internal/users"
)

// MemoryStore is an in-memory Store used by tests. Joins resolve against the
// movie store and the username table it is seeded with.
type MemoryStore struct {
	mu        sync.Mutex
	reviews   map[string]Review
	movies    *movies.MemoryStore
	usernames map[string]string
}

func NewMemoryStore(movieStore *movies.MemoryStore) *MemoryStore {
	return &MemoryStore{
		reviews:   make(map[string]Review),
		movies:    movieStore,
		usernames: make(map[string]string),
	}
}

// SeedUser registers a username for author joins.
func (s *MemoryStore) SeedUser(userID, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usernames[userID] = username
}

func (s *MemoryStore) Insert(_ context.Context, r *Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.reviews[r.ID.String()] = *r
	return nil
}

func (s *MemoryStore) GetOwned(_ context.Context, reviewID, userID string) (*Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[reviewID]
	if !ok || r.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (s *MemoryStore) Update(_ context.Context, r *Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.reviews[r.ID.String()]
	if !ok || existing.UserID != r.UserID {
		return store.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	s.reviews[r.ID.String()] = *r
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, reviewID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[reviewID]
	if !ok || r.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.reviews, reviewID)
	return nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]ReviewWithMovie, error) {
	s.mu.Lock()
	matched := make([]Review, 0)
	for _, r := range s.reviews {
		if r.UserID == userID {
			matched = append(matched, r)
		}
	}
	s.mu.Unlock()

	sortNewestFirst(matched)

	out := []ReviewWithMovie{}
	for _, r := range matched {
		m, err := s.movies.GetByID(ctx, r.MovieID.String())
		if err != nil {
			return nil, err
		}
		out = append(out, ReviewWithMovie{Review: r, Movie: *m})
	}
	return out, nil
}

func (s *MemoryStore) ListByMovie(_ context.Context, movieID uuid.UUID) ([]ReviewWithAuthor, error) {
	s.mu.Lock()
	matched := make([]Review, 0)
	for _, r := range s.reviews {
		if r.MovieID == movieID {
			matched = append(matched, r)
		}
	}
	authors := make(map[string]string, len(matched))
	for _, r := range matched {
		authors[r.UserID] = s.usernames[r.UserID]
	}
	s.mu.Unlock()

	sortNewestFirst(matched)

	out := []ReviewWithAuthor{}
	for _, r := range matched {
		out = append(out, ReviewWithAuthor{
			Review: r,
			Author: users.PublicUser{ID: r.UserID, Username: authors[r.UserID]},
		})
	}
	return out, nil
}

func sortNewestFirst(rs []Review) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
}
