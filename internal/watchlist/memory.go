package watchlist

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/store"
)

// MemoryStore is an in-memory Store used by tests. Listing joins against the
// movie store it was constructed with.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	movies  *movies.MemoryStore
}

func NewMemoryStore(movieStore *movies.MemoryStore) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		movies:  movieStore,
	}
}

func (s *MemoryStore) GetByUserAndMovie(_ context.Context, userID string, movieID uuid.UUID) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.UserID == userID && e.MovieID == movieID {
			cp := e
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemoryStore) Insert(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.entries {
		if existing.UserID == e.UserID && existing.MovieID == e.MovieID {
			return store.ErrDuplicate
		}
	}
	e.CreatedAt = time.Now()
	s.entries[e.ID.String()] = *e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, entryID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.entries, entryID)
	return nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]EntryWithMovie, error) {
	s.mu.Lock()
	entries := make([]Entry, 0)
	for _, e := range s.entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })

	out := []EntryWithMovie{}
	for _, e := range entries {
		m, err := s.movies.GetByID(ctx, e.MovieID.String())
		if err != nil {
			return nil, err
		}
		out = append(out, EntryWithMovie{Entry: e, Movie: *m})
	}
	return out, nil
}
