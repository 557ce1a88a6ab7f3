package movies

import (
	"context"
	"sync"
	"time"

	"github.com/reelist/reelist/internal/store"
)

// MemoryStore is an in-memory Store used by tests. It enforces the same
// imdb id uniqueness the Postgres index does.
type MemoryStore struct {
	mu     sync.Mutex
	byImdb map[string]*Movie
	byID   map[string]*Movie
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byImdb: make(map[string]*Movie),
		byID:   make(map[string]*Movie),
	}
}

func (s *MemoryStore) GetByImdbID(_ context.Context, imdbID string) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byImdb[imdbID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) Insert(_ context.Context, m *Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byImdb[m.ImdbID]; ok {
		return store.ErrDuplicate
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	cp := *m
	s.byImdb[m.ImdbID] = &cp
	s.byID[m.ID.String()] = &cp
	return nil
}

// Len reports how many rows the store holds.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byImdb)
}
