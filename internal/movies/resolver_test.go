package movies

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/reelist/reelist/internal/omdb"
)

// fakeCatalog serves canned OMDb results and counts calls so tests can assert
// the gateway is not consulted for already-cached movies.
type fakeCatalog struct {
	mu      sync.Mutex
	results map[string]*omdb.Result
	calls   int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{results: make(map[string]*omdb.Result)}
}

func (c *fakeCatalog) add(r *omdb.Result) {
	c.results[r.ImdbID] = r
}

func (c *fakeCatalog) FetchByID(_ context.Context, imdbID string) (*omdb.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	r, ok := c.results[imdbID]
	if !ok {
		return nil, omdb.ErrNotFound
	}
	return r, nil
}

func (c *fakeCatalog) SearchByTitle(_ context.Context, title string) (*omdb.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	for _, r := range c.results {
		if r.Title == title {
			return r, nil
		}
	}
	return nil, omdb.ErrNotFound
}

func (c *fakeCatalog) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type ResolverSuite struct {
	suite.Suite
	store    *MemoryStore
	catalog  *fakeCatalog
	resolver *Resolver
	ctx      context.Context
}

func (s *ResolverSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.catalog = newFakeCatalog()
	s.resolver = NewResolver(s.store, s.catalog)
	s.ctx = context.Background()
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) TestCreatesFromFallbackDescriptor() {
	movie, err := s.resolver.Resolve(s.ctx, "tt0111161", &Descriptor{
		ImdbID: "tt0111161",
		Title:  "The Shawshank Redemption",
		Year:   "1994",
		Poster: "http://img.example/shawshank.jpg",
	})
	s.Require().NoError(err)
	s.Equal("The Shawshank Redemption", movie.Title)
	s.Equal("1994", movie.Year)
	s.Require().NotNil(movie.Poster)
	s.Equal("http://img.example/shawshank.jpg", *movie.Poster)
	s.Zero(s.catalog.callCount())

	// A second resolve with no fallback returns the same surrogate id and
	// still does not touch the gateway.
	again, err := s.resolver.Resolve(s.ctx, "tt0111161", nil)
	s.Require().NoError(err)
	s.Equal(movie.ID, again.ID)
	s.Zero(s.catalog.callCount())
	s.Equal(1, s.store.Len())
}

func (s *ResolverSuite) TestFallsBackToCatalog() {
	s.catalog.add(&omdb.Result{ImdbID: "tt1375666", Title: "Inception", Year: "2010", Poster: "http://img.example/inception.jpg"})

	movie, err := s.resolver.Resolve(s.ctx, "tt1375666", nil)
	s.Require().NoError(err)
	s.Equal("Inception", movie.Title)
	s.Equal(1, s.catalog.callCount())

	// Cached now; no further catalog calls.
	_, err = s.resolver.Resolve(s.ctx, "tt1375666", nil)
	s.Require().NoError(err)
	s.Equal(1, s.catalog.callCount())
}

func (s *ResolverSuite) TestUnknownKeyFails() {
	_, err := s.resolver.Resolve(s.ctx, "tt0000000", nil)
	s.Require().ErrorIs(err, omdb.ErrNotFound)
	s.Zero(s.store.Len())
}

func (s *ResolverSuite) TestEmptyKeyRejected() {
	_, err := s.resolver.Resolve(s.ctx, "", nil)
	s.Require().Error(err)
}

func (s *ResolverSuite) TestResolveByTitle() {
	s.catalog.add(&omdb.Result{ImdbID: "tt0133093", Title: "The Matrix", Year: "1999"})

	movie, err := s.resolver.ResolveByTitle(s.ctx, "The Matrix")
	s.Require().NoError(err)
	s.Equal("tt0133093", movie.ImdbID)
	s.Nil(movie.Poster)

	again, err := s.resolver.ResolveByTitle(s.ctx, "The Matrix")
	s.Require().NoError(err)
	s.Equal(movie.ID, again.ID)
	s.Equal(1, s.store.Len())
}

// TestConcurrentResolveConverges drives many concurrent resolvers at one
// imdb id and verifies they all converge on a single stored row.
func (s *ResolverSuite) TestConcurrentResolveConverges() {
	s.catalog.add(&omdb.Result{ImdbID: "tt0068646", Title: "The Godfather", Year: "1972"})

	const n = 32
	results := make([]*Movie, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.resolver.Resolve(s.ctx, "tt0068646", nil)
		}(i)
	}
	wg.Wait()

	s.Equal(1, s.store.Len())
	for i := 0; i < n; i++ {
		s.Require().NoError(errs[i])
		s.Equal(results[0].ID, results[i].ID)
	}
}
