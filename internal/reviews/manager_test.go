package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/reelist/reelist/internal/movies"
)

type ManagerSuite struct {
	suite.Suite
	movieStore *movies.MemoryStore
	store      *MemoryStore
	manager    *Manager
	ctx        context.Context
}

func (s *ManagerSuite) SetupTest() {
	s.movieStore = movies.NewMemoryStore()
	s.store = NewMemoryStore(s.movieStore)
	s.manager = NewManager(s.store)
	s.ctx = context.Background()
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) newMovie(imdbID, title string) *movies.Movie {
	resolver := movies.NewResolver(s.movieStore, nil)
	m, err := resolver.Resolve(s.ctx, imdbID, &movies.Descriptor{ImdbID: imdbID, Title: title, Year: "2000"})
	s.Require().NoError(err)
	return m
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func (s *ManagerSuite) TestScoreBounds() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")

	for _, score := range []int{0, 11, -1, 100} {
		_, err := s.manager.Create(s.ctx, "user-a", movie, score, nil)
		s.Require().ErrorIs(err, ErrInvalidScore, "score %d", score)
	}
	for _, score := range []int{1, 10} {
		_, err := s.manager.Create(s.ctx, "user-a", movie, score, nil)
		s.Require().NoError(err, "score %d", score)
	}
}

func (s *ManagerSuite) TestRepeatReviewsAllowed() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")

	_, err := s.manager.Create(s.ctx, "user-a", movie, 7, nil)
	s.Require().NoError(err)
	_, err = s.manager.Create(s.ctx, "user-a", movie, 9, strptr("changed my mind"))
	s.Require().NoError(err)

	listed, err := s.manager.ListForUser(s.ctx, "user-a")
	s.Require().NoError(err)
	s.Len(listed, 2)
}

func (s *ManagerSuite) TestPartialUpdate() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")
	review, err := s.manager.Create(s.ctx, "user-a", movie, 7, nil)
	s.Require().NoError(err)

	// Supplying only text leaves the score untouched.
	updated, err := s.manager.Update(s.ctx, "user-a", review.ID.String(), nil, strptr("great"))
	s.Require().NoError(err)
	s.Equal(7, updated.Score)
	s.Require().NotNil(updated.Comment)
	s.Equal("great", *updated.Comment)

	// Supplying only a score leaves the text untouched.
	updated, err = s.manager.Update(s.ctx, "user-a", review.ID.String(), intptr(9), nil)
	s.Require().NoError(err)
	s.Equal(9, updated.Score)
	s.Require().NotNil(updated.Comment)
	s.Equal("great", *updated.Comment)
}

func (s *ManagerSuite) TestUpdateRejectsBadScore() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")
	review, err := s.manager.Create(s.ctx, "user-a", movie, 7, nil)
	s.Require().NoError(err)

	_, err = s.manager.Update(s.ctx, "user-a", review.ID.String(), intptr(11), nil)
	s.Require().ErrorIs(err, ErrInvalidScore)

	got, err := s.store.GetOwned(s.ctx, review.ID.String(), "user-a")
	s.Require().NoError(err)
	s.Equal(7, got.Score)
}

func (s *ManagerSuite) TestUpdateRequiresOwnership() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")
	review, err := s.manager.Create(s.ctx, "user-a", movie, 7, nil)
	s.Require().NoError(err)

	_, err = s.manager.Update(s.ctx, "user-b", review.ID.String(), intptr(1), strptr("sabotage"))
	s.Require().ErrorIs(err, ErrNotFound)

	// Original record unchanged.
	got, err := s.store.GetOwned(s.ctx, review.ID.String(), "user-a")
	s.Require().NoError(err)
	s.Equal(7, got.Score)
	s.Nil(got.Comment)
}

func (s *ManagerSuite) TestDeleteRequiresOwnership() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")
	review, err := s.manager.Create(s.ctx, "user-a", movie, 7, nil)
	s.Require().NoError(err)

	s.Require().ErrorIs(s.manager.Delete(s.ctx, "user-b", review.ID.String()), ErrNotFound)
	s.Require().NoError(s.manager.Delete(s.ctx, "user-a", review.ID.String()))
	s.Require().ErrorIs(s.manager.Delete(s.ctx, "user-a", review.ID.String()), ErrNotFound)
}

func (s *ManagerSuite) TestListForUserNewestFirst() {
	first := s.newMovie("tt0111161", "The Shawshank Redemption")
	second := s.newMovie("tt0068646", "The Godfather")

	r1, err := s.manager.Create(s.ctx, "user-a", first, 8, nil)
	s.Require().NoError(err)
	time.Sleep(2 * time.Millisecond)
	r2, err := s.manager.Create(s.ctx, "user-a", second, 9, nil)
	s.Require().NoError(err)

	listed, err := s.manager.ListForUser(s.ctx, "user-a")
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(r2.ID, listed[0].Review.ID)
	s.Equal(r1.ID, listed[1].Review.ID)
	s.Equal("The Godfather", listed[0].Movie.Title)
}

func (s *ManagerSuite) TestListForMovieJoinsAuthors() {
	movie := s.newMovie("tt0111161", "The Shawshank Redemption")
	s.store.SeedUser("user-a", "alice")
	s.store.SeedUser("user-b", "bob")

	_, err := s.manager.Create(s.ctx, "user-a", movie, 10, strptr("a classic"))
	s.Require().NoError(err)
	time.Sleep(2 * time.Millisecond)
	_, err = s.manager.Create(s.ctx, "user-b", movie, 6, nil)
	s.Require().NoError(err)

	listed, err := s.manager.ListForMovie(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal("bob", listed[0].Author.Username)
	s.Equal("alice", listed[1].Author.Username)
}

func (s *ManagerSuite) TestListForUserEmpty() {
	listed, err := s.manager.ListForUser(s.ctx, "user-none")
	s.Require().NoError(err)
	s.Empty(listed)
	s.NotNil(listed)
}
