package movies

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/reelist/internal/httputil"
	"github.com/reelist/reelist/internal/omdb"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/search", h.search)
	return r
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	imdbID := r.URL.Query().Get("imdb_id")
	if title == "" && imdbID == "" {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeMissingFields, "title or imdb_id is required")
		return
	}

	var (
		movie *Movie
		err   error
	)
	if imdbID != "" {
		movie, err = h.resolver.Resolve(r.Context(), imdbID, nil)
	} else {
		movie, err = h.resolver.ResolveByTitle(r.Context(), title)
	}
	if err != nil {
		WriteResolveError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, movie)
}

// WriteResolveError maps resolver failures onto the API error envelope. It is
// shared with the watchlist and review handlers, which resolve movies too.
func WriteResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeMovieNotFound, "movie not found")
	case errors.Is(err, omdb.ErrUnavailable):
		httputil.WriteError(w, http.StatusBadGateway, httputil.CodeUpstreamUnavailable, "movie catalog is unavailable")
	default:
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to resolve movie")
	}
}
