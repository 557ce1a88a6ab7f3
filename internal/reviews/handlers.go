package reviews

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/reelist/internal/auth"
	"github.com/reelist/reelist/internal/httputil"
	"github.com/reelist/reelist/internal/movies"
	"github.com/reelist/reelist/internal/store"
)

type Handler struct {
	manager  *Manager
	resolver *movies.Resolver
	movies   movies.Store
}

func NewHandler(manager *Manager, resolver *movies.Resolver, movieStore movies.Store) *Handler {
	return &Handler{manager: manager, resolver: resolver, movies: movieStore}
}

// Router mounts the review routes. Mutations and the own-reviews listing sit
// behind requireAuth; the per-movie and per-user listings are public.
func (h *Handler) Router(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.create)
		r.Get("/me", h.listMine)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
	r.Get("/user/{userID}", h.listForUser)
	r.Get("/movie/{imdbID}", h.listForMovie)
	return r
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}

	var req struct {
		ImdbID  string  `json:"imdb_id"`
		Score   *int    `json:"score"`
		Comment *string `json:"comment"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid request body")
		return
	}
	if req.ImdbID == "" || req.Score == nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeMissingFields, "imdb_id and score are required")
		return
	}

	movie, err := h.resolver.Resolve(r.Context(), req.ImdbID, nil)
	if err != nil {
		movies.WriteResolveError(w, err)
		return
	}

	review, err := h.manager.Create(r.Context(), u.UserID, movie, *req.Score, req.Comment)
	if errors.Is(err, ErrInvalidScore) {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidScore, err.Error())
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to create review")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}
	reviews, err := h.manager.ListForUser(r.Context(), u.UserID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to load reviews")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// listForUser is the public profile view; an account with no reviews gets an
// empty list, not an error.
func (h *Handler) listForUser(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.manager.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to load reviews")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handler) listForMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movies.GetByImdbID(r.Context(), chi.URLParam(r, "imdbID"))
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeMovieNotFound, "movie not found")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to load movie")
		return
	}

	reviews, err := h.manager.ListForMovie(r.Context(), movie.ID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to load reviews")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}

	var req struct {
		Score   *int    `json:"score"`
		Comment *string `json:"comment"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid request body")
		return
	}

	review, err := h.manager.Update(r.Context(), u.UserID, chi.URLParam(r, "id"), req.Score, req.Comment)
	switch {
	case errors.Is(err, ErrInvalidScore):
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidScore, err.Error())
	case errors.Is(err, ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, "review not found")
	case err != nil:
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to update review")
	default:
		httputil.WriteJSON(w, http.StatusOK, review)
	}
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}
	err := h.manager.Delete(r.Context(), u.UserID, chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, "review not found")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to delete review")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
