package watchlist

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/reelist/internal/auth"
	"github.com/reelist/reelist/internal/httputil"
	"github.com/reelist/reelist/internal/movies"
)

type Handler struct {
	manager  *Manager
	resolver *movies.Resolver
}

func NewHandler(manager *Manager, resolver *movies.Resolver) *Handler {
	return &Handler{manager: manager, resolver: resolver}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.add)
	r.Get("/", h.list)
	r.Delete("/{id}", h.remove)
	return r
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}

	var req struct {
		ImdbID string `json:"imdb_id"`
		Title  string `json:"title"`
		Year   string `json:"year"`
		Poster string `json:"poster"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid request body")
		return
	}
	if req.ImdbID == "" {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeMissingFields, "imdb_id is required")
		return
	}

	// A client that already has the movie's details sends them along so the
	// catalog does not need to be consulted again.
	var fallback *movies.Descriptor
	if req.Title != "" {
		fallback = &movies.Descriptor{
			ImdbID: req.ImdbID,
			Title:  req.Title,
			Year:   req.Year,
			Poster: req.Poster,
		}
	}

	movie, err := h.resolver.Resolve(r.Context(), req.ImdbID, fallback)
	if err != nil {
		movies.WriteResolveError(w, err)
		return
	}

	entry, err := h.manager.Add(r.Context(), u.UserID, movie)
	if errors.Is(err, ErrDuplicate) {
		httputil.WriteError(w, http.StatusConflict, httputil.CodeDuplicate, "movie already in watchlist")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to add to watchlist")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, EntryWithMovie{Entry: *entry, Movie: *movie})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}
	entries, err := h.manager.List(r.Context(), u.UserID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to load watchlist")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}
	err := h.manager.Remove(r.Context(), u.UserID, chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, "watchlist entry not found")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to remove from watchlist")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
