package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/reelist/internal/auth"
	"github.com/reelist/reelist/internal/httputil"
	"github.com/reelist/reelist/internal/store"
)

// ProfileStore is the slice of account persistence the profile handler
// needs, satisfied by Repository.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

type Handler struct {
	store ProfileStore
}

func NewHandler(store ProfileStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.me)
	return r
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "not authenticated")
		return
	}
	user, err := h.store.GetByID(r.Context(), u.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// A session can outlive its account; treat it as unauthenticated.
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "account no longer exists")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to load profile")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}
