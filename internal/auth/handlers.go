package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reelist/reelist/internal/httputil"
	"github.com/reelist/reelist/internal/store"
)

// UserStore is the slice of account persistence the auth handlers need,
// satisfied by users.Repository.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (string, error)
	GetCredentials(ctx context.Context, email string) (id, passwordHash string, err error)
}

type Handler struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewHandler(users UserStore, sessions SessionStore, sessionTTL time.Duration) *Handler {
	return &Handler{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeMissingFields, "username, email, and password are required")
		return
	}

	req.Email = NormalizeEmail(req.Email)

	if err := ValidatePassword(req.Password, 8); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeWeakPassword, err.Error())
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to hash password")
		return
	}

	userID, err := h.users.CreateUser(r.Context(), req.Username, req.Email, hash)
	if errors.Is(err, store.ErrDuplicate) {
		httputil.WriteError(w, http.StatusConflict, httputil.CodeEmailExists, "username or email already registered")
		return
	}
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to create account")
		return
	}

	h.issueSession(w, r, userID, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid request body")
		return
	}

	req.Email = NormalizeEmail(req.Email)

	userID, passwordHash, err := h.users.GetCredentials(r.Context(), req.Email)
	if err != nil || !CheckPassword(passwordHash, req.Password) {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeInvalidCredentials, "invalid email or password")
		return
	}

	h.issueSession(w, r, userID, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		h.sessions.Delete(r.Context(), token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, userID string, status int) {
	sess, err := NewSession(userID, h.sessionTTL)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to create session")
		return
	}
	if err := h.sessions.Create(r.Context(), sess); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessionTTL.Seconds()),
	})

	httputil.WriteJSON(w, status, map[string]interface{}{
		"user_id": userID,
		"token":   sess.Token,
	})
}
