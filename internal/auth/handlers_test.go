package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reelist/reelist/internal/store"
)

type fakeUserStore struct {
	nextID  int
	byEmail map[string]struct {
		id   string
		hash string
	}
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]struct{ id, hash string })}
}

func (f *fakeUserStore) CreateUser(_ context.Context, _, email, passwordHash string) (string, error) {
	if _, ok := f.byEmail[email]; ok {
		return "", store.ErrDuplicate
	}
	f.nextID++
	id := fmt.Sprintf("user-%d", f.nextID)
	f.byEmail[email] = struct{ id, hash string }{id, passwordHash}
	return id, nil
}

func (f *fakeUserStore) GetCredentials(_ context.Context, email string) (string, string, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return "", "", store.ErrNotFound
	}
	return u.id, u.hash, nil
}

func newTestHandler() (*Handler, *fakeUserStore, *MemorySessionStore) {
	userStore := newFakeUserStore()
	sessions := NewMemorySessionStore()
	return NewHandler(userStore, sessions, time.Hour), userStore, sessions
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterValidation(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := post(h.register, `{"username":"alice"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(h.register, `{"username":"alice","email":"a@example.com","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(h.register, `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	h, _, sessions := newTestHandler()

	rec := post(h.register, `{"username":"alice","email":"Alice@Example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			UserID string `json:"user_id"`
			Token  string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)
	require.NotEmpty(t, body.Data.Token)

	sess, err := sessions.Get(context.Background(), body.Data.Token)
	require.NoError(t, err)
	require.Equal(t, body.Data.UserID, sess.UserID)

	// Email is normalized, so a differently cased login still matches.
	rec = post(h.login, `{"email":"alice@example.COM","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(h.login, `{"email":"alice@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := post(h.register, `{"username":"alice","email":"a@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = post(h.register, `{"username":"alice2","email":"a@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogoutDeletesSession(t *testing.T) {
	h, _, sessions := newTestHandler()
	ctx := context.Background()

	sess, err := NewSession("user-a", time.Hour)
	require.NoError(t, err)
	require.NoError(t, sessions.Create(ctx, sess))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rec := httptest.NewRecorder()
	h.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, err = sessions.Get(ctx, sess.Token)
	require.ErrorIs(t, err, store.ErrNotFound)
}
