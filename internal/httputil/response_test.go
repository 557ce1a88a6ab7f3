package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadJSONDecodes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"imdb_id":"tt0111161"}`))
	var dst struct {
		ImdbID string `json:"imdb_id"`
	}
	require.NoError(t, ReadJSON(httptest.NewRecorder(), req, &dst))
	require.Equal(t, "tt0111161", dst.ImdbID)
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"imdb_id":"tt0111161","bogus":true}`))
	var dst struct {
		ImdbID string `json:"imdb_id"`
	}
	require.Error(t, ReadJSON(httptest.NewRecorder(), req, &dst))
}

func TestReadJSONCapsBodySize(t *testing.T) {
	body := `{"comment":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst struct {
		Comment string `json:"comment"`
	}
	require.Error(t, ReadJSON(httptest.NewRecorder(), req, &dst))
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, CodeNotFound, "watchlist entry not found")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"status":"error","error":{"code":"NOT_FOUND","message":"watchlist entry not found"}}`, rec.Body.String())
}

func TestWriteJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]string{"status": "ok"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"status":"ok","data":{"status":"ok"}}`, rec.Body.String())
}
