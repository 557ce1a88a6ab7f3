package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the envelope. Handlers pick from this set so
// clients branch on a stable vocabulary instead of free-form strings.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeSessionExpired      = "SESSION_EXPIRED"
	CodeInvalidJSON         = "INVALID_JSON"
	CodeMissingFields       = "MISSING_FIELDS"
	CodeInvalidScore        = "INVALID_SCORE"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicate           = "DUPLICATE"
	CodeMovieNotFound       = "MOVIE_NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeWeakPassword        = "WEAK_PASSWORD"
	CodeInternal            = "INTERNAL"
)

// maxBodyBytes caps request bodies; every payload this API accepts is a
// few hundred bytes of JSON.
const maxBodyBytes = 1 << 20

type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Status: "ok",
		Data:   data,
	})
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Status: "error",
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// ReadJSON decodes a request body into dst. Bodies are size-capped and
// unknown fields are rejected, so malformed payloads fail before any
// handler logic runs.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
