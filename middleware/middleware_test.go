package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/auth"
)

var secret = []byte("test-secret")

func protected() http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Value(jwtmiddleware.ContextKey{}) == nil {
			http.Error(w, "no claims", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return EnsureValidToken(auth.HS256Validator(secret), zap.NewNop())(next)
}

func TestEnsureValidToken(t *testing.T) {
	valid, err := auth.CreateToken(secret, "learner@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := auth.CreateToken(secret, "learner@example.com", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "authorization_header_missing"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "token_expired"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "invalid_header"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "invalid_header"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			protected().ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.code == "" {
				return
			}
			var body auth.AuthError
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "given", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred.", body["error"])
	assert.NotContains(t, rr.Body.String(), "boom")
}
