package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/auth"
	"github.com/andrewpaige1/recallcards-api/flashcards"
	"github.com/andrewpaige1/recallcards-api/middleware"
	"github.com/andrewpaige1/recallcards-api/models"
	"github.com/andrewpaige1/recallcards-api/store"
)

const token = "learner@example.com"

var secret = []byte("test-secret")

func newTestServer(t *testing.T) (http.Handler, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return newRouter(s), s
}

func newRouter(s store.Store) http.Handler {
	h := NewHandler(flashcards.NewService(s, zap.NewNop()), zap.NewNop())
	return NewRouter(h, middleware.EnsureValidToken(auth.HS256Validator(secret), zap.NewNop()))
}

func doJSON(t *testing.T, ts http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

type statusBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func requireStatus(t *testing.T, rr *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	if rr.Header().Get("Content-Type") == "application/json" && rr.Body.Len() > 0 && rr.Body.Bytes()[0] == '{' {
		body := decode[statusBody](t, rr)
		if body.Status != 0 {
			assert.Equal(t, status, body.Status)
		}
	}
}

func TestWords_Flow(t *testing.T) {
	ts, _ := newTestServer(t)

	rr := doJSON(t, ts, "GET", "/api/words/rand/"+token, nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.Equal(t, []string{"You Don't Have Anything to Memorize ", "Please Add Cards!"}, decode[[]string](t, rr))

	rr = doJSON(t, ts, "POST", "/api/sendwords", map[string]string{"token": token, "word": "x", "ans": "y"}, nil)
	requireStatus(t, rr, http.StatusOK)
	rr = doJSON(t, ts, "POST", "/api/sendwords", map[string]string{"token": token, "word": "z", "ans": "w"}, nil)
	requireStatus(t, rr, http.StatusOK)

	rr = doJSON(t, ts, "GET", "/api/words/rand/"+token+"?collection=Default&index=0", nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.Equal(t, []string{"x", "y"}, decode[[]string](t, rr))

	rr = doJSON(t, ts, "GET", "/api/words/rand/"+token+"?index=1", nil, nil)
	assert.Equal(t, []string{"z", "w"}, decode[[]string](t, rr))

	rr = doJSON(t, ts, "GET", "/api/words/rand/"+token+"?index=99", nil, nil)
	assert.Equal(t, []string{"x", "y"}, decode[[]string](t, rr))

	rr = doJSON(t, ts, "POST", "/api/editword", map[string]string{"token": token, "oldword": "x", "word": "x2", "ans": "y2"}, nil)
	requireStatus(t, rr, http.StatusOK)

	rr = doJSON(t, ts, "GET", "/api/words/rand/"+token, nil, nil)
	assert.Equal(t, []string{"z", "w"}, decode[[]string](t, rr))

	rr = doJSON(t, ts, "DELETE", "/api/delword/z", map[string]string{"token": token}, nil)
	requireStatus(t, rr, http.StatusOK)
	rr = doJSON(t, ts, "DELETE", "/api/delword/z", map[string]string{"token": token}, nil)
	requireStatus(t, rr, http.StatusNotFound)

	rr = doJSON(t, ts, "GET", "/api/words", nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{"learner@example.com":{"Default":{"x2":"y2"}}}`, rr.Body.String())
}

func TestWords_Validation(t *testing.T) {
	ts, _ := newTestServer(t)

	rr := doJSON(t, ts, "POST", "/api/sendwords", map[string]string{"token": token, "word": "x"}, nil)
	requireStatus(t, rr, http.StatusBadRequest)
	assert.Equal(t, "Missing required fields", decode[statusBody](t, rr).Error)

	rr = doJSON(t, ts, "POST", "/api/editword", map[string]string{"token": token, "word": "x", "ans": "y"}, nil)
	requireStatus(t, rr, http.StatusBadRequest)

	rr = doJSON(t, ts, "DELETE", "/api/delword/x", map[string]string{}, nil)
	requireStatus(t, rr, http.StatusBadRequest)

	rr = doJSON(t, ts, "POST", "/api/editword", map[string]string{"token": token, "oldword": "cat", "word": "cat", "ans": "feline"}, nil)
	requireStatus(t, rr, http.StatusNotFound)

	rr = doJSON(t, ts, "POST", "/api/sendwords", "not an object", nil)
	requireStatus(t, rr, http.StatusBadRequest)
}

func TestWords_LegacyDocumentIsMigratedOnRead(t *testing.T) {
	ts, s := newTestServer(t)
	var legacy models.Cards
	legacy.Set("a", "1")
	s.Put(models.UserDocument{UserKey: token, Cards: &legacy})

	rr := doJSON(t, ts, "GET", "/api/words/rand/"+token, nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.Equal(t, []string{"a", "1"}, decode[[]string](t, rr))

	doc, err := s.FindOne(t.Context(), token)
	require.NoError(t, err)
	assert.Nil(t, doc.Cards)
	require.NotNil(t, doc.Collections)
}

func TestCollections_Flow(t *testing.T) {
	ts, _ := newTestServer(t)

	type listBody struct {
		Collections       []string `json:"collections"`
		DefaultCollection string   `json:"default_collection"`
	}

	rr := doJSON(t, ts, "GET", "/api/collections/"+token, nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.Equal(t, listBody{Collections: []string{"Default"}, DefaultCollection: "Default"}, decode[listBody](t, rr))

	rr = doJSON(t, ts, "GET", "/api/collections/"+token+"/stats", nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{"stats":{}}`, rr.Body.String())

	requireStatus(t, doJSON(t, ts, "POST", "/api/sendwords", map[string]string{"token": token, "word": "cat", "ans": "feline"}, nil), http.StatusOK)
	requireStatus(t, doJSON(t, ts, "POST", "/api/collections", map[string]string{"token": token, "collection_name": "Spanish"}, nil), http.StatusOK)
	requireStatus(t, doJSON(t, ts, "POST", "/api/collections", map[string]string{"token": token, "collection_name": "Spanish"}, nil), http.StatusConflict)
	requireStatus(t, doJSON(t, ts, "POST", "/api/collections", map[string]string{"token": token, "collection_name": "  "}, nil), http.StatusBadRequest)
	requireStatus(t, doJSON(t, ts, "POST", "/api/sendwords", map[string]string{"token": token, "word": "hola", "ans": "hello", "collection": "Spanish"}, nil), http.StatusOK)
	requireStatus(t, doJSON(t, ts, "PUT", "/api/collections/Spanish/rename", map[string]string{"token": token, "new_collection_name": "Espanol"}, nil), http.StatusOK)
	requireStatus(t, doJSON(t, ts, "PUT", "/api/collections/Default/rename", map[string]string{"token": token, "new_collection_name": "Other"}, nil), http.StatusForbidden)
	requireStatus(t, doJSON(t, ts, "POST", "/api/collections/default", map[string]string{"token": token, "collection_name": "Espanol"}, nil), http.StatusOK)
	requireStatus(t, doJSON(t, ts, "POST", "/api/collections/default", map[string]string{"token": token, "collection_name": "Nope"}, nil), http.StatusNotFound)

	rr = doJSON(t, ts, "GET", "/api/collections/"+token, nil, nil)
	assert.Equal(t, listBody{Collections: []string{"Default", "Espanol"}, DefaultCollection: "Espanol"}, decode[listBody](t, rr))

	rr = doJSON(t, ts, "GET", "/api/collections/"+token+"/stats", nil, nil)
	assert.Equal(t, `{"stats":{"Default":1,"Espanol":1}}`+"\n", rr.Body.String())

	requireStatus(t, doJSON(t, ts, "DELETE", "/api/collections/Default", map[string]string{"token": token}, nil), http.StatusForbidden)
	requireStatus(t, doJSON(t, ts, "DELETE", "/api/collections/Espanol", map[string]string{"token": token}, nil), http.StatusOK)
	requireStatus(t, doJSON(t, ts, "DELETE", "/api/collections/Espanol", map[string]string{"token": token}, nil), http.StatusNotFound)

	rr = doJSON(t, ts, "GET", "/api/collections/"+token, nil, nil)
	assert.Equal(t, listBody{Collections: []string{"Default"}, DefaultCollection: "Default"}, decode[listBody](t, rr))
}

func TestToken(t *testing.T) {
	ts, _ := newTestServer(t)

	rr := doJSON(t, ts, "POST", "/api/token", nil, nil)
	requireStatus(t, rr, http.StatusUnauthorized)
	assert.Equal(t, "authorization_header_missing", decode[auth.AuthError](t, rr).Code)

	jwt, err := auth.CreateToken(secret, token, time.Hour)
	require.NoError(t, err)
	rr = doJSON(t, ts, "POST", "/api/token", nil, map[string]string{"Authorization": "Bearer " + jwt})
	requireStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{"status":200,"user":"learner@example.com"}`, rr.Body.String())
}

func TestDatabaseNotConnected(t *testing.T) {
	ts := newRouter(nil)

	rr := doJSON(t, ts, "GET", "/api/words", nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{}`, rr.Body.String())

	rr = doJSON(t, ts, "GET", "/api/words/rand/"+token, nil, nil)
	requireStatus(t, rr, http.StatusOK)
	assert.Equal(t, []string{"You Don't Have Anything to Memorize ", "Please Add Cards!"}, decode[[]string](t, rr))

	rr = doJSON(t, ts, "POST", "/api/sendwords", map[string]string{"token": token, "word": "x", "ans": "y"}, nil)
	requireStatus(t, rr, http.StatusInternalServerError)
	assert.Equal(t, "Database not connected", decode[statusBody](t, rr).Error)

	rr = doJSON(t, ts, "GET", "/api/collections/"+token, nil, nil)
	requireStatus(t, rr, http.StatusInternalServerError)
	assert.Equal(t, "Database not connected", decode[statusBody](t, rr).Error)

	rr = doJSON(t, ts, "GET", "/healthz", nil, nil)
	requireStatus(t, rr, http.StatusServiceUnavailable)
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	rr := doJSON(t, ts, "GET", "/healthz", nil, nil)
	requireStatus(t, rr, http.StatusOK)
}
