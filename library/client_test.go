package library

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := OpenSessionStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err, "open session store")
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestClient(t *testing.T, handler http.Handler, sess *Session) (*Client, *SessionStore) {
	t.Helper()
	store := newTestStore(t)
	if sess != nil {
		require.NoError(t, store.Login(*sess))
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, store), store
}

func studentSession() *Session {
	return &Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: "tok-123"}
}

func librarianSession() *Session {
	return &Session{SubjectID: "u2", Name: "Lara", Role: RoleLibrarian, Token: "tok-456"}
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotReqID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode([]Book{})
	})

	api, _ := newTestClient(t, handler, studentSession())
	_, err := api.Books(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID, "request id should be stamped")
}

func TestClientOmitsTokenWithoutSession(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Book{})
	})

	api, _ := newTestClient(t, handler, nil)
	_, err := api.Books(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientSurfacesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "borrow limit reached"})
	})

	api, _ := newTestClient(t, handler, studentSession())
	_, err := api.Borrow(context.Background(), "b1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "borrow limit reached", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "borrow limit reached")
}

func TestClientGenericErrorWithoutPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	api, _ := newTestClient(t, handler, studentSession())
	_, err := api.Books(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestClientLogin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(Session{SubjectID: "u1", Name: "Alice", Role: RoleStudent, Token: "fresh"})
	})

	api, _ := newTestClient(t, handler, nil)
	sess, err := api.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, sess.Role)
	assert.Equal(t, "fresh", sess.Token)
}

func TestClientCreateBookMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/books", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "Dune", r.FormValue("title"))
		assert.Equal(t, "Herbert", r.FormValue("author"))
		assert.Equal(t, "Fiction", r.FormValue("category"))
		_, _, err := r.FormFile("coverImage")
		assert.Error(t, err, "no cover file expected")

		json.NewEncoder(w).Encode(Book{ID: "b9", Title: "Dune", Author: "Herbert", Category: "Fiction", Available: true})
	})

	api, _ := newTestClient(t, handler, librarianSession())
	book, err := api.CreateBook(context.Background(), BookInput{Title: "Dune", Author: "Herbert", Category: "Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "b9", book.ID)
	assert.True(t, book.Available)
}

func TestClientReturnReportsFine(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/borrow/return/rec1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"fine": 42.5, "returnedAt": "2026-08-01"})
	})

	api, _ := newTestClient(t, handler, studentSession())
	res, err := api.Return(context.Background(), "rec1")
	require.NoError(t, err)
	assert.Equal(t, 42.5, res.Fine)
}
