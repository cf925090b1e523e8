package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hexanode/accounts/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer accepts "good" as access token and exchanges the refresh
// token "refresh-ok" for it.
func testServer(t *testing.T, protectedCalls, refreshCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var req dto.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.RefreshToken != "refresh-ok" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
			return
		}
		json.NewEncoder(w).Encode(dto.RefreshResponse{Message: "Token refreshed", Token: "good"})
	})

	mux.HandleFunc("/api/users/1", func(w http.ResponseWriter, r *http.Request) {
		protectedCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(dto.UserResponse{ID: 1, Email: "a@b.c"})
	})

	return httptest.NewServer(mux)
}

func TestTransportPassThroughWithLiveToken(t *testing.T) {
	var protectedCalls, refreshCalls atomic.Int32
	srv := testServer(t, &protectedCalls, &refreshCalls)
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(&Session{AccessToken: "good", RefreshToken: "refresh-ok", User: dto.UserResponse{ID: 1}}))

	c := New(srv.URL, store)
	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, int32(1), protectedCalls.Load())
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestTransportRefreshesOnceAndRetries(t *testing.T) {
	var protectedCalls, refreshCalls atomic.Int32
	srv := testServer(t, &protectedCalls, &refreshCalls)
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(&Session{AccessToken: "stale", RefreshToken: "refresh-ok", User: dto.UserResponse{ID: 1}}))

	c := New(srv.URL, store)
	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	// Exactly one failed attempt, one refresh, one retry.
	assert.Equal(t, int32(2), protectedCalls.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())

	// The new access token was persisted.
	session, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "good", session.AccessToken)
}

func TestTransportDeadRefreshTokenClearsSession(t *testing.T) {
	var protectedCalls, refreshCalls atomic.Int32
	srv := testServer(t, &protectedCalls, &refreshCalls)
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(&Session{AccessToken: "stale", RefreshToken: "refresh-dead", User: dto.UserResponse{ID: 1}}))

	c := New(srv.URL, store)
	_, err := c.Me(context.Background())

	// The server's own 401 comes back, not a synthetic error.
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)

	// The session is gone regardless.
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, c.IsAuthenticated())
}

func TestWithHTTPClientLeavesCallerUntouched(t *testing.T) {
	hc := &http.Client{}
	c := New("http://localhost", NewMemoryStore(), WithHTTPClient(hc))

	assert.Nil(t, hc.Transport)
	assert.IsType(t, &authTransport{}, c.http.Transport)
}

func TestTransportConcurrent401sShareOneRefresh(t *testing.T) {
	var protectedCalls, refreshCalls atomic.Int32
	srv := testServer(t, &protectedCalls, &refreshCalls)
	defer srv.Close()

	store := NewMemoryStore()
	require.NoError(t, store.Save(&Session{AccessToken: "stale", RefreshToken: "refresh-ok", User: dto.UserResponse{ID: 1}}))

	c := New(srv.URL, store)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Me(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "Sup3r@Secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "incorrect email or password"})
			return
		}
		json.NewEncoder(w).Encode(dto.AuthResponse{
			Message:      "Login successful",
			User:         dto.UserResponse{ID: 3, Email: req.Email},
			Token:        "good",
			RefreshToken: "refresh-ok",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewMemoryStore()
	c := New(srv.URL, store)

	session, err := c.Login(context.Background(), "a@b.c", "Sup3r@Secret")
	require.NoError(t, err)
	assert.Equal(t, "good", session.AccessToken)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, uint(3), stored.User.ID)

	// Bad credentials surface the API error and store nothing new.
	_, err = c.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
