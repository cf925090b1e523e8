package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexanode/accounts/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	session := &Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         dto.UserResponse{ID: 1, Email: "a@b.c"},
	}
	require.NoError(t, store.Save(session))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, uint(1), loaded.User.ID)

	// The store hands out copies, not aliases.
	loaded.AccessToken = "mutated"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access", again.AccessToken)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	session := &Session{AccessToken: "access", RefreshToken: "refresh"}
	require.NoError(t, store.Save(session))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing an already-clean store is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, (*Session)(nil).Authenticated())
	assert.False(t, (&Session{}).Authenticated())
	assert.True(t, (&Session{AccessToken: "x"}).Authenticated())
}
