// Package client is the Go SDK for the accounts API. It keeps the session
// in an explicit store, guards access to protected calls and transparently
// refreshes expired access tokens.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/hexanode/accounts/internal/dto"
)

// Session is the authenticated state carried between calls. It is an
// explicit value, never package-level state.
type Session struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	User         dto.UserResponse `json:"user"`
}

// Authenticated reports whether the session holds a token and the user
// snapshot that came with it. A token without its user is a broken
// session, not a signed-in one.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != "" && s.User.ID != 0
}

// Store persists the session between runs. Implementations must be safe
// for concurrent use.
type Store interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// ErrNoSession is returned by Load when nothing is stored.
var ErrNoSession = errors.New("no stored session")

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	copied := *m.session
	return &copied, nil
}

func (m *MemoryStore) Save(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.session = &copied
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// NoopStore never holds a session. It stands in for contexts that have no
// credential storage at all; the guard waves such contexts through.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (NoopStore) Load() (*Session, error) { return nil, ErrNoSession }
func (NoopStore) Save(*Session) error     { return nil }
func (NoopStore) Clear() error            { return nil }

// FileStore persists the session as a JSON file readable only by the
// owner, for CLI use between invocations.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath places the session file under the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "accounts", "session.json"), nil
}

func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

func (f *FileStore) Save(session *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
