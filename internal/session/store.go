package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// tokenKey is the storage key for the admin bearer token.
const tokenKey = "admin_token"

// Store holds the admin session token. The token survives restarts so the
// dashboard opens without a fresh login while the server still honors it.
type Store interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

type diskStore struct {
	mu sync.RWMutex
	d  *diskv.Diskv
}

// NewStore creates a token store backed by diskv under dir. When dir is
// empty the user config dir is used.
func NewStore(dir string) Store {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		dir = filepath.Join(configDir, "outlooker", "session")
	}

	return &diskStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024, // tokens are tiny
		}),
	}
}

// Token returns the stored token, or "" when none is stored. Requests
// issued without a token go out unauthenticated.
func (s *diskStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.d.Has(tokenKey) {
		return ""
	}
	data, err := s.d.Read(tokenKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken stores the token.
func (s *diskStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.Write(tokenKey, []byte(token))
}

// Clear removes the stored token.
func (s *diskStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.d.Has(tokenKey) {
		return nil
	}
	return s.d.Erase(tokenKey)
}
