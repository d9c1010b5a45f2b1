package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// fileState is the on-disk shape of persisted session state.
type fileState struct {
	Tokens   Tokens `json:"tokens"`
	TenantID string `json:"tenant_id,omitempty"`
}

// FileStore persists credentials and the tenant identifier to a JSON file so a
// session survives process restarts. Reads are served from memory. A
// non-persisted SetTokens scrubs any earlier session's tokens from the file
// instead of writing the new ones.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state fileState
}

// NewFileStore creates a store backed by the given path and loads any
// previously persisted state. A missing file is not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return s, nil
}

func (s *FileStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Tokens.AccessToken
}

func (s *FileStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Tokens.RefreshToken
}

func (s *FileStore) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Tokens
}

func (s *FileStore) SetTokens(t Tokens, persist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tokens = t
	if persist {
		return s.write()
	}

	// A session established without persistence must not leave an earlier
	// remembered session's tokens on disk, where the next process would
	// resurrect possibly revoked credentials.
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return s.writeState(fileState{TenantID: s.state.TenantID})
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tokens = Tokens{}
	return s.write()
}

func (s *FileStore) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TenantID
}

func (s *FileStore) SetTenantID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TenantID = id
	return s.write()
}

// ClearTenant removes only the tenant identifier.
func (s *FileStore) ClearTenant() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TenantID = ""
	return s.write()
}

// TenantView returns a TenantStore backed by this store whose Clear only
// removes the tenant identifier.
func (s *FileStore) TenantView() TenantStore {
	return &fileTenantView{store: s}
}

// write persists current state. Caller must hold the write lock.
func (s *FileStore) write() error {
	return s.writeState(s.state)
}

// writeState persists the given snapshot, which may differ from the in-memory
// state when a non-persisted session scrubs the token record. Caller must
// hold the write lock.
func (s *FileStore) writeState(state fileState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

type fileTenantView struct {
	store *FileStore
}

func (v *fileTenantView) TenantID() string            { return v.store.TenantID() }
func (v *fileTenantView) SetTenantID(id string) error { return v.store.SetTenantID(id) }
func (v *fileTenantView) Clear() error                { return v.store.ClearTenant() }
