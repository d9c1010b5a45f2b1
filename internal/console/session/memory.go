package session

import "sync"

// MemoryStore is an in-process credential and tenant store. The persist flag
// on SetTokens is accepted and ignored; nothing outlives the process.
type MemoryStore struct {
	mu       sync.RWMutex
	tokens   Tokens
	tenantID string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.RefreshToken
}

func (s *MemoryStore) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *MemoryStore) SetTokens(t Tokens, persist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	return nil
}

func (s *MemoryStore) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenantID
}

func (s *MemoryStore) SetTenantID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenantID = id
	return nil
}

// ClearTenant removes only the tenant identifier.
func (s *MemoryStore) ClearTenant() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenantID = ""
	return nil
}

// tenantView adapts a MemoryStore to the TenantStore interface so that a
// single MemoryStore can back both stores without Clear() wiping everything.
type tenantView struct {
	store *MemoryStore
}

// TenantView returns a TenantStore backed by this store whose Clear only
// removes the tenant identifier.
func (s *MemoryStore) TenantView() TenantStore {
	return &tenantView{store: s}
}

func (v *tenantView) TenantID() string            { return v.store.TenantID() }
func (v *tenantView) SetTenantID(id string) error { return v.store.SetTenantID(id) }
func (v *tenantView) Clear() error                { return v.store.ClearTenant() }
