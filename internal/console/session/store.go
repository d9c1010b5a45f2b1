// Package session owns credential and tenant state for the console client,
// plus the invalidation flow that runs when the backend reports an expired
// session.
package session

import "time"

// Tokens is the credential record held for an authenticated session.
type Tokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// IsZero reports whether no credentials are held.
func (t Tokens) IsZero() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// CredentialStore holds the session tokens. The client reads it before every
// request; it is written only by login, token refresh, and the Invalidator.
type CredentialStore interface {
	// AccessToken returns the current access token, or "" when logged out.
	AccessToken() string
	// RefreshToken returns the current refresh token, or "" when logged out.
	RefreshToken() string
	// Tokens returns the full credential record.
	Tokens() Tokens
	// SetTokens replaces the credential record. When persist is true the
	// store also writes the record to its backing medium.
	SetTokens(t Tokens, persist bool) error
	// Clear removes all credential state. Clearing an empty store is a no-op.
	Clear() error
}

// TenantStore holds the active tenant identifier scoping all non-auth requests.
type TenantStore interface {
	// TenantID returns the active tenant identifier, or "" when none is set.
	TenantID() string
	// SetTenantID sets the active tenant.
	SetTenantID(id string) error
	// Clear removes the tenant identifier. Clearing an empty store is a no-op.
	Clear() error
}
