package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_TokenLifecycle(t *testing.T) {
	s := NewMemoryStore()

	assert.Empty(t, s.AccessToken())
	assert.True(t, s.Tokens().IsZero())

	err := s.SetTokens(Tokens{AccessToken: "acc", RefreshToken: "ref"}, false)
	require.NoError(t, err)
	assert.Equal(t, "acc", s.AccessToken())
	assert.Equal(t, "ref", s.RefreshToken())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.AccessToken())

	// Clearing an already-empty store must not error
	require.NoError(t, s.Clear())
}

func TestMemoryStore_TenantViewClearsOnlyTenant(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetTokens(Tokens{AccessToken: "acc"}, false))

	tenant := s.TenantView()
	require.NoError(t, tenant.SetTenantID("greenfield"))
	assert.Equal(t, "greenfield", tenant.TenantID())

	require.NoError(t, tenant.Clear())
	assert.Empty(t, tenant.TenantID())
	assert.Equal(t, "acc", s.AccessToken(), "clearing tenant must not touch credentials")
}

func TestFileStore_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken(), "fresh store starts empty")

	require.NoError(t, s.SetTokens(Tokens{AccessToken: "acc", RefreshToken: "ref"}, true))
	require.NoError(t, s.SetTenantID("greenfield"))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "acc", reloaded.AccessToken())
	assert.Equal(t, "ref", reloaded.RefreshToken())
	assert.Equal(t, "greenfield", reloaded.TenantID())

	require.NoError(t, reloaded.Clear())
	again, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, again.AccessToken())
	assert.Equal(t, "greenfield", again.TenantID(), "Clear removes credentials only")
}

func TestFileStore_NoPersistSkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens(Tokens{AccessToken: "acc"}, false))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "persist=false must not create the file")
}

func TestFileStore_NoPersistScrubsEarlierSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens(Tokens{AccessToken: "old", RefreshToken: "old-ref"}, true))
	require.NoError(t, s.SetTenantID("greenfield"))

	// A new session without persistence serves from memory but must not
	// leave the remembered session's tokens on disk.
	require.NoError(t, s.SetTokens(Tokens{AccessToken: "new"}, false))
	assert.Equal(t, "new", s.AccessToken())

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.AccessToken(), "stale tokens must not be resurrected")
	assert.Empty(t, reloaded.RefreshToken())
	assert.Equal(t, "greenfield", reloaded.TenantID(), "tenant survives the scrub")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		Subject:   "user-1",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := TokenExpiry(signed)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "expected %v, got %v", exp, got)

	_, err = TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestTokensExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, Tokens{AccessToken: "acc"}.Expired(now), "no known expiry is never expired")
	assert.False(t, Tokens{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Tokens{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}
