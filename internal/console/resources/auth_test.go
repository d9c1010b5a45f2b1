package resources

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/session"
)

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiry.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestAuthService_Login(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	access := signedToken(t, expiry)

	doer := newFakeDoer()
	doer.respond("POST", "/auth/login", fmt.Sprintf(
		`{"accessToken":%q,"refreshToken":"refresh-1","user":{"id":"u1","email":"admin@school.test","tenantId":"tenant-7"}}`,
		access))

	creds := session.NewMemoryStore()
	tenants := session.NewMemoryStore().TenantView()
	svc := NewAuthService(doer, creds, tenants, testLogger())

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@school.test",
		Password: "hunter2",
		Remember: true,
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.False(t, result.RequiresTwoFactor)

	assert.Equal(t, access, creds.AccessToken())
	assert.Equal(t, "refresh-1", creds.RefreshToken())
	assert.Equal(t, "tenant-7", tenants.TenantID())
	assert.WithinDuration(t, expiry, creds.Tokens().ExpiresAt, time.Second)
}

func TestAuthService_LoginPendingTwoFactor(t *testing.T) {
	doer := newFakeDoer()
	doer.respond("POST", "/auth/login",
		`{"requiresTwoFactor":true,"user":{"id":"u1","email":"admin@school.test"}}`)

	creds := session.NewMemoryStore()
	svc := NewAuthService(doer, creds, session.NewMemoryStore().TenantView(), testLogger())

	result, err := svc.Login(context.Background(), LoginInput{Email: "admin@school.test", Password: "x"})
	require.NoError(t, err)
	assert.True(t, result.RequiresTwoFactor)
	assert.Empty(t, creds.AccessToken(), "no tokens before 2FA completes")
}

// recordingStore wraps a MemoryStore and records the persist flag of every
// SetTokens call.
type recordingStore struct {
	*session.MemoryStore
	persistCalls []bool
}

func (r *recordingStore) SetTokens(tokens session.Tokens, persist bool) error {
	r.persistCalls = append(r.persistCalls, persist)
	return r.MemoryStore.SetTokens(tokens, persist)
}

func TestAuthService_TwoFactorLoginKeepsRememberChoice(t *testing.T) {
	access := signedToken(t, time.Now().Add(time.Hour))
	doer := newFakeDoer()
	doer.respond("POST", "/auth/login", `{"requiresTwoFactor":true,"user":{"id":"u1"}}`)
	doer.respond("POST", "/auth/2fa/verify", fmt.Sprintf(
		`{"accessToken":%q,"refreshToken":"refresh-1"}`, access))

	creds := &recordingStore{MemoryStore: session.NewMemoryStore()}
	svc := NewAuthService(doer, creds, session.NewMemoryStore().TenantView(), testLogger())

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "admin@school.test",
		Password: "x",
		Remember: true,
	})
	require.NoError(t, err)
	require.True(t, result.RequiresTwoFactor)

	_, err = svc.VerifyTwoFactor(context.Background(), "123456")
	require.NoError(t, err)

	require.Len(t, creds.persistCalls, 1)
	assert.True(t, creds.persistCalls[0], "tokens issued after 2FA must honor the login's Remember choice")
}

func TestAuthService_VerifyTwoFactorStoresGrant(t *testing.T) {
	access := signedToken(t, time.Now().Add(time.Hour))
	doer := newFakeDoer()
	doer.respond("POST", "/auth/2fa/verify", fmt.Sprintf(
		`{"accessToken":%q,"refreshToken":"refresh-2","user":{"id":"u1"}}`, access))

	creds := session.NewMemoryStore()
	svc := NewAuthService(doer, creds, session.NewMemoryStore().TenantView(), testLogger())

	result, err := svc.VerifyTwoFactor(context.Background(), "123456")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, access, creds.AccessToken())
}

func TestAuthService_RefreshToken(t *testing.T) {
	initial := signedToken(t, time.Now().Add(time.Minute))
	renewed := signedToken(t, time.Now().Add(time.Hour))

	creds := session.NewMemoryStore()
	require.NoError(t, creds.SetTokens(session.Tokens{AccessToken: initial, RefreshToken: "refresh-1"}, false))

	doer := newFakeDoer()
	doer.respond("POST", "/auth/refresh", fmt.Sprintf(
		`{"accessToken":%q,"refreshToken":"refresh-2"}`, renewed))

	svc := NewAuthService(doer, creds, session.NewMemoryStore().TenantView(), testLogger())
	require.NoError(t, svc.RefreshToken(context.Background()))

	assert.Equal(t, renewed, creds.AccessToken())
	assert.Equal(t, "refresh-2", creds.RefreshToken())

	sent, ok := doer.lastRequest().Body.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "refresh-1", sent["refreshToken"])
}

func TestAuthService_RefreshWithoutTokenFails(t *testing.T) {
	svc := NewAuthService(newFakeDoer(), session.NewMemoryStore(), session.NewMemoryStore().TenantView(), testLogger())
	assert.Error(t, svc.RefreshToken(context.Background()))
}

func TestAuthService_LogoutClearsBothStores(t *testing.T) {
	creds := session.NewMemoryStore()
	require.NoError(t, creds.SetTokens(session.Tokens{AccessToken: "a", RefreshToken: "r"}, false))
	tenants := session.NewMemoryStore().TenantView()
	require.NoError(t, tenants.SetTenantID("tenant-7"))

	doer := newFakeDoer()
	doer.respond("POST", "/auth/logout", `{}`)

	svc := NewAuthService(doer, creds, tenants, testLogger())
	require.NoError(t, svc.Logout(context.Background()))

	assert.Empty(t, creds.AccessToken())
	assert.Empty(t, tenants.TenantID())
}

func TestAuthService_LogoutSurvivesServerFailure(t *testing.T) {
	creds := session.NewMemoryStore()
	require.NoError(t, creds.SetTokens(session.Tokens{AccessToken: "a"}, false))

	doer := newFakeDoer()
	doer.fail("POST", "/auth/logout", fmt.Errorf("server unreachable"))

	svc := NewAuthService(doer, creds, session.NewMemoryStore().TenantView(), testLogger())
	require.NoError(t, svc.Logout(context.Background()))
	assert.Empty(t, creds.AccessToken(), "local state clears even when revocation fails")
}
