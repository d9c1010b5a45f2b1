package resources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/session"
)

// User is the authenticated account record.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	TenantID  string `json:"tenantId"`
}

// LoginInput carries the credentials for a login attempt. Remember controls
// whether the resulting tokens are persisted beyond the process.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId,omitempty"`
	Remember bool   `json:"-"`
}

// RegisterInput carries a new-account registration.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	SchoolID  string `json:"schoolId,omitempty"`
}

// AuthResult is the outcome of login, 2FA verification, or token refresh.
// RequiresTwoFactor signals an incomplete login: no tokens were stored and the
// caller must follow up with VerifyTwoFactor.
type AuthResult struct {
	User              *User `json:"user"`
	RequiresTwoFactor bool  `json:"requiresTwoFactor"`
}

// TwoFactorSetup is the enrollment material for an authenticator app.
type TwoFactorSetup struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qrCodeUrl"`
}

// tokenGrant is the wire shape of every endpoint that issues credentials.
type tokenGrant struct {
	AccessToken       string `json:"accessToken"`
	RefreshToken      string `json:"refreshToken"`
	User              *User  `json:"user"`
	RequiresTwoFactor bool   `json:"requiresTwoFactor"`
}

// AuthService owns the authentication lifecycle. Operations that issue tokens
// write the credential store; Logout clears it.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Logout(ctx context.Context) error
	// ServerLogout revokes the session server-side without touching local
	// state. The session Invalidator uses it as its notify hook.
	ServerLogout(ctx context.Context) error
	RefreshToken(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	SetupTwoFactor(ctx context.Context) (*TwoFactorSetup, error)
	VerifyTwoFactor(ctx context.Context, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
}

// authService implements AuthService on top of the request dispatcher and the
// session stores.
type authService struct {
	client      Doer
	credentials session.CredentialStore
	tenant      session.TenantStore
	logger      *slog.Logger

	// remember records the persistence choice of the last login so a token
	// refresh keeps the same behavior.
	mu       sync.Mutex
	remember bool
}

// NewAuthService creates the authentication service.
func NewAuthService(d Doer, credentials session.CredentialStore, tenant session.TenantStore, logger *slog.Logger) AuthService {
	return &authService{
		client:      d,
		credentials: credentials,
		tenant:      tenant,
		logger:      logger,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	grant, err := fetchOne[tokenGrant](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   input,
	})
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, fmt.Errorf("login response carried no credentials")
	}

	if grant.RequiresTwoFactor {
		// No tokens yet, but the persistence choice must survive until
		// VerifyTwoFactor completes the login.
		s.mu.Lock()
		s.remember = input.Remember
		s.mu.Unlock()
		s.logger.Debug("login pending two-factor verification", slog.String("email", input.Email))
		return &AuthResult{User: grant.User, RequiresTwoFactor: true}, nil
	}

	if err := s.storeGrant(grant, input.Remember); err != nil {
		return nil, err
	}
	if grant.User != nil && grant.User.TenantID != "" {
		if err := s.tenant.SetTenantID(grant.User.TenantID); err != nil {
			return nil, fmt.Errorf("failed to store tenant: %w", err)
		}
	}

	s.logger.Info("logged in", slog.String("email", input.Email))
	return &AuthResult{User: grant.User}, nil
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	return fetchOne[User](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   input,
	})
}

func (s *authService) Logout(ctx context.Context) error {
	// Server-side revocation is best effort; local state always clears.
	if err := s.ServerLogout(ctx); err != nil {
		s.logger.Warn("server logout failed", slog.String("error", err.Error()))
	}
	if err := s.credentials.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	if err := s.tenant.Clear(); err != nil {
		return fmt.Errorf("failed to clear tenant: %w", err)
	}
	return nil
}

func (s *authService) ServerLogout(ctx context.Context) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
	})
}

func (s *authService) RefreshToken(ctx context.Context) error {
	refresh := s.credentials.RefreshToken()
	if refresh == "" {
		return fmt.Errorf("no refresh token held")
	}

	grant, err := fetchOne[tokenGrant](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   map[string]string{"refreshToken": refresh},
	})
	if err != nil {
		return err
	}
	if grant == nil || grant.AccessToken == "" {
		return fmt.Errorf("refresh response carried no credentials")
	}

	s.mu.Lock()
	remember := s.remember
	s.mu.Unlock()
	return s.storeGrant(grant, remember)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password",
		Body:   map[string]string{"email": email},
	})
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/reset-password",
		Body:   map[string]string{"token": token, "password": newPassword},
	})
}

func (s *authService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/change-password",
		Body: map[string]string{
			"currentPassword": currentPassword,
			"newPassword":     newPassword,
		},
	})
}

func (s *authService) SetupTwoFactor(ctx context.Context) (*TwoFactorSetup, error) {
	return fetchOne[TwoFactorSetup](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/2fa/setup",
	})
}

func (s *authService) VerifyTwoFactor(ctx context.Context, code string) (*AuthResult, error) {
	grant, err := fetchOne[tokenGrant](ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/2fa/verify",
		Body:   map[string]string{"code": code},
	})
	if err != nil {
		return nil, err
	}
	if grant == nil || grant.AccessToken == "" {
		return nil, fmt.Errorf("verification response carried no credentials")
	}

	s.mu.Lock()
	remember := s.remember
	s.mu.Unlock()
	if err := s.storeGrant(grant, remember); err != nil {
		return nil, err
	}
	return &AuthResult{User: grant.User}, nil
}

func (s *authService) ResendOTP(ctx context.Context, email string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/resend-otp",
		Body:   map[string]string{"email": email},
	})
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	return do(ctx, s.client, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/verify-email",
		Body:   map[string]string{"token": token},
	})
}

// storeGrant writes the issued tokens, reading the expiry out of the access
// token's claims so refresh scheduling does not need a server hint.
func (s *authService) storeGrant(grant *tokenGrant, remember bool) error {
	tokens := session.Tokens{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
	}
	if expiry, err := session.TokenExpiry(grant.AccessToken); err == nil {
		tokens.ExpiresAt = expiry
	} else {
		s.logger.Debug("access token carries no readable expiry", slog.String("error", err.Error()))
	}

	if err := s.credentials.SetTokens(tokens, remember); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	s.mu.Lock()
	s.remember = remember
	s.mu.Unlock()
	return nil
}
