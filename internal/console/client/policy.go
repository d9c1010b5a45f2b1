package client

import "strings"

// authLifecycleEndpoints are matched by substring: paths carry embedded ids
// and optional prefixes, so exact matching would silently miss them. Requests
// to these endpoints never carry the tenant header: there is no tenant
// context before authentication, and the extra header only triggers needless
// preflight failures.
var authLifecycleEndpoints = []string{
	"/auth/login",
	"/auth/register",
	"/auth/logout",
	"/auth/forgot-password",
	"/auth/reset-password",
	"/auth/change-password",
	"/auth/2fa/setup",
	"/auth/2fa/verify",
	"/auth/resend-otp",
	"/auth/refresh",
	"/auth/verify-email",
}

// IsAuthLifecycle reports whether the path belongs to the authentication
// lifecycle (login, registration, password reset, 2FA, token refresh).
func IsAuthLifecycle(path string) bool {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for _, endpoint := range authLifecycleEndpoints {
		if strings.Contains(path, endpoint) {
			return true
		}
	}
	return false
}

// RequiresTenantHeader reports whether requests to the path must be scoped to
// the active tenant. Pure function; evaluated once per request.
func RequiresTenantHeader(path string) bool {
	return !IsAuthLifecycle(path)
}
