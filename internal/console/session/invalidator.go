package session

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/events"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/logger"
)

// NotifyFunc performs the best-effort server-side logout call. Its error is
// swallowed: local state is already cleared and must not be rolled back.
type NotifyFunc func(ctx context.Context) error

// LocationFunc reports the shell's current path, used to pick the login page.
type LocationFunc func() string

// serverLogoutTimeout bounds the best-effort logout notification so the
// server session does not silently outlive the client's belief for long.
const serverLogoutTimeout = 2 * time.Second

// Invalidator tears down the local session: it clears credential and tenant
// state, notifies the server best-effort, and emits a single navigation
// effect to the appropriate login path. It is never called by UI code
// directly; only the response interpreter invokes it.
type Invalidator struct {
	creds           CredentialStore
	tenant          TenantStore
	bus             events.EventBus
	logger          *logger.Logger
	notify          NotifyFunc
	location        LocationFunc
	schoolLoginPath string
	adminLoginPath  string

	// navigated latches once the navigation effect has been emitted, so
	// concurrent 401s on in-flight calls trigger it at most once. A full
	// page replace discards the client anyway, so the latch never resets.
	navigated atomic.Bool
}

// InvalidatorConfig wires an Invalidator's collaborators.
type InvalidatorConfig struct {
	Credentials     CredentialStore
	Tenant          TenantStore
	Bus             events.EventBus
	Logger          *logger.Logger
	Notify          NotifyFunc
	Location        LocationFunc
	SchoolLoginPath string
	AdminLoginPath  string
}

// NewInvalidator creates a session invalidator.
func NewInvalidator(cfg InvalidatorConfig) *Invalidator {
	if cfg.SchoolLoginPath == "" {
		cfg.SchoolLoginPath = "/login"
	}
	if cfg.AdminLoginPath == "" {
		cfg.AdminLoginPath = "/admin/login"
	}
	if cfg.Location == nil {
		cfg.Location = func() string { return "/" }
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewDevelopment("session")
	}

	return &Invalidator{
		creds:           cfg.Credentials,
		tenant:          cfg.Tenant,
		bus:             cfg.Bus,
		logger:          cfg.Logger,
		notify:          cfg.Notify,
		location:        cfg.Location,
		schoolLoginPath: cfg.SchoolLoginPath,
		adminLoginPath:  cfg.AdminLoginPath,
	}
}

// Invalidate clears all session state and emits the navigation effect. Safe
// to call multiple times: a second call finds already-cleared stores and does
// not re-emit navigation.
func (inv *Invalidator) Invalidate(ctx context.Context, reason string) {
	hadSession := inv.creds.AccessToken() != "" || inv.creds.RefreshToken() != ""

	if err := inv.creds.Clear(); err != nil {
		inv.logger.WithContext(ctx).Warn("failed to clear credential store", "error", err)
	}
	if err := inv.tenant.Clear(); err != nil {
		inv.logger.WithContext(ctx).Warn("failed to clear tenant store", "error", err)
	}

	// Best-effort server logout. Bounded so a dead backend cannot stall the
	// reset; the failure is swallowed because local state is already gone.
	if inv.notify != nil && hadSession {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverLogoutTimeout)
		defer cancel()
		if err := inv.notify(notifyCtx); err != nil {
			inv.logger.WithContext(ctx).Debug("server logout notification failed", "error", err)
		}
	}

	if !inv.navigated.CompareAndSwap(false, true) {
		return
	}

	path := inv.loginPath()
	inv.logger.WithContext(ctx).Info("session invalidated", "reason", reason, "redirect", path)

	if inv.bus != nil {
		if err := inv.bus.Publish(ctx, events.NewSessionInvalidated(reason)); err != nil {
			inv.logger.WithContext(ctx).Warn("failed to publish session event", "error", err)
		}
		if err := inv.bus.Publish(ctx, events.NewNavigationReplace(path)); err != nil {
			inv.logger.WithContext(ctx).Warn("failed to publish navigation event", "error", err)
		}
	}
}

// loginPath picks the platform-admin login page when the shell currently sits
// under the admin area, and the school login page otherwise.
func (inv *Invalidator) loginPath() string {
	current := inv.location()
	if strings.HasPrefix(current, "/admin") || strings.Contains(current, "/platform") {
		return inv.adminLoginPath
	}
	return inv.schoolLoginPath
}
