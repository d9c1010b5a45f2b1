// Package client implements the shared request/response pipeline every
// console feature talks to the backend through: one resilient HTTP client
// with timeout and retry policy, tenant- and session-scoped header injection,
// transport fault classification, and response interpretation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/goutil"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/logger"
)

// TokenSource is the dispatcher's read-only view of the credential store.
type TokenSource interface {
	AccessToken() string
}

// TenantSource is the dispatcher's read-only view of the tenant store.
type TenantSource interface {
	TenantID() string
}

// Invalidator tears down the session on authentication failure. Satisfied by
// session.Invalidator; the client never clears stores itself.
type Invalidator interface {
	Invalidate(ctx context.Context, reason string)
}

// Request describes a single API call. It is created per call and owned by
// the dispatcher for the duration of that call only.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values

	// Timeout overrides the client default when positive.
	Timeout time.Duration
	// Retry enables the retry loop for transient faults.
	Retry bool
	// RetryAttempts overrides the configured attempt count when positive.
	RetryAttempts int
}

// Options configures a Client.
type Options struct {
	BaseURL       string
	APIPrefix     string
	TenantHeader  string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	HTTPClient    *http.Client
	Credentials   TokenSource
	Tenant        TenantSource
	Logger        *logger.Logger
}

// Client is the API client shared by every domain operation.
type Client struct {
	baseURL       string
	apiPrefix     string
	tenantHeader  string
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	httpClient    *http.Client
	creds         TokenSource
	tenant        TenantSource
	invalidator   Invalidator
	logger        *logger.Logger
}

// New creates a new API client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.HTTPClient == nil {
		// No transport-level timeout: each attempt is bounded by its own
		// context deadline so retries get a fresh budget.
		opts.HTTPClient = &http.Client{}
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api/v1"
	}
	if opts.TenantHeader == "" {
		opts.TenantHeader = "X-Tenant-ID"
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewDevelopment("client")
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		apiPrefix:     "/" + strings.Trim(opts.APIPrefix, "/"),
		tenantHeader:  opts.TenantHeader,
		timeout:       opts.Timeout,
		retryAttempts: opts.RetryAttempts,
		retryDelay:    opts.RetryDelay,
		httpClient:    opts.HTTPClient,
		creds:         opts.Credentials,
		tenant:        opts.Tenant,
		logger:        opts.Logger,
	}
}

// SetInvalidator wires the session invalidator. Set after construction
// because the invalidator's server-logout call goes through this client.
func (c *Client) SetInvalidator(inv Invalidator) {
	c.invalidator = inv
}

// Do dispatches a request and returns the canonical envelope, or a typed
// *api.Error for any failure mode. With retry enabled, transient faults
// (transport errors, 5xx, 408) are retried with linearly increasing backoff;
// other 4xx responses fail immediately. The last attempt's failure is the one
// surfaced.
func (c *Client) Do(ctx context.Context, req Request) (*api.RawEnvelope, error) {
	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, api.NewError(0, api.CodeInvalidResponse,
				"failed to encode request body", err)
		}
	}

	ctx = logger.WithRequestID(ctx, uuid.New().String())

	attempts := 1
	if req.Retry {
		attempts = c.retryAttempts
		if req.RetryAttempts > 0 {
			attempts = req.RetryAttempts
		}
	}
	if attempts < 1 {
		return nil, api.NewError(0, api.CodeRetryFailed,
			"retry loop exhausted without an attempt", nil)
	}

	var lastErr *api.Error
	for attempt := 1; attempt <= attempts; attempt++ {
		envelope, retryAfter, err := c.attempt(ctx, req, payload)
		if err == nil {
			if attempt > 1 {
				c.logger.WithContext(ctx).Info("request succeeded after retry",
					"attempt", attempt, "path", req.Path)
			}
			return envelope, nil
		}

		apiErr, ok := api.AsError(err)
		if !ok {
			apiErr = api.NewError(0, api.CodeNetworkError, "request failed", err)
		}
		lastErr = apiErr

		if !req.Retry || attempt == attempts || !apiErr.Retryable() {
			break
		}

		delay := c.retryDelay * time.Duration(attempt)
		if retryAfter > delay {
			delay = retryAfter
		}
		c.logger.WithContext(ctx).Warn("request failed, will retry",
			"attempt", attempt, "path", req.Path, "delay", delay, "error", apiErr.Message)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, classifyTransportFault(ctx.Err(), nil)
		}
	}

	return nil, lastErr
}

// attempt performs one transport attempt under its own deadline. The second
// return value carries the server's Retry-After hint when present.
func (c *Client) attempt(ctx context.Context, req Request, payload []byte) (*api.RawEnvelope, time.Duration, error) {
	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.resolveURL(req.Path, req.Query)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, endpoint, body)
	if err != nil {
		return nil, 0, api.NewError(0, api.CodeNetworkError, "failed to create request", err)
	}

	sentHeaders := c.applyHeaders(httpReq, req.Path, logger.GetRequestID(ctx))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithContext(ctx).Debug("transport attempt failed",
			"method", req.Method, "path", req.Path, "error", err)
		return nil, 0, classifyTransportFault(err, sentHeaders)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, api.NewError(0, api.CodeNetworkError,
			"failed to read response body", err)
	}

	c.logger.HTTPRequest(ctx, req.Method, req.Path, resp.StatusCode, time.Since(start))

	retryAfter := retryAfterHint(resp)

	envelope, err := c.interpret(ctx, req.Path, resp, respBody)
	if err != nil {
		return nil, retryAfter, err
	}
	return envelope, 0, nil
}

// applyHeaders sets the wire-contract headers and returns the names of the
// custom ones actually sent, for CORS diagnostics.
func (c *Client) applyHeaders(httpReq *http.Request, path, requestID string) []string {
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	sent := []string{}

	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
		sent = append(sent, "X-Request-ID")
	}

	if c.creds != nil {
		if token := c.creds.AccessToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
			sent = append(sent, "Authorization")
		}
	}

	if c.tenant != nil && RequiresTenantHeader(path) {
		if tenantID := c.tenant.TenantID(); tenantID != "" {
			httpReq.Header.Set(c.tenantHeader, tenantID)
			sent = append(sent, c.tenantHeader)
		}
	}

	return sent
}

// resolveURL joins base URL, versioned prefix, and path, normalizing slashes
// so callers may pass paths with or without a leading slash.
func (c *Client) resolveURL(path string, query url.Values) string {
	endpoint := fmt.Sprintf("%s%s/%s", c.baseURL, c.apiPrefix, strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// retryAfterHint reads the Retry-After header on throttled or unavailable
// responses so the backoff loop can honor the server's own pacing.
func retryAfterHint(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := goutil.ToInt(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}
