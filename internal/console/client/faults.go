package client

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
)

// corsMessagePatterns are the human-readable notices transports emit when a
// cross-origin policy rejects a request. Pattern matching here is a
// diagnostic aid only; callers must never branch on CORS_ERROR vs
// NETWORK_ERROR for control flow.
var corsMessagePatterns = []string{
	"cors",
	"cross-origin",
	"access-control-allow",
	"preflight",
	"blocked by",
}

// classifyTransportFault converts a low-level transport failure into a typed
// API error. Already-typed errors pass through unchanged. sentHeaders names
// the custom headers the request carried, so a CORS diagnosis can say exactly
// which header must be allow-listed server-side.
func classifyTransportFault(err error, sentHeaders []string) *api.Error {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr
	}

	// The dispatcher's own per-attempt deadline fired: the in-flight attempt
	// was aborted before a response arrived.
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return api.NewError(408, api.CodeTimeout, "request timed out", err)
	}

	if errors.Is(err, context.Canceled) {
		return api.NewError(0, api.CodeNetworkError, "request cancelled", err)
	}

	if corsErr := classifyCORS(err, sentHeaders); corsErr != nil {
		return corsErr
	}

	return api.NewError(0, api.CodeNetworkError, "network request failed", err)
}

// classifyCORS inspects the failure text for cross-origin rejection notices.
// Returns nil when the failure does not look CORS-related.
func classifyCORS(err error, sentHeaders []string) *api.Error {
	msg := strings.ToLower(err.Error())

	matched := false
	for _, pattern := range corsMessagePatterns {
		if strings.Contains(msg, pattern) {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	corsErr := api.NewError(0, api.CodeCORSError,
		"request blocked by cross-origin policy", err).
		WithDetail("sentHeaders", sentHeaders)

	// Name the specific header when the notice mentions one we sent.
	for _, header := range sentHeaders {
		if strings.Contains(msg, strings.ToLower(header)) {
			corsErr.WithDetail("blockedHeader", header)
			break
		}
	}

	return corsErr
}

// isTimeout unwraps url.Error style timeouts that do not wrap
// context.DeadlineExceeded.
func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) {
		return timeoutErr.Timeout()
	}
	return false
}
