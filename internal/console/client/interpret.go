package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
)

// serverBody is the superset of envelope fields the backend is known to emit.
// Individual fields are optional; the interpreter reconciles whatever subset
// arrives into the canonical Envelope.
type serverBody struct {
	Success   *bool           `json:"success,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   json.RawMessage `json:"message,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// roleKeywords distinguish a role/permission denial from a general 403.
var roleKeywords = []string{"role", "permission", "privilege", "not allowed"}

// interpret inspects a completed response and either returns the canonical
// envelope (2xx) or a typed error (everything else). Failure is always an
// error; a "failed envelope" is never returned. A 401 on a protected endpoint
// triggers session invalidation before the error surfaces.
func (c *Client) interpret(ctx context.Context, path string, resp *http.Response, body []byte) (*api.RawEnvelope, error) {
	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.interpretSuccess(resp.StatusCode, isJSON, body)
	}

	return nil, c.interpretFailure(ctx, path, resp.StatusCode, isJSON, body)
}

func (c *Client) interpretSuccess(status int, isJSON bool, body []byte) (*api.RawEnvelope, error) {
	envelope := &api.RawEnvelope{
		Success:   true,
		Timestamp: time.Now(),
	}

	// Legitimate empty payloads (deletes, 204s) produce an envelope with no
	// data rather than an error.
	if len(body) == 0 {
		return envelope, nil
	}

	if !isJSON {
		envelope.Message = strings.TrimSpace(string(body))
		return envelope, nil
	}

	var parsed serverBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Arrays and scalars do not fit serverBody but are valid payloads.
		if json.Valid(body) {
			envelope.Data = json.RawMessage(body)
			return envelope, nil
		}
		return nil, api.NewError(500, api.CodeInvalidResponse,
			"server returned an unparsable response", err)
	}

	if parsed.Data != nil {
		envelope.Data = parsed.Data
	} else {
		envelope.Data = json.RawMessage(body)
	}
	if parsed.Timestamp != nil {
		envelope.Timestamp = *parsed.Timestamp
	}
	if msg := decodeMessage(parsed.Message); msg != "" {
		envelope.Message = msg
	}

	return envelope, nil
}

func (c *Client) interpretFailure(ctx context.Context, path string, status int, isJSON bool, body []byte) error {
	serverMsg := extractServerMessage(isJSON, body)
	if serverMsg == "" {
		serverMsg = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized && !IsAuthLifecycle(path):
		// Session expired on a protected endpoint: reset the session before
		// surfacing the error, and tag it so upstream callers do not trigger
		// invalidation a second time.
		if c.invalidator != nil {
			c.invalidator.Invalidate(ctx, "session expired")
		}
		return api.NewError(status, api.CodeTokenExpired,
			"Your session has expired. Please log in again.", nil).
			WithDetail("autoLogout", true)

	case status == http.StatusForbidden:
		msg := "Access denied. You do not have access to this resource."
		if containsRoleKeyword(serverMsg) {
			msg = "Access denied: your role does not have permission to perform this action."
		}
		return api.NewError(status, api.CodeHTTPError, msg, nil).
			WithDetail("serverMessage", serverMsg)

	case status == http.StatusConflict:
		// Conflict messages are typically uniqueness violations; keep them
		// verbatim so the user sees which field collided.
		return api.NewError(status, api.CodeHTTPError, serverMsg, nil)

	default:
		return api.NewError(status, api.CodeHTTPError, serverMsg, nil)
	}
}

// extractServerMessage pulls a human-readable message out of an error body,
// tolerating the message being a string, an array of validation messages, or
// nested under an error object.
func extractServerMessage(isJSON bool, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !isJSON {
		return strings.TrimSpace(string(body))
	}

	var parsed serverBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return strings.TrimSpace(string(body))
	}

	if msg := decodeMessage(parsed.Message); msg != "" {
		return msg
	}
	if msg := decodeErrorField(parsed.Error); msg != "" {
		return msg
	}
	return ""
}

// decodeMessage handles the validation-framework convention of returning
// either a single message string or an array of messages.
func decodeMessage(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, ", ")
	}

	return ""
}

// decodeErrorField handles `error` being either a bare string or an object
// with its own message.
func decodeErrorField(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Message
	}

	return ""
}

func containsRoleKeyword(msg string) bool {
	lower := strings.ToLower(msg)
	for _, keyword := range roleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
