package api

import (
	"errors"
	"fmt"
)

// ErrorCode classifies API failures for callers that need to branch on the
// failure mode rather than parse messages.
type ErrorCode string

const (
	CodeTimeout         ErrorCode = "TIMEOUT"
	CodeNetworkError    ErrorCode = "NETWORK_ERROR"
	CodeCORSError       ErrorCode = "CORS_ERROR"
	CodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
	CodeTokenExpired    ErrorCode = "TOKEN_EXPIRED"
	CodeRetryFailed     ErrorCode = "RETRY_FAILED"
	CodeHTTPError       ErrorCode = "HTTP_ERROR"
)

// Error is the single error type surfaced for any failed API call, whether the
// failure happened on the wire, in the transport, or as a non-2xx status.
// StatusCode is 0 for transport-layer failures that never reached the server.
type Error struct {
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode"`
	Code       ErrorCode      `json:"errorCode"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error [%d] %s: %s: %v", e.StatusCode, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("api error [%d] %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new API error. An empty message is replaced so the
// invariant "every error has a non-empty message" holds even for bare
// transport failures.
func NewError(statusCode int, code ErrorCode, message string, err error) *Error {
	if message == "" {
		message = "request failed"
	}
	return &Error{
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
		Err:        err,
	}
}

// WithDetail attaches a diagnostic detail and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Detail returns a named detail, or nil when absent.
func (e *Error) Detail(key string) any {
	if e.Details == nil {
		return nil
	}
	return e.Details[key]
}

// Retryable reports whether the failure is transient: transport-level faults
// and server errors (>=500 or 408). Caller/data errors (other 4xx) are not.
func (e *Error) Retryable() bool {
	switch e.Code {
	case CodeTimeout, CodeNetworkError, CodeCORSError:
		return true
	}
	return e.StatusCode >= 500 || e.StatusCode == 408
}

// AsError unwraps err into an *Error if one is anywhere in its chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
