package api

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical response wrapper every domain operation consumes.
// It is constructed once per call by the response interpreter; callers never
// see the raw backend body shape.
type Envelope[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RawEnvelope is an Envelope whose payload has not been decoded yet.
// Resource services hand Data to the normalization layer.
type RawEnvelope = Envelope[json.RawMessage]

// Meta carries pagination metadata from paged backend envelopes.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
