package events

import (
	"context"
	"time"
)

// Event represents a generic event in the system
type Event interface {
	// Type returns the event type identifier (e.g., "session.invalidated")
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// Metadata returns additional context-specific data
	Metadata() map[string]interface{}
	// ID returns a unique identifier for this event
	ID() string
}

// EventHandler processes events of a specific type
type EventHandler func(ctx context.Context, event Event) error

// UnsubscribeFunc is a function that can be called to unsubscribe from events
type UnsubscribeFunc func() error

// EventBus provides a generic interface for publishing and subscribing to events
type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType string, handler EventHandler) (UnsubscribeFunc, error)
	Close() error
}

// Well-known event types published by the session layer. The UI shell (or the
// CLI) subscribes to these; core code never performs navigation itself.
const (
	TypeSessionInvalidated = "session.invalidated"
	TypeNavigationReplace  = "navigation.replace"
)

// SessionInvalidated is published after credential and tenant state is cleared.
type SessionInvalidated struct {
	*BaseEvent
	Reason string
}

// NewSessionInvalidated creates a session invalidation event
func NewSessionInvalidated(reason string) *SessionInvalidated {
	return &SessionInvalidated{
		BaseEvent: NewBaseEvent(TypeSessionInvalidated, map[string]interface{}{"reason": reason}),
		Reason:    reason,
	}
}

// NavigationReplace asks the outer shell to replace the current location with
// Path. A full replace, not a client-side transition: all in-memory state is
// expected to be discarded.
type NavigationReplace struct {
	*BaseEvent
	Path string
}

// NewNavigationReplace creates a navigation effect event
func NewNavigationReplace(path string) *NavigationReplace {
	return &NavigationReplace{
		BaseEvent: NewBaseEvent(TypeNavigationReplace, map[string]interface{}{"path": path}),
		Path:      path,
	}
}
