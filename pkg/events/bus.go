package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	gookitEvent "github.com/gookit/event"

	applogger "github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/logger"
)

// gookitEventBus implements EventBus using gookit/event as the underlying implementation
type gookitEventBus struct {
	manager     *gookitEvent.Manager
	logger      *applogger.Logger
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	closed      bool
}

// NewGookitEventBus creates a new event bus using gookit/event
func NewGookitEventBus(logger *applogger.Logger) EventBus {
	return &gookitEventBus{
		manager:     gookitEvent.NewManager("console"),
		logger:      logger,
		subscribers: make(map[string][]EventHandler),
	}
}

// Publish publishes an event to the bus
func (b *gookitEventBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	b.mu.RUnlock()

	b.logger.WithContext(ctx).Debug("publishing event",
		slog.String("type", event.Type()),
		slog.String("id", event.ID()))

	err, _ := b.manager.Fire(event.Type(), gookitEvent.M{"payload": event})
	if err != nil {
		b.logger.ErrorCtx(ctx, "failed to publish event", err,
			slog.String("type", event.Type()),
			slog.String("id", event.ID()))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe registers a handler for events of a specific type
func (b *gookitEventBus) Subscribe(eventType string, handler EventHandler) (UnsubscribeFunc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("event bus is closed")
	}

	listener := gookitEvent.ListenerFunc(func(e gookitEvent.Event) error {
		if payload, ok := e.Get("payload").(Event); ok {
			return handler(context.Background(), payload)
		}
		return fmt.Errorf("invalid event payload: %T", e.Get("payload"))
	})

	b.manager.On(eventType, listener, gookitEvent.Normal)
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)

	unsubscribe := func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		handlers := b.subscribers[eventType]
		for i, h := range handlers {
			if fmt.Sprintf("%p", h) == fmt.Sprintf("%p", handler) {
				b.subscribers[eventType] = append(handlers[:i], handlers[i+1:]...)
				break
			}
		}
		return nil
	}

	return unsubscribe, nil
}

// Close gracefully shuts down the event bus
func (b *gookitEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.subscribers = make(map[string][]EventHandler)
	b.manager.Clear()
	b.closed = true
	return nil
}

// BaseEvent provides a common implementation of the Event interface
type BaseEvent struct {
	id        string
	eventType string
	timestamp time.Time
	metadata  map[string]interface{}
}

// NewBaseEvent creates a new base event
func NewBaseEvent(eventType string, metadata map[string]interface{}) *BaseEvent {
	return &BaseEvent{
		id:        uuid.New().String(),
		eventType: eventType,
		timestamp: time.Now(),
		metadata:  metadata,
	}
}

// Type returns the event type
func (e *BaseEvent) Type() string {
	return e.eventType
}

// Timestamp returns the event timestamp
func (e *BaseEvent) Timestamp() time.Time {
	return e.timestamp
}

// Metadata returns the event metadata
func (e *BaseEvent) Metadata() map[string]interface{} {
	if e.metadata == nil {
		return make(map[string]interface{})
	}
	return e.metadata
}

// ID returns the event ID
func (e *BaseEvent) ID() string {
	return e.id
}
