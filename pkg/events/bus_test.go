package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/logger"
)

func TestGookitEventBus_DeliversTypedPayload(t *testing.T) {
	bus := NewGookitEventBus(logger.NewDevelopment("test"))
	defer bus.Close()

	var gotPath string
	var gotReason string

	_, err := bus.Subscribe(TypeNavigationReplace, func(_ context.Context, event Event) error {
		nav, ok := event.(*NavigationReplace)
		require.True(t, ok, "subscriber receives the concrete event, got %T", event)
		gotPath = nav.Path
		return nil
	})
	require.NoError(t, err)

	_, err = bus.Subscribe(TypeSessionInvalidated, func(_ context.Context, event Event) error {
		if inv, ok := event.(*SessionInvalidated); ok {
			gotReason = inv.Reason
		}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), NewSessionInvalidated("token expired")))
	require.NoError(t, bus.Publish(context.Background(), NewNavigationReplace("/login")))

	assert.Equal(t, "/login", gotPath)
	assert.Equal(t, "token expired", gotReason)
}

func TestGookitEventBus_ClosedBusRejectsPublish(t *testing.T) {
	bus := NewGookitEventBus(logger.NewDevelopment("test"))
	require.NoError(t, bus.Close())

	assert.Error(t, bus.Publish(context.Background(), NewNavigationReplace("/login")))
	_, err := bus.Subscribe(TypeNavigationReplace, func(context.Context, Event) error { return nil })
	assert.Error(t, err)
}
