package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ostracon-app/ostracon/internal/audit"
	"github.com/ostracon-app/ostracon/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	saved   []*events.SecurityEvent
	saveErr error
}

func (m *mockStore) SaveSecurityEvent(_ context.Context, event *events.SecurityEvent) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = append(m.saved, event)

	return nil
}

func TestNewEventHandler(t *testing.T) {
	t.Run("persists events to the store", func(t *testing.T) {
		store := &mockStore{}
		handler := audit.NewEventHandler(store)

		event := &events.SecurityEvent{
			ID:     "event-1",
			Type:   events.TypeUnlockSucceeded,
			UserID: "user-1",
		}

		err := handler(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, store.saved, 1)
		assert.Equal(t, event, store.saved[0])
	})

	t.Run("propagates store errors so the message is redelivered", func(t *testing.T) {
		store := &mockStore{saveErr: errors.New("db down")}
		handler := audit.NewEventHandler(store)

		err := handler(context.Background(), &events.SecurityEvent{ID: "event-1"})

		assert.Error(t, err)
	})
}

func TestNoop(t *testing.T) {
	t.Run("accepts events without persisting", func(t *testing.T) {
		store := audit.NewNoop(zap.NewNop())

		err := store.SaveSecurityEvent(context.Background(), &events.SecurityEvent{
			ID:     "event-1",
			Type:   events.TypePinRemoved,
			UserID: "user-1",
		})

		assert.NoError(t, err)
	})
}
