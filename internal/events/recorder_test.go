package events_test

import (
	"errors"
	"testing"

	"github.com/ostracon-app/ostracon/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorder_Record(t *testing.T) {
	t.Run("stamps id and timestamp before publishing", func(t *testing.T) {
		var published *events.SecurityEvent

		recorder := events.NewRecorder(
			func(event *events.SecurityEvent) error {
				published = event

				return nil
			},
			func() string { return "event-1" },
			zap.NewNop(),
		)

		recorder.Record(&events.SecurityEvent{
			Type:   events.TypePinSet,
			UserID: "user-1",
		})

		require.NotNil(t, published)
		assert.Equal(t, "event-1", published.ID)
		assert.Equal(t, events.TypePinSet, published.Type)
		assert.False(t, published.OccurredAt.IsZero())
	})

	t.Run("keeps a pre-stamped id", func(t *testing.T) {
		var published *events.SecurityEvent

		recorder := events.NewRecorder(
			func(event *events.SecurityEvent) error {
				published = event

				return nil
			},
			func() string { return "generated" },
			zap.NewNop(),
		)

		recorder.Record(&events.SecurityEvent{
			ID:     "explicit",
			Type:   events.TypeAccountLocked,
			UserID: "user-1",
		})

		require.NotNil(t, published)
		assert.Equal(t, "explicit", published.ID)
	})

	t.Run("swallows publish errors", func(t *testing.T) {
		recorder := events.NewRecorder(
			func(_ *events.SecurityEvent) error { return errors.New("broker down") },
			func() string { return "event-1" },
			zap.NewNop(),
		)

		assert.NotPanics(t, func() {
			recorder.Record(&events.SecurityEvent{
				Type:   events.TypeUnlockFailed,
				UserID: "user-1",
			})
		})
	})
}
