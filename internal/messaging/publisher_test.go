package messaging_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ostracon-app/ostracon/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	byTopic    map[string][]*message.Message
	publishErr error
	closed     bool
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{byTopic: make(map[string][]*message.Message)}
}

func (s *stubPublisher) Publish(topic string, messages ...*message.Message) error {
	if s.publishErr != nil {
		return s.publishErr
	}

	s.byTopic[topic] = append(s.byTopic[topic], messages...)

	return nil
}

func (s *stubPublisher) Close() error {
	s.closed = true

	return nil
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("serializes the event onto its topic", func(t *testing.T) {
		pub := newStubPublisher()
		publish := messaging.NewPublishFunc[auditEntry](pub, "audit.entries")

		require.NoError(t, publish(&auditEntry{ID: "1", Name: "hello"}))

		require.Len(t, pub.byTopic["audit.entries"], 1)

		var got auditEntry

		require.NoError(t, json.Unmarshal(pub.byTopic["audit.entries"][0].Payload, &got))
		assert.Equal(t, auditEntry{ID: "1", Name: "hello"}, got)
	})

	t.Run("returns broker errors to the caller", func(t *testing.T) {
		pub := newStubPublisher()
		pub.publishErr = errors.New("broker down")

		publish := messaging.NewPublishFunc[auditEntry](pub, "audit.entries")

		assert.Error(t, publish(&auditEntry{ID: "1"}))
	})
}

func TestPublisherGroup(t *testing.T) {
	pub := newStubPublisher()
	group := messaging.NewPublisherGroup(pub)

	assert.Equal(t, pub, group.Publisher())

	require.NoError(t, group.Shutdown())
	assert.True(t, pub.closed)
}
