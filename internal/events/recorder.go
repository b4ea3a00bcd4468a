package events

import (
	"time"

	"github.com/ostracon-app/ostracon/internal/messaging"
	"go.uber.org/zap"
)

// Recorder publishes security events. Publishing is best-effort: a failed
// publish is logged and never fails the request that produced the event.
type Recorder struct {
	publish messaging.Publish[SecurityEvent]
	newID   func() string
	logger  *zap.Logger
}

// NewRecorder creates a new event recorder. newID generates event ids.
func NewRecorder(publish messaging.Publish[SecurityEvent], newID func() string, logger *zap.Logger) *Recorder {
	return &Recorder{
		publish: publish,
		newID:   newID,
		logger:  logger,
	}
}

// Record stamps and publishes a security event.
func (r *Recorder) Record(event *SecurityEvent) {
	if event.ID == "" {
		event.ID = r.newID()
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := r.publish(event); err != nil {
		r.logger.Error("failed to publish security event",
			zap.String("type", string(event.Type)),
			zap.String("userId", event.UserID),
			zap.Error(err),
		)
	}
}
