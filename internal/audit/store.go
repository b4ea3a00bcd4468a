// Package audit persists security events consumed from the event stream.
package audit

import (
	"context"

	"github.com/ostracon-app/ostracon/internal/events"
	"github.com/ostracon-app/ostracon/internal/messaging"
)

// Store defines the interface for persisting security events.
type Store interface {
	SaveSecurityEvent(ctx context.Context, event *events.SecurityEvent) error
}

// NewEventHandler returns a messaging handler that persists security events
// to the given store.
func NewEventHandler(store Store) messaging.Handler[events.SecurityEvent] {
	return func(ctx context.Context, event *events.SecurityEvent) error {
		return store.SaveSecurityEvent(ctx, event)
	}
}
