package audit

import (
	"context"

	"github.com/ostracon-app/ostracon/internal/events"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of Store that only logs events. Used when
// no database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op audit store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveSecurityEvent(_ context.Context, event *events.SecurityEvent) error {
	n.logger.Info("security event received",
		zap.String("id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("userId", event.UserID),
		zap.Time("occurredAt", event.OccurredAt),
	)

	return nil
}

// Compile-time check.
var _ Store = (*Noop)(nil)
