package admin

import (
	"context"

	"github.com/gadgetstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityLogHandler subscribes to all domain events and writes them to the
// structured log as an audit trail.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new activity log handler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityLogHandler{logger: logger}
}

// EventTypes returns an empty slice so the handler receives every event
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event
func (h *ActivityLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("Domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}
