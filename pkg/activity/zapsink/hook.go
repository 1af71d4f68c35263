// Package zapsink bridges activity events to a zap logger.
package zapsink

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-symbol/pkg/activity"
)

// Hook emits one structured log line per activity event. Rejections log at
// warn, everything else at debug.
type Hook struct {
	logger *zap.Logger
}

// New constructs a Hook writing to logger.
func New(logger *zap.Logger) (*Hook, error) {
	if logger == nil {
		return nil, errors.New("zapsink: logger must not be nil")
	}
	return &Hook{logger: logger}, nil
}

// Notify implements activity.Hook.
func (h *Hook) Notify(_ context.Context, event activity.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("kind", event.Kind),
		zap.String("text", event.Text),
		zap.Int64("liveness", event.Liveness),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}
	for key, value := range event.Metadata {
		fields = append(fields, zap.Any(key, value))
	}

	switch event.Verb {
	case activity.VerbRejected:
		h.logger.Warn(event.Verb, fields...)
	default:
		h.logger.Debug(event.Verb, fields...)
	}
	return nil
}
