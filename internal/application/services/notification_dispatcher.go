package services

import (
	"context"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
)

// NotificationDispatcher classifies position transitions and fans the
// resulting notification out to every registered channel. Delivery is
// best effort per channel: one channel failing never blocks the others,
// and never fails the tick that triggered it.
type NotificationDispatcher struct {
	notifiers []providers.Notifier
	journal   repositories.NotificationJournal
	metrics   *observability.Metrics
}

// NewNotificationDispatcher creates a new dispatcher. The journal and
// metrics may be nil when the service runs without Postgres or OTEL.
func NewNotificationDispatcher(
	notifiers []providers.Notifier,
	journal repositories.NotificationJournal,
	metrics *observability.Metrics,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifiers: notifiers,
		journal:   journal,
		metrics:   metrics,
	}
}

// Dispatch inspects a position transition and, when the new position
// crosses a threshold, raises the matching notification. It returns the
// notification that was raised, or nil when the transition is below the
// alert thresholds.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, previousPosition int, record *entities.QueueRecord) *entities.Notification {
	if record == nil || record.Position == previousPosition {
		return nil
	}

	var notification *entities.Notification
	switch {
	case record.Position > 2:
		return nil
	case record.Position >= 1:
		notification = entities.NewAlmostTurnNotification(record)
	default:
		notification = entities.NewTurnNowNotification(record)
	}

	logger := observability.LoggerFromContext(ctx)

	for _, notifier := range d.notifiers {
		if err := notifier.Notify(ctx, notification); err != nil {
			logger.Warn().
				Err(err).
				Str("channel", notifier.Name()).
				Str("queue_id", record.QueueID).
				Msg("notification delivery failed")
			continue
		}
		observability.RecordNotificationMetric(ctx, d.metrics, string(notification.Class), notifier.Name())
	}

	if d.journal != nil {
		if err := d.journal.Record(ctx, notification); err != nil {
			logger.Warn().
				Err(err).
				Str("queue_id", record.QueueID).
				Msg("failed to journal notification")
		}
	}

	return notification
}
