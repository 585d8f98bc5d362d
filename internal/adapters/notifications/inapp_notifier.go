package notifications

import (
	"context"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
)

// InAppNotifier delivers notifications to the UI layer by publishing
// a notification-raised event on the event bus; the SSE stream relays
// it to connected clients.
type InAppNotifier struct {
	bus providers.EventBus
}

// NewInAppNotifier creates a new in-app notifier
func NewInAppNotifier(bus providers.EventBus) *InAppNotifier {
	return &InAppNotifier{bus: bus}
}

// Name identifies the channel in logs
func (n *InAppNotifier) Name() string {
	return "in_app"
}

// Notify publishes the notification on the in-app event channel
func (n *InAppNotifier) Notify(ctx context.Context, notification *entities.Notification) error {
	event := entities.NewQueueEvent(
		notification.QueueID,
		entities.QueueEventTypeNotificationRaised,
		map[string]interface{}{
			"notification": notification,
		},
	)
	return n.bus.Publish(ctx, providers.EventChannelNotifications, event)
}

var _ providers.Notifier = (*InAppNotifier)(nil)
