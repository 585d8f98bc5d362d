package providers

import (
	"context"

	"github.com/queueaway/queueaway/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// queue events. It is the subscription point the UI layer observes for
// "record changed" and "notification raised" updates.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.QueueEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueueEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for the different event streams
const (
	// EventChannelQueueUpdates carries record created/updated/removed events
	EventChannelQueueUpdates = "queues:updates"

	// EventChannelNotifications carries notification-raised events
	EventChannelNotifications = "queues:notifications"

	// EventChannelQueuePrefix is the prefix for queue-specific channels
	EventChannelQueuePrefix = "queue:"
)

// GetQueueChannel returns the channel name for a specific queue
func GetQueueChannel(queueID string) string {
	return EventChannelQueuePrefix + queueID
}
