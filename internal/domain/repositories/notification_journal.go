package repositories

import (
	"context"

	"github.com/queueaway/queueaway/internal/domain/entities"
)

// NotificationJournal defines the interface for the dispatched
// notification history. Writes are fire-and-forget from the
// dispatcher's point of view; a journal failure is logged, never
// propagated.
type NotificationJournal interface {
	// Record stores a dispatched notification
	Record(ctx context.Context, notification *entities.Notification) error

	// ListRecent retrieves the most recently dispatched notifications
	ListRecent(ctx context.Context, limit int) ([]*entities.Notification, error)
}
