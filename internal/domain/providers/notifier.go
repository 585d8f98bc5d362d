package providers

import (
	"context"

	"github.com/queueaway/queueaway/internal/domain/entities"
)

// Notifier is a best-effort notification sink. The dispatcher fans a
// notification out to every configured notifier; a failure in one
// channel never blocks or fails the others.
type Notifier interface {
	// Name identifies the channel in logs ("in_app", "push")
	Name() string

	// Notify delivers a notification through this channel
	Notify(ctx context.Context, notification *entities.Notification) error
}
