package repositories

import (
	"context"

	"github.com/queueaway/queueaway/internal/domain/entities"
)

// QueueRepository defines the interface for queue record operations.
// It is the sole authoritative source of queue state during a session;
// durable storage only mirrors it.
type QueueRepository interface {
	// Put inserts or overwrites the record keyed by its QueueID
	Put(ctx context.Context, record *entities.QueueRecord) error

	// Get retrieves a record by queue ID
	Get(ctx context.Context, queueID string) (*entities.QueueRecord, error)

	// Delete removes a record; deleting an absent ID is a no-op
	Delete(ctx context.Context, queueID string) error

	// List retrieves all records
	List(ctx context.Context) ([]*entities.QueueRecord, error)

	// Len returns the number of records
	Len(ctx context.Context) (int, error)
}
