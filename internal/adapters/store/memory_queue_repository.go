package store

import (
	"context"
	"sync"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	apperrors "github.com/queueaway/queueaway/pkg/errors"
)

// MemoryQueueRepository implements the QueueRepository interface with
// an in-memory map. It is the authoritative store for the session;
// the persistence gateway mirrors it to durable storage. Records are
// stored and returned as clones so callers never share mutable state
// with the map.
type MemoryQueueRepository struct {
	mu      sync.RWMutex
	records map[string]*entities.QueueRecord
}

// NewMemoryQueueRepository creates an empty in-memory queue repository
func NewMemoryQueueRepository() *MemoryQueueRepository {
	return &MemoryQueueRepository{
		records: make(map[string]*entities.QueueRecord),
	}
}

// Put inserts or overwrites the record keyed by its QueueID. An
// existing ID is overwritten in place; a duplicate key is impossible.
func (r *MemoryQueueRepository) Put(ctx context.Context, record *entities.QueueRecord) error {
	if record == nil || record.QueueID == "" {
		return apperrors.NewValidationError("queue record requires a queue ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.QueueID] = record.Clone()
	return nil
}

// Get retrieves a record by queue ID
func (r *MemoryQueueRepository) Get(ctx context.Context, queueID string) (*entities.QueueRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[queueID]
	if !ok {
		return nil, apperrors.NewNotFoundError("queue record not found")
	}
	return record.Clone(), nil
}

// Delete removes a record; deleting an absent ID is a no-op
func (r *MemoryQueueRepository) Delete(ctx context.Context, queueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, queueID)
	return nil
}

// List retrieves all records
func (r *MemoryQueueRepository) List(ctx context.Context) ([]*entities.QueueRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entities.QueueRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record.Clone())
	}
	return records, nil
}

// Len returns the number of records
func (r *MemoryQueueRepository) Len(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

var _ repositories.QueueRepository = (*MemoryQueueRepository)(nil)
