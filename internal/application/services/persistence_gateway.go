package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
)

const (
	recordsStorageKey       = "queueaway:records"
	freeQueueUsedStorageKey = "queueaway:free_queue_created"
)

// PersistenceGateway mirrors the in-memory queue records to durable
// storage as a single JSON document, and holds the one-free-queue flag.
// Storage failure never fails an operation: the session simply loses
// durability, which is logged and tolerated. A nil storage provider
// puts the gateway in pure in-memory mode.
type PersistenceGateway struct {
	repo    repositories.QueueRepository
	storage providers.StorageProvider
}

// NewPersistenceGateway creates a new persistence gateway
func NewPersistenceGateway(repo repositories.QueueRepository, storage providers.StorageProvider) *PersistenceGateway {
	return &PersistenceGateway{repo: repo, storage: storage}
}

// SaveAll snapshots every tracked record into storage. Failures are
// downgraded to warnings.
func (g *PersistenceGateway) SaveAll(ctx context.Context) {
	if g.storage == nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)

	records, err := g.repo.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list records for snapshot")
		return
	}

	snapshot := make(map[string]*entities.QueueRecord, len(records))
	for _, record := range records {
		snapshot[record.QueueID] = record
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to encode queue snapshot")
		return
	}

	if err := g.storage.Set(ctx, recordsStorageKey, data, 0); err != nil {
		logger.Warn().Err(err).Msg("failed to persist queue snapshot")
	}
}

// LoadAll restores the last snapshot into the repository and returns
// the number of records recovered. Missing or malformed state yields an
// empty repository, never an error: a corrupt snapshot is discarded.
func (g *PersistenceGateway) LoadAll(ctx context.Context) int {
	if g.storage == nil {
		return 0
	}
	logger := observability.LoggerFromContext(ctx)

	data, err := g.storage.Get(ctx, recordsStorageKey)
	if err != nil {
		if !errors.Is(err, providers.ErrKeyNotFound) {
			logger.Warn().Err(err).Msg("failed to read queue snapshot, starting empty")
		}
		return 0
	}

	var snapshot map[string]*entities.QueueRecord
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn().Err(err).Msg("discarding malformed queue snapshot")
		return 0
	}

	loaded := 0
	for queueID, record := range snapshot {
		if record == nil || queueID == "" {
			continue
		}
		record.QueueID = queueID
		if err := g.repo.Put(ctx, record); err != nil {
			logger.Warn().Err(err).Str("queue_id", queueID).Msg("skipping unrecoverable record")
			continue
		}
		loaded++
	}
	return loaded
}

// FreeQueueUsed reports whether the free queue allowance has been
// consumed. Storage errors fail open so a degraded session can still
// create its queue.
func (g *PersistenceGateway) FreeQueueUsed(ctx context.Context) bool {
	if g.storage == nil {
		return false
	}
	used, err := g.storage.Exists(ctx, freeQueueUsedStorageKey)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to read free queue flag")
		return false
	}
	return used
}

// MarkFreeQueueUsed consumes the free queue allowance
func (g *PersistenceGateway) MarkFreeQueueUsed(ctx context.Context) {
	if g.storage == nil {
		return
	}
	if err := g.storage.Set(ctx, freeQueueUsedStorageKey, []byte("true"), 0); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to persist free queue flag")
	}
}
