package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueaway/queueaway/internal/domain/entities"
	apperrors "github.com/queueaway/queueaway/pkg/errors"
)

func TestMemoryQueueRepository_PutOverwritesSameID(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	first := &entities.QueueRecord{QueueID: "QAABC123", Role: entities.QueueRoleJoined, Position: 7}
	require.NoError(t, repo.Put(ctx, first))

	second := &entities.QueueRecord{QueueID: "QAABC123", Role: entities.QueueRoleJoined, Position: 6}
	require.NoError(t, repo.Put(ctx, second))

	n, err := repo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "same ID must overwrite, never duplicate")

	got, err := repo.Get(ctx, "QAABC123")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Position)
}

func TestMemoryQueueRepository_PutRejectsEmptyID(t *testing.T) {
	repo := NewMemoryQueueRepository()

	err := repo.Put(context.Background(), &entities.QueueRecord{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestMemoryQueueRepository_GetAbsent(t *testing.T) {
	repo := NewMemoryQueueRepository()

	_, err := repo.Get(context.Background(), "QAXXXXXX")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestMemoryQueueRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &entities.QueueRecord{QueueID: "QAABC123"}))
	require.NoError(t, repo.Delete(ctx, "QAABC123"))
	require.NoError(t, repo.Delete(ctx, "QAABC123"), "second delete must be a no-op")

	n, err := repo.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryQueueRepository_ReturnsClones(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &entities.QueueRecord{QueueID: "QAABC123", Position: 5}))

	got, err := repo.Get(ctx, "QAABC123")
	require.NoError(t, err)
	got.Position = 1

	again, err := repo.Get(ctx, "QAABC123")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Position, "mutating a returned record must not touch the store")
}

func TestMemoryQueueRepository_List(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	ids := []string{"QAAAAAAA", "QABBBBBB", "QACCCCCC"}
	for _, id := range ids {
		require.NoError(t, repo.Put(ctx, &entities.QueueRecord{QueueID: id}))
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	seen := make(map[string]bool)
	for _, record := range records {
		seen[record.QueueID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id])
	}
}
