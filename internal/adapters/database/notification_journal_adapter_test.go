package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/infrastructure/clients/postgres"
)

func setupJournal(t *testing.T) (*NotificationJournalAdapter, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	adapter := NewNotificationJournalAdapter(postgres.NewClientFromDB(mockDB))
	return adapter.(*NotificationJournalAdapter), mock
}

func TestNotificationJournalAdapter_Record(t *testing.T) {
	adapter, mock := setupJournal(t)

	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &entities.QueueRecord{
		QueueID:      "QAABC123",
		Role:         entities.QueueRoleJoined,
		BusinessName: "Sample Business",
		Position:     1,
	}
	err := adapter.Record(context.Background(), entities.NewAlmostTurnNotification(record))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationJournalAdapter_RecordNil(t *testing.T) {
	adapter, _ := setupJournal(t)

	err := adapter.Record(context.Background(), nil)
	assert.Error(t, err)
}

func TestNotificationJournalAdapter_ListRecent(t *testing.T) {
	adapter, mock := setupJournal(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "queue_id", "business_name", "class", "title", "body", "position", "created_at"}).
		AddRow("n-2", "QAABC123", "Sample Business", "turn_now", "Queue Update - Sample Business", "Your turn is now! Head to the counter", 0, now).
		AddRow("n-1", "QAABC123", "Sample Business", "almost_turn", "Queue Update - Sample Business", "Almost your turn! 2 people ahead", 2, now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT .* FROM "notifications"`).
		WillReturnRows(rows)

	notifications, err := adapter.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	assert.Equal(t, entities.NotificationClassTurnNow, notifications[0].Class)
	assert.Equal(t, entities.NotificationClassAlmostTurn, notifications[1].Class)
	assert.Equal(t, 2, notifications[1].Position)
	require.NoError(t, mock.ExpectationsWereMet())
}
