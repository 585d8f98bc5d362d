package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/repositories"
	"github.com/queueaway/queueaway/internal/infrastructure/clients/postgres"
	apperrors "github.com/queueaway/queueaway/pkg/errors"
)

// NotificationJournalAdapter implements notification history persistence
// in Postgres.
type NotificationJournalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNotificationJournalAdapter creates a new notification journal adapter.
func NewNotificationJournalAdapter(client *postgres.Client) repositories.NotificationJournal {
	return &NotificationJournalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Record inserts a dispatched notification.
func (a *NotificationJournalAdapter) Record(ctx context.Context, notification *entities.Notification) error {
	if notification == nil {
		return apperrors.NewInternalError("notification is nil", fmt.Errorf("notification is nil"))
	}

	record := goqu.Record{
		"id":            notification.ID,
		"queue_id":      notification.QueueID,
		"business_name": notification.BusinessName,
		"class":         string(notification.Class),
		"title":         notification.Title,
		"body":          notification.Body,
		"position":      notification.Position,
		"created_at":    notification.CreatedAt,
	}

	query, args, err := a.db.Insert("notifications").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record notification", err)
	}

	return nil
}

// ListRecent retrieves the most recently dispatched notifications.
func (a *NotificationJournalAdapter) ListRecent(ctx context.Context, limit int) ([]*entities.Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := a.db.From("notifications").
		Select("id", "queue_id", "business_name", "class", "title", "body", "position", "created_at").
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build notification list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer rows.Close()

	var notifications []*entities.Notification
	for rows.Next() {
		var n entities.Notification
		var class string
		if err := rows.Scan(&n.ID, &n.QueueID, &n.BusinessName, &class, &n.Title, &n.Body, &n.Position, &n.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan notification row", err)
		}
		n.Class = entities.NotificationClass(class)
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate notification rows", err)
	}

	return notifications, nil
}
