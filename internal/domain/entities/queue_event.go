package entities

import (
	"time"

	"github.com/google/uuid"
)

// QueueEventType represents the type of queue event
type QueueEventType string

const (
	QueueEventTypeRecordCreated      QueueEventType = "record_created"
	QueueEventTypeRecordUpdated      QueueEventType = "record_updated"
	QueueEventTypeRecordRemoved      QueueEventType = "record_removed"
	QueueEventTypeNotificationRaised QueueEventType = "notification_raised"
)

// QueueEvent represents a real-time update event for a queue record.
// Subscribers (the UI stream, the chat assistant) consume these to
// refresh their view of the user's queues.
type QueueEvent struct {
	ID            string                 `json:"id"`
	QueueID       string                 `json:"queue_id"`
	EventType     QueueEventType         `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields,omitempty"`
}

// NewQueueEvent creates a new queue event
func NewQueueEvent(queueID string, eventType QueueEventType, changedFields map[string]interface{}) *QueueEvent {
	return &QueueEvent{
		ID:            uuid.New().String(),
		QueueID:       queueID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}
