package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationClass represents the urgency class of a queue alert
type NotificationClass string

const (
	// NotificationClassAlmostTurn fires when 1 or 2 people remain ahead.
	NotificationClassAlmostTurn NotificationClass = "almost_turn"

	// NotificationClassTurnNow fires when the user reaches the counter.
	NotificationClassTurnNow NotificationClass = "turn_now"
)

// Notification is a user-facing queue alert, delivered best-effort
// through every configured channel.
type Notification struct {
	ID           string            `json:"id" db:"id"`
	QueueID      string            `json:"queue_id" db:"queue_id"`
	BusinessName string            `json:"business_name" db:"business_name"`
	Class        NotificationClass `json:"class" db:"class"`
	Title        string            `json:"title" db:"title"`
	Body         string            `json:"body" db:"body"`
	Position     int               `json:"position" db:"position"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}

// NewAlmostTurnNotification builds the "almost your turn" alert for a
// joined record sitting at position 1 or 2.
func NewAlmostTurnNotification(record *QueueRecord) *Notification {
	return &Notification{
		ID:           uuid.New().String(),
		QueueID:      record.QueueID,
		BusinessName: record.BusinessName,
		Class:        NotificationClassAlmostTurn,
		Title:        fmt.Sprintf("Queue Update - %s", record.BusinessName),
		Body:         fmt.Sprintf("Almost your turn! %d people ahead", record.Position),
		Position:     record.Position,
		CreatedAt:    time.Now(),
	}
}

// NewTurnNowNotification builds the terminal "your turn now" alert.
func NewTurnNowNotification(record *QueueRecord) *Notification {
	return &Notification{
		ID:           uuid.New().String(),
		QueueID:      record.QueueID,
		BusinessName: record.BusinessName,
		Class:        NotificationClassTurnNow,
		Title:        fmt.Sprintf("Queue Update - %s", record.BusinessName),
		Body:         "Your turn is now! Head to the counter",
		Position:     0,
		CreatedAt:    time.Now(),
	}
}
