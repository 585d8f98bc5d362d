package handlers

import (
	"net/http"
	"strconv"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/repositories"
)

const defaultNotificationLimit = 50

// NotificationHandler serves the notification history
type NotificationHandler struct {
	journal repositories.NotificationJournal
}

// NewNotificationHandler creates a new notification handler. The
// journal may be nil when the service runs without a database; history
// is then always empty.
func NewNotificationHandler(journal repositories.NotificationJournal) *NotificationHandler {
	return &NotificationHandler{journal: journal}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	notifications := []*entities.Notification{}
	if h.journal != nil {
		result, err := h.journal.ListRecent(r.Context(), limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load notifications")
			return
		}
		notifications = result
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}
