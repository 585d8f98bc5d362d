package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/queueaway/queueaway/internal/application/services"
)

// QueueHandler handles queue lifecycle requests
type QueueHandler struct {
	service *services.QueueService
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(service *services.QueueService) *QueueHandler {
	return &QueueHandler{service: service}
}

// CreateQueue handles POST /api/queues
func (h *QueueHandler) CreateQueue(w http.ResponseWriter, r *http.Request) {
	var payload services.CreateQueueParams
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	record, err := h.service.CreateQueue(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// JoinQueue handles POST /api/queues/{id}/join
func (h *QueueHandler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("id")
	if queueID == "" {
		respondWithError(w, http.StatusBadRequest, "queue ID is required")
		return
	}

	var payload services.JoinQueueParams
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	record, err := h.service.JoinQueue(r.Context(), queueID, payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// LeaveQueue handles DELETE /api/queues/{id}
func (h *QueueHandler) LeaveQueue(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("id")
	if queueID == "" {
		respondWithError(w, http.StatusBadRequest, "queue ID is required")
		return
	}

	if err := h.service.LeaveQueue(r.Context(), queueID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListQueues handles GET /api/queues
func (h *QueueHandler) ListQueues(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListQueues(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queues": records,
		"count":  len(records),
	})
}

// ShareQueue handles GET /api/queues/{id}/share
func (h *QueueHandler) ShareQueue(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("id")
	if queueID == "" {
		respondWithError(w, http.StatusBadRequest, "queue ID is required")
		return
	}

	text, err := h.service.ShareText(r.Context(), queueID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"queue_id": queueID,
		"text":     text,
	})
}
