package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
)

const streamHeartbeatInterval = 25 * time.Second

// StreamHandler pushes queue events to clients over Server-Sent Events
type StreamHandler struct {
	bus providers.EventBus
}

// NewStreamHandler creates a new stream handler. A nil bus disables
// streaming; the endpoints then report service unavailable.
func NewStreamHandler(bus providers.EventBus) *StreamHandler {
	return &StreamHandler{bus: bus}
}

// StreamQueueUpdates handles GET /api/stream/queues
func (h *StreamHandler) StreamQueueUpdates(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelQueueUpdates)
}

// StreamNotifications handles GET /api/stream/notifications
func (h *StreamHandler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelNotifications)
}

// StreamQueue handles GET /api/stream/queues/{id}, the queue-scoped
// update stream.
func (h *StreamHandler) StreamQueue(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("id")
	if queueID == "" {
		respondWithError(w, http.StatusBadRequest, "queue ID is required")
		return
	}
	h.stream(w, r, providers.GetQueueChannel(queueID))
}

func (h *StreamHandler) stream(w http.ResponseWriter, r *http.Request, channel string) {
	if h.bus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event streaming is not available")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, err := h.bus.Subscribe(r.Context(), channel)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe to events")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger := observability.LoggerFromContext(r.Context())
	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			// Comment line keeps intermediaries from timing out the stream.
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				logger.Warn().Err(err).Str("channel", channel).Msg("failed to encode stream event")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.EventType, data)
			flusher.Flush()
		}
	}
}
