package routes

import (
	"net/http"

	"github.com/queueaway/queueaway/internal/api/handlers"
	"github.com/queueaway/queueaway/internal/api/middleware"
	"github.com/queueaway/queueaway/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	queueHandler        *handlers.QueueHandler
	assistantHandler    *handlers.AssistantHandler
	notificationHandler *handlers.NotificationHandler
	streamHandler       *handlers.StreamHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	queueHandler *handlers.QueueHandler,
	assistantHandler *handlers.AssistantHandler,
	notificationHandler *handlers.NotificationHandler,
	streamHandler *handlers.StreamHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		queueHandler:        queueHandler,
		assistantHandler:    assistantHandler,
		notificationHandler: notificationHandler,
		streamHandler:       streamHandler,

		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Queue lifecycle endpoints
	r.mux.HandleFunc("POST /api/queues", r.queueHandler.CreateQueue)
	r.mux.HandleFunc("GET /api/queues", r.queueHandler.ListQueues)
	r.mux.HandleFunc("POST /api/queues/{id}/join", r.queueHandler.JoinQueue)
	r.mux.HandleFunc("DELETE /api/queues/{id}", r.queueHandler.LeaveQueue)
	r.mux.HandleFunc("GET /api/queues/{id}/share", r.queueHandler.ShareQueue)

	// Notification history
	r.mux.HandleFunc("GET /api/notifications", r.notificationHandler.ListNotifications)

	// Chat assistant endpoint
	r.mux.HandleFunc("POST /api/assistant/message", r.assistantHandler.Message)

	// Real-time streams
	r.mux.HandleFunc("GET /api/stream/queues", r.streamHandler.StreamQueueUpdates)
	r.mux.HandleFunc("GET /api/stream/queues/{id}", r.streamHandler.StreamQueue)
	r.mux.HandleFunc("GET /api/stream/notifications", r.streamHandler.StreamNotifications)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflight requests never hit the mux
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
