package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueaway/queueaway/internal/adapters/random"
	"github.com/queueaway/queueaway/internal/adapters/store"
	"github.com/queueaway/queueaway/internal/api/handlers"
	"github.com/queueaway/queueaway/internal/api/routes"
	"github.com/queueaway/queueaway/internal/application/services"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	rng := random.NewLockedSource(7)
	repo := store.NewMemoryQueueRepository()
	gateway := services.NewPersistenceGateway(repo, nil)
	simulator := services.NewPositionSimulator(rng)
	dispatcher := services.NewNotificationDispatcher(nil, nil, nil)
	scheduler := services.NewTrackingScheduler(repo, simulator, gateway, dispatcher, nil, nil, time.Hour)
	t.Cleanup(scheduler.Stop)
	queueService := services.NewQueueService(repo, gateway, scheduler, simulator, services.NewIDGenerator(rng), nil, 0, 0)
	assistantService := services.NewAssistantService(queueService, rng)

	router := routes.NewRouter(
		handlers.NewQueueHandler(queueService),
		handlers.NewAssistantHandler(assistantService),
		handlers.NewNotificationHandler(nil),
		handlers.NewStreamHandler(nil),
		[]string{"*"},
		nil,
	)
	return router.SetupRoutes()
}

func TestRouter_Health(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_QueueLifecycle(t *testing.T) {
	handler := newTestHandler(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, do("POST", "/api/queues/QA123456/join", `{"user_name":"Asha"}`).Code)
	assert.Equal(t, http.StatusConflict, do("POST", "/api/queues/QA123456/join", "{}").Code)

	list := do("GET", "/api/queues", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"QA123456"`)

	share := do("GET", "/api/queues/QA123456/share", "")
	require.Equal(t, http.StatusOK, share.Code)
	assert.Contains(t, share.Body.String(), "QueueAway")

	assert.Equal(t, http.StatusNoContent, do("DELETE", "/api/queues/QA123456", "").Code)
	assert.Equal(t, http.StatusNoContent, do("DELETE", "/api/queues/QA123456", "").Code)
}

func TestRouter_AssistantMessage(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/assistant/message", strings.NewReader(`{"message":"help"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reply")
}

func TestRouter_CORSPreflight(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("OPTIONS", "/api/queues", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_StreamUnavailableWithoutBus(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/stream/queues", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
