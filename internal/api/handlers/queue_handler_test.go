package handlers_test

import (
	"context"
	"encoding/json"
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
	"github.com/queueaway/queueaway/internal/application/services"
	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
)

// mapStorage is a minimal in-memory StorageProvider double
type mapStorage struct {
	values map[string][]byte
}

func (m *mapStorage) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, providers.ErrKeyNotFound
	}
	return value, nil
}

func (m *mapStorage) Set(_ context.Context, key string, value []byte, _ int) error {
	m.values[key] = value
	return nil
}

func (m *mapStorage) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *mapStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

// newQueueStack builds a real in-memory service stack with zero
// simulated latency and a dormant scheduler.
func newQueueStack(t *testing.T) (*services.QueueService, *services.AssistantService) {
	return newStackWithStorageProvider(t, nil)
}

func newQueueStackWithStorage(t *testing.T) (*services.QueueService, *services.AssistantService) {
	return newStackWithStorageProvider(t, &mapStorage{values: make(map[string][]byte)})
}

func newStackWithStorageProvider(t *testing.T, storageProvider providers.StorageProvider) (*services.QueueService, *services.AssistantService) {
	t.Helper()
	rng := random.NewLockedSource(1)
	repo := store.NewMemoryQueueRepository()
	gateway := services.NewPersistenceGateway(repo, storageProvider)
	simulator := services.NewPositionSimulator(rng)
	dispatcher := services.NewNotificationDispatcher(nil, nil, nil)
	scheduler := services.NewTrackingScheduler(repo, simulator, gateway, dispatcher, nil, nil, time.Hour)
	t.Cleanup(scheduler.Stop)
	queueService := services.NewQueueService(repo, gateway, scheduler, simulator, services.NewIDGenerator(rng), nil, 0, 0)
	return queueService, services.NewAssistantService(queueService, rng)
}

func TestQueueHandler_CreateQueue(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	body := `{"business_name":"City Clinic","service_type":"Consultation"}`
	req := httptest.NewRequest("POST", "/api/queues", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateQueue(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var record entities.QueueRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&record))
	assert.Regexp(t, `^QA[A-Z0-9]{6}$`, record.QueueID)
	assert.Equal(t, entities.QueueRoleOwned, record.Role)
	assert.Equal(t, "City Clinic", record.BusinessName)
	assert.Equal(t, 1, record.CurrentToken)
}

func TestQueueHandler_CreateQueue_QuotaExceeded(t *testing.T) {
	// The quota flag lives in durable storage; without a storage
	// provider every create is the free one, so exercise the quota
	// through a stack that has storage.
	service, _ := newQueueStackWithStorage(t)
	handler := handlers.NewQueueHandler(service)

	first := httptest.NewRecorder()
	handler.CreateQueue(first, httptest.NewRequest("POST", "/api/queues", strings.NewReader("{}")))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	handler.CreateQueue(second, httptest.NewRequest("POST", "/api/queues", strings.NewReader("{}")))
	assert.Equal(t, http.StatusPaymentRequired, second.Code)
}

func TestQueueHandler_CreateQueue_EmptyBody(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	req := httptest.NewRequest("POST", "/api/queues", nil)
	w := httptest.NewRecorder()

	handler.CreateQueue(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var record entities.QueueRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&record))
	assert.Equal(t, "Sample Business", record.BusinessName)
}

func TestQueueHandler_JoinQueue(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	body := `{"user_name":"Asha"}`
	req := httptest.NewRequest("POST", "/api/queues/QA123456/join", strings.NewReader(body))
	req.SetPathValue("id", "QA123456")
	w := httptest.NewRecorder()

	handler.JoinQueue(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var record entities.QueueRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&record))
	assert.Equal(t, "QA123456", record.QueueID)
	assert.Equal(t, entities.QueueRoleJoined, record.Role)
	assert.Equal(t, "Asha", record.UserName)
	assert.Regexp(t, `^[A-Z]\d{3}$`, record.Token)
	assert.GreaterOrEqual(t, record.Position, 5)
	assert.LessOrEqual(t, record.Position, 20)
}

func TestQueueHandler_JoinQueue_Conflict(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	join := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/queues/QA123456/join", strings.NewReader("{}"))
		req.SetPathValue("id", "QA123456")
		w := httptest.NewRecorder()
		handler.JoinQueue(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, join().Code)
	assert.Equal(t, http.StatusConflict, join().Code)
}

func TestQueueHandler_LeaveQueue(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	joinReq := httptest.NewRequest("POST", "/api/queues/QA123456/join", strings.NewReader("{}"))
	joinReq.SetPathValue("id", "QA123456")
	handler.JoinQueue(httptest.NewRecorder(), joinReq)

	leave := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/api/queues/QA123456", nil)
		req.SetPathValue("id", "QA123456")
		w := httptest.NewRecorder()
		handler.LeaveQueue(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, leave().Code)
	// Leaving again is still a 204, the operation is idempotent.
	assert.Equal(t, http.StatusNoContent, leave().Code)
}

func TestQueueHandler_ListQueues(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	joinReq := httptest.NewRequest("POST", "/api/queues/QA123456/join", strings.NewReader("{}"))
	joinReq.SetPathValue("id", "QA123456")
	handler.JoinQueue(httptest.NewRecorder(), joinReq)

	w := httptest.NewRecorder()
	handler.ListQueues(w, httptest.NewRequest("GET", "/api/queues", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Queues []*entities.QueueRecord `json:"queues"`
		Count  int                     `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Len(t, response.Queues, 1)
}

func TestQueueHandler_ShareQueue_NotFound(t *testing.T) {
	service, _ := newQueueStack(t)
	handler := handlers.NewQueueHandler(service)

	req := httptest.NewRequest("GET", "/api/queues/QANOPE00/share", nil)
	req.SetPathValue("id", "QANOPE00")
	w := httptest.NewRecorder()

	handler.ShareQueue(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
