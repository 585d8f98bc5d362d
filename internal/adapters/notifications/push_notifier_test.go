package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/pkg/config"
)

func TestNewPushNotifier_RequiresWebhookURL(t *testing.T) {
	_, err := NewPushNotifier(&config.NotificationsConfig{})
	assert.Error(t, err, "missing webhook URL means the channel is not enabled")
}

func TestPushNotifier_Notify(t *testing.T) {
	var received pushMessage
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := NewPushNotifier(&config.NotificationsConfig{
		PushWebhookURL: server.URL,
		PushAuthToken:  "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "push", notifier.Name())

	record := &entities.QueueRecord{
		QueueID:      "QAABC123",
		Role:         entities.QueueRoleJoined,
		BusinessName: "Sample Business",
		Position:     2,
	}
	err = notifier.Notify(context.Background(), entities.NewAlmostTurnNotification(record))
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "Queue Update - Sample Business", received.Title)
	assert.Equal(t, "Almost your turn! 2 people ahead", received.Body)
	assert.Equal(t, "queue-update", received.Tag)
	assert.Equal(t, "QAABC123", received.QueueID)
}

func TestPushNotifier_NotifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier, err := NewPushNotifier(&config.NotificationsConfig{PushWebhookURL: server.URL})
	require.NoError(t, err)

	record := &entities.QueueRecord{QueueID: "QAABC123", BusinessName: "Sample Business"}
	err = notifier.Notify(context.Background(), entities.NewTurnNowNotification(record))
	assert.Error(t, err)
}
