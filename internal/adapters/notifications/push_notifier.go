package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/queueaway/queueaway/internal/domain/entities"
	"github.com/queueaway/queueaway/internal/domain/providers"
	"github.com/queueaway/queueaway/pkg/config"
)

// PushNotifier delivers system-level notifications through an HTTP
// push webhook. The channel is capability-gated: the notifier is only
// constructed when a webhook URL is configured, and a missing URL is
// the "permission not granted" state, not an error condition.
type PushNotifier struct {
	webhookURL string
	authToken  string
	httpClient *http.Client
}

// NewPushNotifier creates a new push notifier
func NewPushNotifier(cfg *config.NotificationsConfig) (*PushNotifier, error) {
	if cfg.PushWebhookURL == "" {
		return nil, fmt.Errorf("PUSH_WEBHOOK_URL must be set")
	}

	return &PushNotifier{
		webhookURL: cfg.PushWebhookURL,
		authToken:  cfg.PushAuthToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// pushMessage is the webhook payload
type pushMessage struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Tag     string `json:"tag"`
	QueueID string `json:"queue_id"`
}

// Name identifies the channel in logs
func (n *PushNotifier) Name() string {
	return "push"
}

// Notify posts the (title, body) pair to the configured webhook
func (n *PushNotifier) Notify(ctx context.Context, notification *entities.Notification) error {
	payload := pushMessage{
		Title:   notification.Title,
		Body:    notification.Body,
		Tag:     "queue-update",
		QueueID: notification.QueueID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.authToken)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

var _ providers.Notifier = (*PushNotifier)(nil)
