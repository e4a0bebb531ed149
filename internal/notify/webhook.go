package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// webhookPayload is the JSON body posted to the webhook endpoint.
type webhookPayload struct {
	RunID      string `json:"run_id"`
	Label      string `json:"label"`
	Provider   string `json:"provider"`
	Status     string `json:"status"`
	Stage      string `json:"stage,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
}

// WebhookNotifier posts run events as JSON to a webhook URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier. If url is empty, it
// reads from the STEVEDORE_WEBHOOK_URL environment variable.
func NewWebhookNotifier(url string) *WebhookNotifier {
	if url == "" {
		url = os.Getenv("STEVEDORE_WEBHOOK_URL")
	}

	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the notifier name.
func (w *WebhookNotifier) Name() string {
	return "webhook"
}

// IsConfigured returns true if the webhook URL is set.
func (w *WebhookNotifier) IsConfigured() bool {
	return w.url != ""
}

// Send posts the event to the webhook endpoint.
func (w *WebhookNotifier) Send(ctx context.Context, event *Event) error {
	if !w.IsConfigured() {
		return nil
	}

	payload := webhookPayload{
		RunID:      event.RunID,
		Label:      event.Label,
		Provider:   event.Provider,
		Status:     string(event.Status),
		Stage:      event.Stage,
		Error:      event.Error,
		DurationMS: event.Duration.Milliseconds(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
