package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	name       string
	configured bool
	err        error
	sent       int
}

func (s *stubNotifier) Name() string       { return s.name }
func (s *stubNotifier) IsConfigured() bool { return s.configured }

func (s *stubNotifier) Send(ctx context.Context, event *Event) error {
	s.sent++
	return s.err
}

func testEvent() *Event {
	return &Event{
		RunID:    "run-123",
		Label:    "orders",
		Provider: "aws",
		Status:   StatusSucceeded,
		Duration: 42 * time.Second,
	}
}

func TestManager(t *testing.T) {
	t.Run("unconfigured notifiers are not added", func(t *testing.T) {
		m := NewManager()
		m.Add(&stubNotifier{name: "off", configured: false})

		assert.False(t, m.HasNotifiers())
		assert.NoError(t, m.Send(context.Background(), testEvent()))
	})

	t.Run("sends to every configured notifier", func(t *testing.T) {
		first := &stubNotifier{name: "a", configured: true}
		second := &stubNotifier{name: "b", configured: true}

		m := NewManager()
		m.Add(first)
		m.Add(second)

		require.NoError(t, m.Send(context.Background(), testEvent()))
		assert.Equal(t, 1, first.sent)
		assert.Equal(t, 1, second.sent)
	})

	t.Run("one failure does not stop the rest", func(t *testing.T) {
		failing := &stubNotifier{name: "bad", configured: true, err: errors.New("timeout")}
		working := &stubNotifier{name: "good", configured: true}

		m := NewManager()
		m.Add(failing)
		m.Add(working)

		err := m.Send(context.Background(), testEvent())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
		assert.Equal(t, 1, working.sent, "later notifiers still run")
	})
}

func TestWebhookNotifier(t *testing.T) {
	t.Run("unconfigured without a URL", func(t *testing.T) {
		t.Setenv("STEVEDORE_WEBHOOK_URL", "")
		n := NewWebhookNotifier("")
		assert.False(t, n.IsConfigured())
		assert.NoError(t, n.Send(context.Background(), testEvent()))
	})

	t.Run("falls back to the environment", func(t *testing.T) {
		t.Setenv("STEVEDORE_WEBHOOK_URL", "https://hooks.example.com/x")
		n := NewWebhookNotifier("")
		assert.True(t, n.IsConfigured())
	})

	t.Run("posts the event as JSON", func(t *testing.T) {
		var got webhookPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		event := testEvent()
		event.Status = StatusFailed
		event.Stage = "Deploy"
		event.Error = "provider \"aws\": throttled"

		n := NewWebhookNotifier(server.URL)
		require.NoError(t, n.Send(context.Background(), event))

		assert.Equal(t, "run-123", got.RunID)
		assert.Equal(t, "orders", got.Label)
		assert.Equal(t, "failed", got.Status)
		assert.Equal(t, "Deploy", got.Stage)
		assert.Equal(t, int64(42000), got.DurationMS)
		assert.NotEmpty(t, got.Timestamp)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		n := NewWebhookNotifier(server.URL)
		err := n.Send(context.Background(), testEvent())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}
