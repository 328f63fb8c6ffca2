package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// Notifier delivers committed lifecycle events to downstream consumers.
type Notifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// WebhookNotifier implements Notifier by posting events to a webhook
// endpoint. Delivery is at-least-once; consumers dedup on the event id.
type WebhookNotifier struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// envelope mirrors the JSON payload delivered to the webhook.
type envelope struct {
	ID            int64           `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   int64           `json:"aggregate_id"`
	Type          string          `json:"type"`
	ActorID       int64           `json:"actor_id"`
	ActorRole     string          `json:"actor_role"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewWebhookNotifier creates a webhook notifier with default timeout.
func NewWebhookNotifier(baseURL string, logger *slog.Logger) (*WebhookNotifier, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &WebhookNotifier{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Notify posts the event to the webhook endpoint.
func (n *WebhookNotifier) Notify(ctx context.Context, event model.Event) error {
	target := *n.baseURL
	target.Path = path.Join(target.Path, "/api/hooks/events")

	body, err := json.Marshal(envelope{
		ID:            event.ID,
		AggregateType: string(event.AggregateType),
		AggregateID:   event.AggregateID,
		Type:          event.Type,
		ActorID:       event.ActorID,
		ActorRole:     string(event.ActorRole),
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		n.logger.Error("webhook delivery failed",
			slog.Int64("event_id", event.ID),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)))
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
	return nil
}
