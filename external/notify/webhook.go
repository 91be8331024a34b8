package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gparth254/meet-ai/internal/notify"
)

const webhookTimeout = 10 * time.Second

type WebhookPublisher struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookPublisher(webhookURL string) *WebhookPublisher {
	return &WebhookPublisher{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: webhookTimeout},
	}
}

func (p *WebhookPublisher) Publish(ctx context.Context, event notify.Event) error {
	if p.webhookURL == "" {
		return nil
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Meetai-Event", string(event.Kind))
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
