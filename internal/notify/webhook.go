package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrUnexpectedStatus = errors.New("webhook: unexpected response status")

type WebhookConfig struct {
	Timeout time.Duration
	// Consecutive failures before the breaker opens.
	BreakerFailures uint32
	// How long the breaker stays open before letting a probe through.
	BreakerCooldown time.Duration
}

// Webhook POSTs JSON payloads to an external URL.
type Webhook struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewWebhook creates a webhook sender. A nil client gets a traced client
// with cfg.Timeout.
func NewWebhook(cfg WebhookConfig, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		}
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "order-webhook",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("notify: circuit breaker state changed")
		},
	})

	return &Webhook{client: client, breaker: breaker}
}

// Send encodes payload as JSON and POSTs it to url. Any non-2xx answer is an
// error. While the breaker is open calls fail fast with gobreaker.ErrOpenState.
func (w *Webhook) Send(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: failed to marshal payload: %w", err)
	}

	_, err = w.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, w.post(ctx, url, body)
	})
	return err
}

func (w *Webhook) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
