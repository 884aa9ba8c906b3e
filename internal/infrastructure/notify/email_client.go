// Package notify implements the best-effort email notification channel.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/activity-platform/moderation-api/internal/api/metrics"
)

const defaultTimeout = 30 * time.Second

// EmailClient posts notifications to the email-api service. Delivery is
// best-effort: every transport failure is logged and swallowed so a broken
// email pipeline can never fail a moderation request that already succeeded.
type EmailClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewEmailClient creates an EmailClient for the given email-api base URL.
func NewEmailClient(baseURL string, log zerolog.Logger) *EmailClient {
	return &EmailClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

type sendEmailRequest struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Context  map[string]string `json:"context"`
}

// Send delivers one templated email. It never returns an error; failures are
// recorded with the recipient and template for operator follow-up.
func (c *EmailClient) Send(ctx context.Context, to, template string, tmplCtx map[string]string) {
	if err := c.post(ctx, to, template, tmplCtx); err != nil {
		metrics.NotificationsTotal.WithLabelValues(template, "failed").Inc()
		c.log.Error().Err(err).Str("to", to).Str("template", template).Msg("email send failed")
		return
	}

	metrics.NotificationsTotal.WithLabelValues(template, "sent").Inc()
	c.log.Info().Str("to", to).Str("template", template).Msg("email sent")
}

func (c *EmailClient) post(ctx context.Context, to, template string, tmplCtx map[string]string) error {
	body, err := json.Marshal(sendEmailRequest{To: to, Template: template, Context: tmplCtx})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email-api returned status %d", resp.StatusCode)
	}
	return nil
}
