package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"emberfield/config"
)

// ErrNoWebhook is returned by Submit when no webhook URL is configured
var ErrNoWebhook = errors.New("no webhook configured")

// maxErrorBody caps how much of a failed response is kept in the error
const maxErrorBody = 512

// Client posts leads to a webhook
type Client struct {
	webhookURL string
	bookingURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a webhook client from cfg
func NewClient(cfg config.LeadsConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		webhookURL: cfg.WebhookURL,
		bookingURL: cfg.BookingURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BookingURL returns where visitors go after submitting
func (c *Client) BookingURL() string {
	return c.bookingURL
}

// Submit posts lead as JSON. Any non-2xx status is an error.
func (c *Client) Submit(ctx context.Context, lead Lead) error {
	if c.webhookURL == "" {
		return ErrNoWebhook
	}

	jsonData, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// SubmitAndRedirect submits lead and returns the booking URL. Submission
// failures are logged and never stop the visitor from booking.
func (c *Client) SubmitAndRedirect(ctx context.Context, lead Lead) string {
	if err := c.Submit(ctx, lead); err != nil {
		c.logger.Warn("lead submission failed",
			zap.String("email", lead.Email),
			zap.Float64("calculated_loss", lead.CalculatedLoss),
			zap.Error(err))
	} else {
		c.logger.Info("lead submitted", zap.String("email", lead.Email))
	}
	return c.bookingURL
}
