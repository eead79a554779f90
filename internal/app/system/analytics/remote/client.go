// Package remote fetches snapshots from another TemplePulse instance (or any
// service speaking the same envelope) over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/htmlsanitize"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.uber.org/zap"
)

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// Envelope is the response body of the analytics endpoint.
type Envelope struct {
	Success bool                      `json:"success"`
	Data    *models.AnalyticsSnapshot `json:"data,omitempty"`
	Message string                    `json:"message,omitempty"`
}

// APIError is a failed response. Message is the server-provided text, already
// stripped of markup, and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("analytics endpoint returned status %d", e.Status)
}

// Unwrap maps a 404 to analytics.ErrTempleNotFound.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return analytics.ErrTempleNotFound
	}
	return nil
}

// Client is an analytics.Source backed by an HTTP endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// New returns a Client for baseURL (e.g. "https://pulse.example.org").
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

// Fetch implements analytics.Source.
func (c *Client) Fetch(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error) {
	u := fmt.Sprintf("%s/api/temples/%s/analytics?%s",
		c.BaseURL, url.PathEscape(templeID), url.Values{"period": {string(period)}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("build analytics request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("request analytics: %w", err)
	}
	defer resp.Body.Close()

	var env Envelope
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBody))
	if err := dec.Decode(&env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return models.AnalyticsSnapshot{}, &APIError{Status: resp.StatusCode}
		}
		return models.AnalyticsSnapshot{}, fmt.Errorf("decode analytics response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		status := resp.StatusCode
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
		c.Log.Debug("analytics endpoint reported failure",
			zap.String("temple_id", templeID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message))
		return models.AnalyticsSnapshot{}, &APIError{Status: status, Message: htmlsanitize.PlainText(env.Message)}
	}
	if env.Data == nil {
		return models.AnalyticsSnapshot{}, errors.New("analytics response has no data")
	}

	snap := *env.Data
	for i := range snap.TopDevotees {
		snap.TopDevotees[i].NameMasked = htmlsanitize.PlainText(snap.TopDevotees[i].NameMasked)
		snap.TopDevotees[i].PublicUserID = strings.TrimSpace(snap.TopDevotees[i].PublicUserID)
	}
	return snap, nil
}
