package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

// maxBodyBytes caps how much of a response is read; a snapshot is tiny.
const maxBodyBytes = 1 << 20

// Config captures the settings of the tracking API client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api/tracking.
	BaseURL string
	// Timeout bounds a single request. Zero means no client-side timeout.
	Timeout time.Duration
}

// Client fetches order snapshots from the tracking REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for cfg.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// OrderURL builds {baseURL}/orders/{orderID}/.
func (c *Client) OrderURL(orderID string) string {
	return c.baseURL + "/orders/" + url.PathEscape(orderID) + "/"
}

// Fetch implements ports.LocationSource.
func (c *Client) Fetch(ctx context.Context, orderID string) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.OrderURL(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read order %s: %w", orderID, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, c.rejected(body, fmt.Errorf("order %s: %w", orderID, domain.ErrOrderNotFound))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, c.rejected(body, fmt.Errorf("order %s: %w: %d %s", orderID, domain.ErrUnexpectedStatus, resp.StatusCode, detail(body)))
	}

	return c.decode(body)
}

// decode parses the body. Coordinate strings are left untouched: they are
// validated when the poller converts them to a point.
func (c *Client) decode(body []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return &snap, nil
}

// rejected adds ErrStatusUnavailable when an error response still carries a
// JSON body: it decodes to a snapshot without status, so the badge resets.
func (c *Client) rejected(body []byte, err error) error {
	if json.Valid(body) {
		return fmt.Errorf("%w (%w)", err, domain.ErrStatusUnavailable)
	}
	return err
}

// detail extracts the {"detail": "..."} message the API uses for errors.
func detail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(body))
}
