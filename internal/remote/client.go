package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/xtconsole/internal/domain"
)

const userAgent = "xtconsole/1.0"

// Client issues JSON request/response exchanges against the backend.
// Each call is exactly one round trip: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the backend origin the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchJSON performs a GET and decodes the response into out
func (c *Client) FetchJSON(ctx context.Context, path string, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PostJSON posts body as JSON and decodes the response into out (nil to discard)
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	payload, err := encode(body)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// DeleteResource performs a DELETE and decodes the response into out (nil to discard)
func (c *Client) DeleteResource(ctx context.Context, path string, out any) error {
	body, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PostForFile posts body as JSON and returns the raw response bytes
func (c *Client) PostForFile(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := encode(body)
	if err != nil {
		return nil, err
	}
	return c.doRequest(ctx, http.MethodPost, path, payload)
}

// doRequest performs a single HTTP exchange. Non-2xx responses become
// *domain.RemoteRequestError carrying the response text.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	reqURL := c.baseURL + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("backend request", "method", method, "url", reqURL, "requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error("backend request failed", "error", err, "requestID", requestID)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("backend request error",
			"status", resp.StatusCode, "body", string(body), "requestID", requestID)
		msg := string(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &domain.RemoteRequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: msg,
		}
	}

	return body, nil
}

func encode(body any) ([]byte, error) {
	if body == nil {
		return []byte("{}"), nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return payload, nil
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
