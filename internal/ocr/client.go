// Package ocr talks to the external text-extraction service. The service
// is fallible and non-deterministic; the ingestion runner owns retries, so
// this client makes exactly one attempt per call.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osse101/RecipeVault_Go/internal/logger"
)

// DefaultTimeout bounds a single OCR round trip
const DefaultTimeout = 20 * time.Second

// Client calls a remote OCR endpoint over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OCR client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type extractResponse struct {
	Text string `json:"text"`
}

// ExtractText sends image bytes to the OCR service and returns the
// recognized text
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send OCR request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, body)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}

	log.Debug("OCR extraction complete", "bytes_in", len(image), "chars_out", len(out.Text))
	return out.Text, nil
}
