// Package imagehost wraps the third-party image upload endpoint the console
// uses for file-type fields. The host is a black box: one multipart POST in,
// a public URL out.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no upload endpoint is configured.
var ErrNotConfigured = errors.New("image host not configured")

// Client uploads files to the configured image host.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New creates a Client. An empty endpoint yields a client that fails every
// upload with ErrNotConfigured.
func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	URL  string `json:"url"`
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends one file and returns the public URL the host assigned.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if c.endpoint == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if c.apiKey != "" {
		if err := writer.WriteField("key", c.apiKey); err != nil {
			return "", fmt.Errorf("failed to build upload request: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %w", err)
	}
	url := decoded.URL
	if url == "" {
		url = decoded.Data.URL
	}
	if url == "" {
		return "", errors.New("image host response carried no URL")
	}
	return url, nil
}
