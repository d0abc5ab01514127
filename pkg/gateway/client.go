package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"asha-assistant-be/internal/pkg/logger"
)

// ErrNotConfigured is returned when no backend base URL was set at process
// start. Callers must translate it into a generic 500; the detail stays in
// the server log.
var ErrNotConfigured = errors.New("backend base url is not configured")

// Client is the one-hop forwarder to the AI/careers backend. It synthesizes
// the auth token once at construction and attaches it, together with the API
// key, to every outbound request. Stateless per call.
type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *http.Client
	log     logger.ILogger
}

func New(baseURL, serviceEmail, servicePassword, apiKey string, timeout time.Duration, log logger.ILogger) *Client {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		token:   base64.StdEncoding.EncodeToString([]byte(serviceEmail + ":" + servicePassword)),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Post forwards the JSON payload to baseURL+path and returns the backend's
// status code and raw body. A non-2xx status is not an error here; the relay
// services decide how to surface it. Errors are transport-level only and
// never contain the token or API key.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	if c.baseURL == "" {
		return 0, nil, ErrNotConfigured
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("gateway", "backend request failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return 0, nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read backend response: %w", err)
	}

	return resp.StatusCode, body, nil
}
