package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"asha-assistant-be/internal/dto"
)

// HTTPProxyClient talks to the credential proxy's /api routes. It holds no
// credentials; those live server-side.
type HTTPProxyClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPProxyClient(baseURL string) *HTTPProxyClient {
	return &HTTPProxyClient{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

func (c *HTTPProxyClient) post(ctx context.Context, path string, payload, out interface{}) (int, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil && resp.StatusCode < http.StatusMultipleChoices {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *HTTPProxyClient) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
	var env dto.ChatEnvelope
	status, err := c.post(ctx, "/api/chat", req, &env)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("chat relay returned status %d", status)
	}
	return &env, nil
}

func (c *HTTPProxyClient) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.CreateProfileResponse, error) {
	var res dto.CreateProfileResponse
	status, err := c.post(ctx, "/api/create-profile", req, &res)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("create-profile returned status %d", status)
	}
	return &res, nil
}

func (c *HTTPProxyClient) RecordFeedback(ctx context.Context, req *dto.FeedbackRequest) error {
	var res dto.DataResponse
	status, err := c.post(ctx, "/api/feedback", req, &res)
	if err != nil {
		return err
	}
	if status >= http.StatusMultipleChoices {
		return fmt.Errorf("feedback returned status %d", status)
	}
	return nil
}

// Login returns the proxy's status code so the engine can split the 401/404
// cases; a transport failure returns an error with status 0.
func (c *HTTPProxyClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, int, error) {
	var res dto.LoginResponse
	status, err := c.post(ctx, "/api/user-login", req, &res)
	if err != nil {
		return nil, 0, err
	}
	return &res, status, nil
}
