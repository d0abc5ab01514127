package service

import (
	"context"
	"encoding/json"
	"net/http"

	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/logger"
	"asha-assistant-be/pkg/gateway"
)

type IChatService interface {
	Ask(ctx context.Context, req *dto.ChatRequest) (int, *dto.ChatEnvelope)
}

type chatService struct {
	backend gateway.IBackendClient
	log     logger.ILogger
}

func NewChatService(backend gateway.IBackendClient, log logger.ILogger) IChatService {
	return &chatService{backend: backend, log: log}
}

// Ask relays a chat question to the backend and re-emits its status code with
// the normalized {status_code, message, data} envelope. Every failure mode
// collapses into a client-safe envelope; this method never returns an error.
func (s *chatService) Ask(ctx context.Context, req *dto.ChatRequest) (int, *dto.ChatEnvelope) {
	status, body, err := s.backend.Post(ctx, "/chat", req)
	if err != nil {
		s.log.Error("chat", "chat relay failed", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.ChatEnvelope{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
		}
	}

	var backendResp struct {
		StatusCode int          `json:"status_code"`
		Message    string       `json:"message"`
		Data       dto.ChatData `json:"data"`
	}
	if err := json.Unmarshal(body, &backendResp); err != nil {
		s.log.Error("chat", "malformed backend response", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.ChatEnvelope{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
		}
	}

	env := &dto.ChatEnvelope{
		StatusCode: backendResp.StatusCode,
		Message:    backendResp.Message,
		Data:       backendResp.Data,
	}
	if env.StatusCode == 0 {
		env.StatusCode = status
	}
	if env.Message == "" {
		env.Message = "Question answered successfully!"
	}
	return status, env
}
