package service

import (
	"context"
	"encoding/json"
	"net/http"

	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/logger"
	"asha-assistant-be/pkg/gateway"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, userAgent string) (int, *dto.LoginResponse)
}

type authService struct {
	backend gateway.IBackendClient
	log     logger.ILogger
}

func NewAuthService(backend gateway.IBackendClient, log logger.ILogger) IAuthService {
	return &authService{backend: backend, log: log}
}

// Login forwards the credentials and splits the backend's failure codes the
// way the UI needs them: 404 means no such account, 401 means bad
// credentials, anything else is a generic failure.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, userAgent string) (int, *dto.LoginResponse) {
	payload := struct {
		dto.LoginRequest
		UserAgent string `json:"user_agent,omitempty"`
	}{*req, userAgent}

	status, body, err := s.backend.Post(ctx, "/user-login", payload)
	if err != nil {
		s.log.Error("auth", "login relay failed", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.LoginResponse{
			Success: false,
			Message: "Login failed",
		}
	}

	switch {
	case status == http.StatusNotFound:
		return status, &dto.LoginResponse{
			Success: false,
			Message: "No account found with this email address",
		}
	case status == http.StatusUnauthorized:
		return status, &dto.LoginResponse{
			Success: false,
			Message: "Invalid email or password",
		}
	case status >= http.StatusMultipleChoices:
		return status, &dto.LoginResponse{
			Success: false,
			Message: backendMessage(body, "Login failed"),
		}
	}

	var backendResp struct {
		Profile     *dto.UserProfileDTO    `json:"profile"`
		ChatHistory []dto.ChatHistoryEntry `json:"chat_history"`
	}
	if err := json.Unmarshal(body, &backendResp); err != nil {
		s.log.Error("auth", "malformed backend response", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.LoginResponse{
			Success: false,
			Message: "Login failed",
		}
	}

	return status, &dto.LoginResponse{
		Success:     true,
		Message:     "Login successful",
		Profile:     backendResp.Profile,
		ChatHistory: backendResp.ChatHistory,
	}
}
