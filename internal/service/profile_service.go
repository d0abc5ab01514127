package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/logger"
	"asha-assistant-be/pkg/gateway"
)

type IProfileService interface {
	Create(ctx context.Context, req *dto.CreateProfileRequest, userAgent string) (int, *dto.CreateProfileResponse)
	Save(ctx context.Context, req *dto.UpsertProfileRequest, userAgent string) (int, *dto.DataResponse)
}

type profileService struct {
	backend gateway.IBackendClient
	log     logger.ILogger
}

func NewProfileService(backend gateway.IBackendClient, log logger.ILogger) IProfileService {
	return &profileService{backend: backend, log: log}
}

func (s *profileService) Create(ctx context.Context, req *dto.CreateProfileRequest, userAgent string) (int, *dto.CreateProfileResponse) {
	payload := struct {
		dto.CreateProfileRequest
		UserAgent string `json:"user_agent,omitempty"`
	}{*req, userAgent}

	status, body, err := s.backend.Post(ctx, "/create-profile", payload)
	if err != nil {
		s.log.Error("profile", "create-profile relay failed", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.CreateProfileResponse{
			Success: false,
			Message: "Failed to create profile",
		}
	}
	if status >= http.StatusMultipleChoices {
		return status, &dto.CreateProfileResponse{
			Success: false,
			Message: backendMessage(body, "Failed to create profile"),
		}
	}

	var backendResp struct {
		Profile *dto.UserProfileDTO `json:"profile"`
	}
	if err := json.Unmarshal(body, &backendResp); err != nil {
		s.log.Error("profile", "malformed backend response", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.CreateProfileResponse{
			Success: false,
			Message: "Failed to create profile",
		}
	}

	return status, &dto.CreateProfileResponse{
		Success: true,
		Message: "Profile created successfully",
		Profile: backendResp.Profile,
	}
}

func (s *profileService) Save(ctx context.Context, req *dto.UpsertProfileRequest, userAgent string) (int, *dto.DataResponse) {
	// Optional fields are normalized to empty strings so the backend sees a
	// stable shape regardless of what the client omitted.
	payload := map[string]interface{}{
		"name":       req.Name,
		"email":      req.Email,
		"skills":     req.Skills,
		"experience": req.Experience,
		"session_id": req.SessionId,
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"has_email":  req.Email != "",
		"user_agent": userAgent,
	}

	status, body, err := s.backend.Post(ctx, "/user-profile", payload)
	if err != nil {
		s.log.Error("profile", "user-profile relay failed", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.DataResponse{
			Success: false,
			Message: "Failed to save user profile",
		}
	}
	if status >= http.StatusMultipleChoices {
		return status, &dto.DataResponse{
			Success: false,
			Message: backendMessage(body, "Failed to save user profile"),
		}
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		data = nil
	}
	return status, &dto.DataResponse{
		Success: true,
		Message: "User profile saved successfully",
		Data:    data,
	}
}
