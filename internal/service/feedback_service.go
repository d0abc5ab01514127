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

type IFeedbackService interface {
	Record(ctx context.Context, req *dto.FeedbackRequest, userAgent string) (int, *dto.DataResponse)
}

type feedbackService struct {
	backend gateway.IBackendClient
	log     logger.ILogger
}

func NewFeedbackService(backend gateway.IBackendClient, log logger.ILogger) IFeedbackService {
	return &feedbackService{backend: backend, log: log}
}

func (s *feedbackService) Record(ctx context.Context, req *dto.FeedbackRequest, userAgent string) (int, *dto.DataResponse) {
	additional := make(map[string]interface{}, len(req.AdditionalData)+2)
	for k, v := range req.AdditionalData {
		additional[k] = v
	}
	additional["user_agent"] = userAgent
	additional["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	payload := *req
	payload.AdditionalData = additional

	status, body, err := s.backend.Post(ctx, "/feedback", &payload)
	if err != nil {
		s.log.Error("feedback", "feedback relay failed", map[string]interface{}{"error": err.Error()})
		return http.StatusInternalServerError, &dto.DataResponse{
			Success: false,
			Message: "Failed to record feedback",
		}
	}
	if status >= http.StatusMultipleChoices {
		return status, &dto.DataResponse{
			Success: false,
			Message: backendMessage(body, "Failed to record feedback"),
		}
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		data = nil
	}
	return status, &dto.DataResponse{
		Success: true,
		Message: "Feedback recorded successfully",
		Data:    data,
	}
}
