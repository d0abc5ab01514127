package dto

const (
	FeedbackPositive = "positive"
	FeedbackNegative = "negative"
	FeedbackReport   = "report"
)

type FeedbackRequest struct {
	MessageId           string                 `json:"message_id" validate:"required"`
	FeedbackType        string                 `json:"feedback_type" validate:"required,oneof=positive negative report"`
	SessionId           string                 `json:"session_id" validate:"required"`
	MessageText         string                 `json:"message_text,omitempty"`
	ConversationContext string                 `json:"conversation_context,omitempty"`
	AdditionalData      map[string]interface{} `json:"additional_data,omitempty"`
}
