package dto

// ChatRequest is the browser-facing chat payload, forwarded to the backend
// verbatim after validation.
type ChatRequest struct {
	Question        string                 `json:"question" validate:"required"`
	SessionId       string                 `json:"session_id" validate:"required"`
	CurrentDateTime string                 `json:"current_date_time,omitempty"`
	UserProfile     *UserProfileDTO        `json:"user_profile,omitempty"`
	FeedbackContext map[string]interface{} `json:"feedback_context,omitempty"`
}

type ChatData struct {
	Message          string   `json:"message"`
	RelatedQuestions []string `json:"related_questions,omitempty"`
}

// ChatEnvelope mirrors the backend's chat response shape; the proxy re-emits
// it with the backend's status code.
type ChatEnvelope struct {
	StatusCode int      `json:"status_code"`
	Message    string   `json:"message"`
	Data       ChatData `json:"data"`
}
