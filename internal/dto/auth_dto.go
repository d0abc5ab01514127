package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChatHistoryEntry struct {
	Id     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type LoginResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Profile     *UserProfileDTO    `json:"profile,omitempty"`
	ChatHistory []ChatHistoryEntry `json:"chat_history,omitempty"`
}
