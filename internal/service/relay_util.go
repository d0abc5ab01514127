package service

import "encoding/json"

// backendMessage pulls a human-readable message out of a backend error body,
// falling back when the body is empty or not JSON.
func backendMessage(body []byte, fallback string) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &m); err == nil {
		if m.Message != "" {
			return m.Message
		}
		if m.Error != "" {
			return m.Error
		}
	}
	return fallback
}
