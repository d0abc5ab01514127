package dto

type UserProfileDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Password   string `json:"password,omitempty"`
}

type CreateProfileRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Password   string `json:"password,omitempty"`
	SessionId  string `json:"session_id,omitempty"`
}

type CreateProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Profile *UserProfileDTO `json:"profile,omitempty"`
}

// UpsertProfileRequest is the /api/user-profile payload. Only session_id is
// mandatory; the rest is normalized to empty strings before forwarding.
type UpsertProfileRequest struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	SessionId  string `json:"session_id" validate:"required"`
}

// DataResponse is the {success, message, data} envelope shared by the
// profile and feedback operations.
type DataResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
