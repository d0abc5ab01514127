package assistant

import (
	"context"
	"errors"

	"asha-assistant-be/internal/dto"
)

// ProxyClient is the engine's view of the credential proxy. The HTTP
// implementation lives in proxy_client.go; tests substitute fakes.
type ProxyClient interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatEnvelope, error)
	CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.CreateProfileResponse, error)
	RecordFeedback(ctx context.Context, req *dto.FeedbackRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, int, error)
}

// ProfileStore is the localStorage equivalent for the active profile:
// loaded once at startup, saved wholesale on change.
type ProfileStore interface {
	Load() (*UserProfile, bool, error)
	Save(profile *UserProfile) error
	Clear() error
}

// TranscriptStore mirrors the transcript per session key, written only when
// the active profile carries an email. Best-effort.
type TranscriptStore interface {
	SaveTranscript(sessionID string, messages []Message) error
	LoadTranscript(sessionID string) ([]Message, bool, error)
}

// Account-management failures surface as typed errors so the presentation
// layer can pick the right dialog; conversational failures never do, they
// become bot messages.
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("no account found with this email address")
	ErrConnectivity       = errors.New("unable to connect to the server")
)
