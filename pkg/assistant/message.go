package assistant

import (
	"asha-assistant-be/internal/dto"

	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one transcript entry. Immutable once appended.
type Message struct {
	Id     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

func newUserMessage(text string) Message {
	return Message{Id: uuid.NewString(), Text: text, Sender: SenderUser}
}

func newBotMessage(text string) Message {
	return Message{Id: uuid.NewString(), Text: text, Sender: SenderBot}
}

// UserProfile is the active profile for one browser-equivalent session. It
// is replaced wholesale on save, never patched.
type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Password   string `json:"password,omitempty"`
}

func (p *UserProfile) toDTO() *dto.UserProfileDTO {
	if p == nil {
		return nil
	}
	return &dto.UserProfileDTO{
		Name:       p.Name,
		Email:      p.Email,
		Skills:     p.Skills,
		Experience: p.Experience,
		Gender:     p.Gender,
		Password:   p.Password,
	}
}

func profileFromDTO(d *dto.UserProfileDTO) *UserProfile {
	if d == nil {
		return nil
	}
	return &UserProfile{
		Name:       d.Name,
		Email:      d.Email,
		Skills:     d.Skills,
		Experience: d.Experience,
		Gender:     d.Gender,
		Password:   d.Password,
	}
}
