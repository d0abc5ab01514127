package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// FeedbackTopic carries fire-and-forget feedback records from the engine to
// the recorder.
const FeedbackTopic = "FEEDBACK_RECORDED"

const contextWindow = 5 // transcript entries sent as feedback context

type Config struct {
	SuggestionDelay     time.Duration
	RecommendationDelay time.Duration
}

// Engine owns the conversation state for one session: the append-only
// transcript, followup questions, the active profile, and the single
// in-flight-send guard. All transitions are serialized by the mutex; the
// mutex is released around network calls so feedback and sends stay
// independent.
type Engine struct {
	client   ProxyClient
	profiles ProfileStore
	mirror   TranscriptStore
	events   message.Publisher
	log      logger.ILogger
	cfg      Config

	mu        sync.Mutex
	sessionID string
	input     string
	messages  []Message
	followups []string
	profile   *UserProfile
	loggedIn  bool
	sending   bool
}

func NewEngine(client ProxyClient, profiles ProfileStore, mirror TranscriptStore, events message.Publisher, log logger.ILogger, cfg Config) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Engine{
		client:    client,
		profiles:  profiles,
		mirror:    mirror,
		events:    events,
		log:       log,
		cfg:       cfg,
		sessionID: uuid.NewString(),
	}
}

// Bootstrap loads the stored profile once and, for a returning user with
// skills and an empty transcript, schedules the skill-based recommendation
// flow after the configured delay.
func (e *Engine) Bootstrap(ctx context.Context) {
	if e.profiles == nil {
		return
	}
	profile, ok, err := e.profiles.Load()
	if err != nil {
		e.log.Warn("assistant", "failed to load stored profile", map[string]interface{}{"error": err.Error()})
		return
	}
	if !ok {
		return
	}

	e.mu.Lock()
	e.profile = profile
	empty := len(e.messages) == 0
	e.mu.Unlock()

	if profile.Skills != "" && empty {
		e.scheduleRecommendations(ctx, *profile)
	}
}

// SendMessage appends the user turn and resolves exactly one bot turn.
// Whitespace-only input and overlapping sends are silent no-ops.
func (e *Engine) SendMessage(ctx context.Context, text string) {
	e.mu.Lock()
	if strings.TrimSpace(text) == "" || e.sending {
		e.mu.Unlock()
		return
	}
	e.sending = true
	e.input = ""
	e.appendLocked(newUserMessage(text))
	req := &dto.ChatRequest{
		Question:        text,
		SessionId:       e.sessionID,
		CurrentDateTime: time.Now().Format(time.RFC3339),
		UserProfile:     e.profile.toDTO(),
	}
	e.mu.Unlock()

	env, err := e.client.Chat(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sending = false
	if err != nil || env == nil {
		e.appendLocked(newBotMessage(apologyText))
		e.followups = nil
		return
	}
	e.appendLocked(newBotMessage(env.Data.Message))
	if len(env.Data.RelatedQuestions) > 0 {
		e.followups = append([]string(nil), env.Data.RelatedQuestions...)
	} else {
		e.followups = nil
	}
}

// GiveFeedback records the reaction to a bot message. The record itself is
// published fire-and-forget; the acknowledgement is a separate chat call
// whose failure falls back to a static message. The target message is never
// touched.
func (e *Engine) GiveFeedback(ctx context.Context, messageID, kind string) {
	prompt, ok := feedbackPrompts[kind]
	if !ok {
		return
	}

	e.mu.Lock()
	var target *Message
	for i := range e.messages {
		if e.messages[i].Id == messageID {
			target = &e.messages[i]
			break
		}
	}
	targetText := ""
	if target != nil {
		targetText = target.Text
	}
	conversation := e.contextLocked()
	sessionID := e.sessionID
	e.mu.Unlock()

	e.publishFeedback(&dto.FeedbackRequest{
		MessageId:           messageID,
		FeedbackType:        kind,
		SessionId:           sessionID,
		MessageText:         targetText,
		ConversationContext: conversation,
	})

	env, err := e.client.Chat(ctx, &dto.ChatRequest{
		Question:        prompt,
		SessionId:       sessionID,
		CurrentDateTime: time.Now().Format(time.RFC3339),
		FeedbackContext: map[string]interface{}{
			"original_message":     targetText,
			"feedback_type":        kind,
			"conversation_context": conversation,
		},
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil || env == nil {
		e.appendLocked(newBotMessage(feedbackFallbacks[kind]))
		return
	}
	ack := env.Data.Message
	if ack == "" {
		ack = defaultAckText
	}
	e.appendLocked(newBotMessage(ack))
}

// SaveProfile replaces the active profile wholesale. Password rules apply
// only when a brand-new emailed profile supplies one; rejection happens
// before any network or storage side effect.
func (e *Engine) SaveProfile(ctx context.Context, draft UserProfile, confirmPassword string, isLogin bool) error {
	e.mu.Lock()
	isNew := e.profile == nil
	e.mu.Unlock()

	if isNew && draft.Email != "" && draft.Password != "" {
		if draft.Password != confirmPassword {
			return ErrPasswordMismatch
		}
		if len(draft.Password) < 6 {
			return ErrPasswordTooShort
		}
	}

	e.installProfile(ctx, draft, isLogin, isNew)
	return nil
}

// Login exchanges credentials for a backend-registered profile. Failures are
// typed for the dialog layer and never touch the transcript.
func (e *Engine) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingCredentials
	}

	res, status, err := e.client.Login(ctx, &dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return ErrConnectivity
	}
	switch status {
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusNotFound:
		return ErrAccountNotFound
	}
	if res == nil || !res.Success {
		return ErrInvalidCredentials
	}

	profile := profileFromDTO(res.Profile)
	if profile == nil {
		return ErrConnectivity
	}

	e.mu.Lock()
	e.loggedIn = true
	e.mu.Unlock()
	e.installProfile(ctx, *profile, true, false)
	return nil
}

// SelectSuggestion fills the input buffer with the chip text, then sends it
// after the short delay the UI uses to reflect the input first.
func (e *Engine) SelectSuggestion(ctx context.Context, question string) {
	e.mu.Lock()
	e.input = question
	e.mu.Unlock()

	time.Sleep(e.cfg.SuggestionDelay)
	e.SendMessage(ctx, question)
}

// Reset is the "New Chat" reload: transcript and session identity are
// discarded, the stored profile survives.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sessionID = uuid.NewString()
	e.messages = nil
	e.followups = nil
	e.input = ""
	e.sending = false
}

// ExitSession removes the stored profile and then reloads.
func (e *Engine) ExitSession() {
	if e.profiles != nil {
		if err := e.profiles.Clear(); err != nil {
			e.log.Warn("assistant", "failed to clear stored profile", map[string]interface{}{"error": err.Error()})
		}
	}
	e.mu.Lock()
	e.profile = nil
	e.loggedIn = false
	e.mu.Unlock()
	e.Reset()
}

// --- Accessors (copies only; the transcript is never handed out mutable) ---

func (e *Engine) Messages() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Message(nil), e.messages...)
}

func (e *Engine) Followups() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.followups...)
}

func (e *Engine) Profile() *UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile == nil {
		return nil
	}
	p := *e.profile
	return &p
}

func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

func (e *Engine) Input() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input
}

func (e *Engine) Sending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sending
}

func (e *Engine) LoggedIn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loggedIn
}

// --- internals ---

// installProfile is the shared tail of SaveProfile and Login: replace,
// persist, register new emailed profiles with the backend, and kick off the
// recommendation flow for a fresh transcript with skills.
func (e *Engine) installProfile(ctx context.Context, profile UserProfile, isLogin, isNew bool) {
	e.mu.Lock()
	e.profile = &profile
	empty := len(e.messages) == 0
	sessionID := e.sessionID
	e.mu.Unlock()

	if e.profiles != nil {
		if err := e.profiles.Save(&profile); err != nil {
			// Keep the in-memory profile even when storage fails
			e.log.Warn("assistant", "failed to persist profile", map[string]interface{}{"error": err.Error()})
		}
	}

	if profile.Email != "" && !isLogin {
		_, err := e.client.CreateProfile(ctx, &dto.CreateProfileRequest{
			Name:       profile.Name,
			Email:      profile.Email,
			Skills:     profile.Skills,
			Experience: profile.Experience,
			Gender:     profile.Gender,
			Password:   profile.Password,
			SessionId:  sessionID,
		})
		if err != nil {
			e.log.Warn("assistant", "backend profile registration failed", map[string]interface{}{"error": err.Error()})
		} else {
			e.mu.Lock()
			e.mirrorLocked()
			e.mu.Unlock()
		}
	}

	if (isNew || isLogin) && profile.Skills != "" && empty {
		e.scheduleRecommendations(ctx, profile)
	}
}

func (e *Engine) scheduleRecommendations(ctx context.Context, profile UserProfile) {
	go func() {
		time.Sleep(e.cfg.RecommendationDelay)
		e.sendSkillRecommendations(ctx, profile)
	}()
}

// sendSkillRecommendations appends the personalized welcome and then asks
// the backend for matching positions, with SendMessage's success/failure
// handling.
func (e *Engine) sendSkillRecommendations(ctx context.Context, profile UserProfile) {
	e.mu.Lock()
	if e.sending {
		e.mu.Unlock()
		return
	}
	e.sending = true
	e.appendLocked(newBotMessage(welcomeText(profile.Name, profile.Skills)))
	req := &dto.ChatRequest{
		Question:        skillQuestion(profile.Skills, profile.Experience),
		SessionId:       e.sessionID,
		CurrentDateTime: time.Now().Format(time.RFC3339),
		UserProfile:     profile.toDTO(),
	}
	e.mu.Unlock()

	env, err := e.client.Chat(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sending = false
	if err != nil || env == nil {
		e.appendLocked(newBotMessage(welcomeFallbackText(profile.Name)))
		return
	}
	e.appendLocked(newBotMessage(env.Data.Message))
	if len(env.Data.RelatedQuestions) > 0 {
		e.followups = append([]string(nil), env.Data.RelatedQuestions...)
	}
}

// publishFeedback is best-effort, non-blocking with respect to the
// transcript, and failure-silent beyond a log line.
func (e *Engine) publishFeedback(req *dto.FeedbackRequest) {
	if e.events == nil {
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return
	}
	if err := e.events.Publish(FeedbackTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		e.log.Warn("assistant", "feedback event dropped", map[string]interface{}{"error": err.Error()})
	}
}

// appendLocked appends and mirrors; callers hold the mutex.
func (e *Engine) appendLocked(msg Message) {
	e.messages = append(e.messages, msg)
	e.mirrorLocked()
}

func (e *Engine) mirrorLocked() {
	if e.mirror == nil || e.profile == nil || e.profile.Email == "" || len(e.messages) == 0 {
		return
	}
	if err := e.mirror.SaveTranscript(e.sessionID, append([]Message(nil), e.messages...)); err != nil {
		e.log.Warn("assistant", "transcript mirror write failed", map[string]interface{}{"error": err.Error()})
	}
}

// contextLocked renders the last entries as "sender: text" lines.
func (e *Engine) contextLocked() string {
	start := len(e.messages) - contextWindow
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, contextWindow)
	for _, msg := range e.messages[start:] {
		lines = append(lines, msg.Sender+": "+msg.Text)
	}
	return strings.Join(lines, "\n")
}
