package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"asha-assistant-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient scripts the proxy responses for the engine.
type fakeClient struct {
	mu sync.Mutex

	chatFn  func(req *dto.ChatRequest) (*dto.ChatEnvelope, error)
	loginFn func(req *dto.LoginRequest) (*dto.LoginResponse, int, error)

	chatCalls     []*dto.ChatRequest
	createCalls   []*dto.CreateProfileRequest
	feedbackCalls []*dto.FeedbackRequest
}

func (f *fakeClient) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
	f.mu.Lock()
	f.chatCalls = append(f.chatCalls, req)
	fn := f.chatFn
	f.mu.Unlock()
	if fn == nil {
		return &dto.ChatEnvelope{StatusCode: 200, Message: "ok", Data: dto.ChatData{Message: "answer"}}, nil
	}
	return fn(req)
}

func (f *fakeClient) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.CreateProfileResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	return &dto.CreateProfileResponse{Success: true}, nil
}

func (f *fakeClient) RecordFeedback(ctx context.Context, req *dto.FeedbackRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbackCalls = append(f.feedbackCalls, req)
	return nil
}

func (f *fakeClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, int, error) {
	if f.loginFn == nil {
		return nil, 500, errors.New("not scripted")
	}
	return f.loginFn(req)
}

func (f *fakeClient) chatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chatCalls)
}

// fakeStore is an in-memory ProfileStore + TranscriptStore.
type fakeStore struct {
	mu          sync.Mutex
	profile     *UserProfile
	transcripts map[string][]Message
	saveErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{transcripts: make(map[string][]Message)}
}

func (s *fakeStore) Load() (*UserProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, false, nil
	}
	p := *s.profile
	return &p, true, nil
}

func (s *fakeStore) Save(profile *UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	p := *profile
	s.profile = &p
	return nil
}

func (s *fakeStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	return nil
}

func (s *fakeStore) SaveTranscript(sessionID string, messages []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[sessionID] = messages
	return nil
}

func (s *fakeStore) LoadTranscript(sessionID string) ([]Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.transcripts[sessionID]
	return msgs, ok, nil
}

func newTestEngine(client *fakeClient, store *fakeStore) *Engine {
	return NewEngine(client, store, store, nil, nil, Config{})
}

func TestSendMessageAppendsOnePairPerSend(t *testing.T) {
	client := &fakeClient{}
	n := 0
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		n++
		return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{Message: fmt.Sprintf("answer %d", n)}}, nil
	}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	engine.SendMessage(ctx, "one")
	engine.SendMessage(ctx, "two")
	engine.SendMessage(ctx, "three")

	messages := engine.Messages()
	require.Len(t, messages, 6)
	assert.Equal(t, []string{"one", "answer 1", "two", "answer 2", "three", "answer 3"},
		[]string{messages[0].Text, messages[1].Text, messages[2].Text, messages[3].Text, messages[4].Text, messages[5].Text})
	for i, msg := range messages {
		if i%2 == 0 {
			assert.Equal(t, SenderUser, msg.Sender)
		} else {
			assert.Equal(t, SenderBot, msg.Sender)
		}
		assert.NotEmpty(t, msg.Id)
	}
	assert.False(t, engine.Sending())
}

func TestSendMessageWhitespaceIsNoOp(t *testing.T) {
	client := &fakeClient{}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	engine.SendMessage(ctx, "")
	engine.SendMessage(ctx, "   ")

	assert.Empty(t, engine.Messages())
	assert.False(t, engine.Sending())
	assert.Zero(t, client.chatCount())
}

func TestSendMessageGuardRejectsOverlap(t *testing.T) {
	release := make(chan struct{})
	client := &fakeClient{}
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		<-release
		return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{Message: "late answer"}}, nil
	}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		engine.SendMessage(ctx, "first")
		close(done)
	}()

	require.Eventually(t, engine.Sending, time.Second, time.Millisecond)

	// Overlapping send is rejected silently: no user-turn duplicate
	engine.SendMessage(ctx, "second")
	assert.Len(t, engine.Messages(), 1)

	close(release)
	<-done
	messages := engine.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "late answer", messages[1].Text)
}

func TestSendMessageFailureAppendsApologyAndClearsFollowups(t *testing.T) {
	client := &fakeClient{}
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		if req.Question == "boom" {
			return nil, errors.New("backend down")
		}
		return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{
			Message:          "fine",
			RelatedQuestions: []string{"follow up?"},
		}}, nil
	}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	engine.SendMessage(ctx, "hello")
	require.Len(t, engine.Followups(), 1)

	engine.SendMessage(ctx, "boom")

	messages := engine.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, SenderBot, messages[3].Sender)
	assert.Equal(t, apologyText, messages[3].Text)
	assert.Empty(t, engine.Followups())
	assert.False(t, engine.Sending())
}

func TestGiveFeedbackPublishesRecordAndAppendsAck(t *testing.T) {
	client := &fakeClient{}
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		if req.FeedbackContext != nil {
			return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{Message: "glad it helped"}}, nil
		}
		return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{Message: "answer"}}, nil
	}
	store := newFakeStore()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ctx := context.Background()
	records, err := pubSub.Subscribe(ctx, FeedbackTopic)
	require.NoError(t, err)

	engine := NewEngine(client, store, store, pubSub, nil, Config{})
	engine.SendMessage(ctx, "hello")

	messages := engine.Messages()
	require.Len(t, messages, 2)
	target := messages[1]

	engine.GiveFeedback(ctx, target.Id, "positive")

	after := engine.Messages()
	require.Len(t, after, 3)
	assert.Equal(t, target, after[1], "feedback must never mutate its target")
	assert.Equal(t, "glad it helped", after[2].Text)
	assert.Equal(t, SenderBot, after[2].Sender)

	select {
	case msg := <-records:
		var record dto.FeedbackRequest
		require.NoError(t, json.Unmarshal(msg.Payload, &record))
		assert.Equal(t, target.Id, record.MessageId)
		assert.Equal(t, "positive", record.FeedbackType)
		assert.Equal(t, engine.SessionID(), record.SessionId)
		assert.Contains(t, record.ConversationContext, "user: hello")
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no feedback record published")
	}
}

func TestGiveFeedbackFallsBackOnAckFailure(t *testing.T) {
	client := &fakeClient{}
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		if req.FeedbackContext != nil {
			return nil, errors.New("backend down")
		}
		return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{Message: "answer"}}, nil
	}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	engine.SendMessage(ctx, "hello")
	target := engine.Messages()[1]

	engine.GiveFeedback(ctx, target.Id, "report")

	messages := engine.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, feedbackFallbacks["report"], messages[2].Text)
}

func TestGiveFeedbackUnknownKindIsNoOp(t *testing.T) {
	client := &fakeClient{}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	engine.SendMessage(ctx, "hello")
	engine.GiveFeedback(ctx, engine.Messages()[1].Id, "meh")

	assert.Len(t, engine.Messages(), 2)
	assert.Equal(t, 1, client.chatCount())
}

func TestSaveProfileRejectsPasswordMismatchBeforeAnyCall(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	engine := newTestEngine(client, store)

	err := engine.SaveProfile(context.Background(), UserProfile{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "abc",
	}, "xyz", false)

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Nil(t, engine.Profile())
	assert.Empty(t, client.createCalls)
	_, ok, _ := store.Load()
	assert.False(t, ok)
}

func TestSaveProfileRejectsShortPassword(t *testing.T) {
	client := &fakeClient{}
	engine := newTestEngine(client, newFakeStore())

	err := engine.SaveProfile(context.Background(), UserProfile{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "abcd",
	}, "abcd", false)

	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Empty(t, client.createCalls)
}

func TestSaveProfilePersistsAndRegistersEmailedProfile(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	engine := newTestEngine(client, store)

	err := engine.SaveProfile(context.Background(), UserProfile{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "secret1",
	}, "secret1", false)

	require.NoError(t, err)
	require.NotNil(t, engine.Profile())
	assert.Equal(t, "Priya", engine.Profile().Name)

	stored, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *engine.Profile(), *stored)

	require.Len(t, client.createCalls, 1)
	assert.Equal(t, engine.SessionID(), client.createCalls[0].SessionId)
}

func TestSaveProfileStorageFailureKeepsInMemoryProfile(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	engine := newTestEngine(client, store)

	err := engine.SaveProfile(context.Background(), UserProfile{Name: "Priya"}, "", false)

	require.NoError(t, err)
	require.NotNil(t, engine.Profile())
}

func TestSkillRecommendationFlowAppendsWelcomeThenJobs(t *testing.T) {
	client := &fakeClient{}
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		return &dto.ChatEnvelope{StatusCode: 200, Data: dto.ChatData{Message: "here are some roles"}}, nil
	}
	engine := newTestEngine(client, newFakeStore())

	err := engine.SaveProfile(context.Background(), UserProfile{Name: "Priya", Skills: "React"}, "", false)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(engine.Messages()) == 2
	}, time.Second, time.Millisecond)

	messages := engine.Messages()
	assert.Equal(t, welcomeText("Priya", "React"), messages[0].Text)
	assert.Equal(t, "here are some roles", messages[1].Text)
	assert.Equal(t, SenderBot, messages[0].Sender)
	assert.Equal(t, SenderBot, messages[1].Sender)

	require.Len(t, client.chatCalls, 1)
	assert.Equal(t, skillQuestion("React", ""), client.chatCalls[0].Question)
}

func TestSkillRecommendationFallbackOnFailure(t *testing.T) {
	client := &fakeClient{}
	client.chatFn = func(req *dto.ChatRequest) (*dto.ChatEnvelope, error) {
		return nil, errors.New("backend down")
	}
	engine := newTestEngine(client, newFakeStore())

	require.NoError(t, engine.SaveProfile(context.Background(), UserProfile{Name: "Priya", Skills: "Go"}, "", false))

	require.Eventually(t, func() bool {
		return len(engine.Messages()) == 2
	}, time.Second, time.Millisecond)

	messages := engine.Messages()
	assert.Equal(t, welcomeText("Priya", "Go"), messages[0].Text)
	assert.Equal(t, welcomeFallbackText("Priya"), messages[1].Text)
}

func TestSkillRecommendationSkippedWhenTranscriptNotEmpty(t *testing.T) {
	client := &fakeClient{}
	engine := newTestEngine(client, newFakeStore())
	ctx := context.Background()

	engine.SendMessage(ctx, "hello")
	require.NoError(t, engine.SaveProfile(ctx, UserProfile{Name: "Priya", Skills: "React"}, "", false))

	// Nothing scheduled: transcript stays at the original exchange
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, engine.Messages(), 2)
}

func TestLoginAccountNotFound(t *testing.T) {
	client := &fakeClient{}
	client.loginFn = func(req *dto.LoginRequest) (*dto.LoginResponse, int, error) {
		return &dto.LoginResponse{Success: false}, 404, nil
	}
	store := newFakeStore()
	engine := newTestEngine(client, store)

	err := engine.Login(context.Background(), "a@b.com", "x")

	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Empty(t, engine.Messages())
	assert.Nil(t, engine.Profile())
	_, ok, _ := store.Load()
	assert.False(t, ok)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := &fakeClient{}
	client.loginFn = func(req *dto.LoginRequest) (*dto.LoginResponse, int, error) {
		return &dto.LoginResponse{Success: false}, 401, nil
	}
	engine := newTestEngine(client, newFakeStore())

	assert.ErrorIs(t, engine.Login(context.Background(), "a@b.com", "bad"), ErrInvalidCredentials)
}

func TestLoginMissingFields(t *testing.T) {
	client := &fakeClient{}
	engine := newTestEngine(client, newFakeStore())

	assert.ErrorIs(t, engine.Login(context.Background(), "  ", "x"), ErrMissingCredentials)
	assert.ErrorIs(t, engine.Login(context.Background(), "a@b.com", ""), ErrMissingCredentials)
}

func TestLoginSuccessInstallsProfile(t *testing.T) {
	client := &fakeClient{}
	client.loginFn = func(req *dto.LoginRequest) (*dto.LoginResponse, int, error) {
		return &dto.LoginResponse{
			Success: true,
			Profile: &dto.UserProfileDTO{Name: "Priya", Email: "priya@example.com"},
		}, 200, nil
	}
	store := newFakeStore()
	engine := newTestEngine(client, store)

	require.NoError(t, engine.Login(context.Background(), "priya@example.com", "secret1"))

	assert.True(t, engine.LoggedIn())
	require.NotNil(t, engine.Profile())
	assert.Equal(t, "Priya", engine.Profile().Name)
	_, ok, _ := store.Load()
	assert.True(t, ok)
	// Login never re-registers the profile
	assert.Empty(t, client.createCalls)
}

func TestSelectSuggestionSends(t *testing.T) {
	client := &fakeClient{}
	engine := newTestEngine(client, newFakeStore())

	engine.SelectSuggestion(context.Background(), "What career events are happening this month?")

	messages := engine.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "What career events are happening this month?", messages[0].Text)
	assert.Empty(t, engine.Input())
}

func TestResetDiscardsTranscriptAndSessionIdentity(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	engine := newTestEngine(client, store)
	ctx := context.Background()

	require.NoError(t, engine.SaveProfile(ctx, UserProfile{Name: "Priya"}, "", false))
	engine.SendMessage(ctx, "hello")
	oldSession := engine.SessionID()

	engine.Reset()

	assert.Empty(t, engine.Messages())
	assert.NotEqual(t, oldSession, engine.SessionID())
	// Stored profile survives a reset
	_, ok, _ := store.Load()
	assert.True(t, ok)
}

func TestExitSessionClearsStoredProfile(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	engine := newTestEngine(client, store)

	require.NoError(t, engine.SaveProfile(context.Background(), UserProfile{Name: "Priya"}, "", false))
	engine.ExitSession()

	assert.Nil(t, engine.Profile())
	_, ok, _ := store.Load()
	assert.False(t, ok)
}

func TestTranscriptMirroredOnlyForEmailedProfiles(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	engine := newTestEngine(client, store)
	ctx := context.Background()

	engine.SendMessage(ctx, "anonymous question")
	_, ok, _ := store.LoadTranscript(engine.SessionID())
	assert.False(t, ok, "anonymous sessions are not mirrored")

	require.NoError(t, engine.SaveProfile(ctx, UserProfile{Name: "Priya", Email: "priya@example.com"}, "", false))
	engine.SendMessage(ctx, "second question")

	mirrored, ok, _ := store.LoadTranscript(engine.SessionID())
	require.True(t, ok)
	assert.Len(t, mirrored, 4)
}

func TestBootstrapLoadsStoredProfile(t *testing.T) {
	client := &fakeClient{}
	store := newFakeStore()
	store.profile = &UserProfile{Name: "Priya", Skills: "React"}
	engine := newTestEngine(client, store)

	engine.Bootstrap(context.Background())

	require.NotNil(t, engine.Profile())
	assert.Equal(t, "Priya", engine.Profile().Name)
	// Returning user with skills gets the recommendation flow
	require.Eventually(t, func() bool {
		return len(engine.Messages()) == 2
	}, time.Second, time.Millisecond)
}
