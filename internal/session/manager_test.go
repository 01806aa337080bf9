package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/llm"
	"github.com/andriy/career-mentor/internal/types"
)

// fakeChat replays scripted replies in order. A nil error and non-empty
// reply means success; errs[i] overrides the reply at step i.
type fakeChat struct {
	replies []string
	errs    []error
	sent    []string
}

func (f *fakeChat) Send(_ context.Context, text string) (string, error) {
	i := len(f.sent)
	f.sent = append(f.sent, text)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

type fakeClient struct {
	chat       *fakeChat
	lastSystem string
	lastPrior  []llm.ChatTurn
	lastTier   llm.ModelTier
}

func (f *fakeClient) GenerateContent(context.Context, string, string, llm.ModelTier, float32) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeClient) GenerateJSON(context.Context, string, string, llm.ModelTier) (*llm.JSONResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) StartChat(system string, prior []llm.ChatTurn, tier llm.ModelTier) llm.ChatSession {
	f.lastSystem = system
	f.lastPrior = prior
	f.lastTier = tier
	return f.chat
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func testProfile() *types.Profile {
	return &types.Profile{
		Name:       "Andriy",
		Email:      "andriy@example.com",
		BioSummary: "Junior QA engineer, strong in manual testing.",
		Onboarded:  true,
	}
}

func TestCreate_InterviewOpening(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"Добрий день! Розкажіть про себе."}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, llm.TierAdvanced, client.lastTier)

	// Only the assistant reply is recorded; the hidden opening message is not.
	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, types.SpeakerAssistant, transcript[0].Speaker)
	assert.Equal(t, "Добрий день! Розкажіть про себе.", transcript[0].Text)

	require.Len(t, client.chat.sent, 1)
	assert.Contains(t, client.chat.sent[0], "Привіт")
}

func TestCreate_IntakeOpeningUsesProfile(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"Welcome!"}}}
	m := NewManager(client, zap.NewNop())

	_, err := m.Create(context.Background(), KindIntake, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	assert.Equal(t, llm.TierStandard, client.lastTier)
	require.Len(t, client.chat.sent, 1)
	assert.Contains(t, client.chat.sent[0], "Hi, I am Andriy")
	assert.Contains(t, client.chat.sent[0], "andriy@example.com")
}

func TestCreate_OpeningFailureRecordsFallback(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{errs: []error{errors.New("boom")}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	require.NotNil(t, s)
	assert.Equal(t, StateUninitialized, s.State())

	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, TurnFallback, transcript[0].Text)
}

func TestCreate_ResumeSeedsPriorTurns(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{}}
	m := NewManager(client, zap.NewNop())

	prior := types.Transcript{
		types.AssistantTurn("Розкажіть про проєкт."),
		types.UserTurn("Я робив бота для Telegram."),
	}

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, prior)
	require.NoError(t, err)

	assert.Equal(t, StateActive, s.State())
	assert.Empty(t, client.chat.sent, "resume must not run the opening exchange")

	require.Len(t, client.lastPrior, 2)
	assert.Equal(t, "model", client.lastPrior[0].Role)
	assert.Equal(t, "user", client.lastPrior[1].Role)

	assert.Equal(t, prior, s.Transcript())
}

func TestCreate_SystemContextIncludesProfileBio(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"ok"}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	assert.Contains(t, s.SystemContext(), "Junior QA engineer")
	assert.Contains(t, client.lastSystem, "Junior QA engineer")
}

func TestSendTurn_BalancedTranscript(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"ok", "Гарна відповідь."}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	reply, err := s.SendTurn(context.Background(), "Мій досвід: 2 роки тестування.")
	require.NoError(t, err)
	assert.Equal(t, "Гарна відповідь.", reply)

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, types.SpeakerUser, transcript[1].Speaker)
	assert.Equal(t, types.SpeakerAssistant, transcript[2].Speaker)
}

func TestSendTurn_BackendFailureStillGrowsByTwo(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{
		replies: []string{"ok", ""},
		errs:    []error{nil, errors.New("network down")},
	}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	reply, err := s.SendTurn(context.Background(), "hello")

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, TurnFallback, reply)

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, "hello", transcript[1].Text)
	assert.Equal(t, TurnFallback, transcript[2].Text)
}

func TestSendTurn_EmptyReplyFallback(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"ok", "   "}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	reply, err := s.SendTurn(context.Background(), "hm")
	require.NoError(t, err)
	assert.Equal(t, EmptyReplyFallback, reply)
}

func TestSendTurn_EmptyInput(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"ok"}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	_, err = s.SendTurn(context.Background(), "   \n ")
	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)

	assert.Len(t, s.Transcript(), 1, "rejected input must not touch the transcript")
}

func TestSendTurn_TerminatedSession(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"ok"}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Terminate())

	_, err = s.SendTurn(context.Background(), "still there?")
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	// No backend contact after termination.
	assert.Len(t, client.chat.sent, 1)
}

func TestTerminate_Twice(t *testing.T) {
	client := &fakeClient{chat: &fakeChat{replies: []string{"ok"}}}
	m := NewManager(client, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Terminate())
	var stateErr *InvalidStateError
	require.ErrorAs(t, s.Terminate(), &stateErr)
	assert.Equal(t, StateTerminated, s.State())
}

// blockingChat parks the first Send until released, so a second concurrent
// turn can be attempted while one is in flight.
type blockingChat struct {
	release chan struct{}
	entered chan struct{}
	calls   int
}

func (b *blockingChat) Send(_ context.Context, _ string) (string, error) {
	b.calls++
	if b.calls == 1 {
		return "opening", nil
	}
	close(b.entered)
	<-b.release
	return "slow reply", nil
}

type blockingClient struct {
	chat llm.ChatSession
}

func (b *blockingClient) GenerateContent(context.Context, string, string, llm.ModelTier, float32) (string, error) {
	return "", errors.New("not used")
}

func (b *blockingClient) GenerateJSON(context.Context, string, string, llm.ModelTier) (*llm.JSONResult, error) {
	return nil, errors.New("not used")
}

func (b *blockingClient) StartChat(string, []llm.ChatTurn, llm.ModelTier) llm.ChatSession {
	return b.chat
}

func (b *blockingClient) GetModel(llm.ModelTier) string { return "fake" }
func (b *blockingClient) Close() error                  { return nil }

func TestSendTurn_RejectsOverlappingTurn(t *testing.T) {
	chat := &blockingChat{release: make(chan struct{}), entered: make(chan struct{})}
	m := NewManager(&blockingClient{chat: chat}, zap.NewNop())

	s, err := m.Create(context.Background(), KindInterview, testProfile(), bridge.Context{}, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		reply, err := s.SendTurn(context.Background(), "first")
		assert.NoError(t, err)
		assert.Equal(t, "slow reply", reply)
	}()

	<-chat.entered
	_, err = s.SendTurn(context.Background(), "second")
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	close(chat.release)
	<-done

	// The rejected turn left no trace: opening + one exchange only.
	assert.Len(t, s.Transcript(), 3)
}
