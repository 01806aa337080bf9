// Package session manages stateful conversations with the generation
// backend: the mock interview and the onboarding intake dialogue.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/llm"
	"github.com/andriy/career-mentor/internal/prompts"
	"github.com/andriy/career-mentor/internal/types"
)

// Kind selects which conversation a session runs.
type Kind string

// Session kinds.
const (
	KindInterview Kind = "interview"
	KindIntake    Kind = "intake"
)

// State is the lifecycle position of a session.
type State string

// Session states. A session starts uninitialized, becomes active after its
// first successful exchange, and is terminated exactly once.
const (
	StateUninitialized State = "uninitialized"
	StateActive        State = "active"
	StateTerminated    State = "terminated"
)

// Fallback texts recorded in place of a missing assistant reply.
const (
	TurnFallback       = "Виникла помилка з'єднання."
	EmptyReplyFallback = "Вибач, я не зрозумів."
)

// interviewOpening is the hidden user message that kicks off a fresh
// interview; only the assistant's reply is recorded.
const interviewOpening = "Привіт. Я готовий. Почни з короткого вступу."

// Manager creates sessions against a shared backend client.
type Manager struct {
	client llm.Client
	log    *zap.Logger
}

// NewManager returns a session manager.
func NewManager(client llm.Client, log *zap.Logger) *Manager {
	return &Manager{client: client, log: log}
}

// Session is one live conversation. The system context is frozen at
// creation; ledger changes made afterwards are not reflected. A session
// processes at most one turn at a time.
type Session struct {
	mu         sync.Mutex
	kind       Kind
	state      State
	system     string
	transcript types.Transcript
	chat       llm.ChatSession
	inFlight   bool
	log        *zap.Logger
}

// Create starts a session of the given kind. For interviews, existing may
// carry a prior transcript to resume; the backend chat is seeded with it
// and no opening exchange runs. For a fresh session the opening exchange
// runs immediately: on backend failure the session is still returned, with
// a fallback assistant turn recorded, alongside a *BackendError.
func (m *Manager) Create(ctx context.Context, kind Kind, profile *types.Profile, bridged bridge.Context, existing types.Transcript) (*Session, error) {
	system, tier, opening := m.compose(kind, profile, bridged)

	s := &Session{
		kind:       kind,
		state:      StateUninitialized,
		system:     system,
		transcript: existing.Clone(),
		log:        m.log,
	}

	if len(s.transcript) > 0 {
		// Resuming: seed the backend with the stored exchange.
		s.chat = m.client.StartChat(system, toChatTurns(s.transcript), tier)
		s.state = StateActive
		return s, nil
	}

	s.chat = m.client.StartChat(system, nil, tier)

	reply, err := s.chat.Send(ctx, opening)
	if err != nil {
		m.log.Warn("opening exchange failed", zap.String("kind", string(kind)), zap.Error(err))
		s.transcript = append(s.transcript, types.AssistantTurn(TurnFallback))
		return s, &BackendError{Cause: err}
	}
	if strings.TrimSpace(reply) == "" {
		reply = EmptyReplyFallback
	}

	s.transcript = append(s.transcript, types.AssistantTurn(reply))
	s.state = StateActive
	return s, nil
}

// compose builds the frozen system context, model tier, and opening
// message for a session kind.
func (m *Manager) compose(kind Kind, profile *types.Profile, bridged bridge.Context) (system string, tier llm.ModelTier, opening string) {
	switch kind {
	case KindIntake:
		system = prompts.MustGet("intake.json", "intake-system")
		tier = llm.TierStandard
		opening = fmt.Sprintf("Hi, I am %s. My email is %s. I want to start my career in IT.", profile.Name, profile.Email)
		return system, tier, opening
	default:
		var b strings.Builder
		b.WriteString(prompts.MustGet("persona.json", "mentor-persona"))
		b.WriteString("\n\n")
		b.WriteString(prompts.MustGet("phases.json", "interview-system"))
		if rendered := bridged.Render(); rendered != "" {
			b.WriteString("\n\n")
			b.WriteString(rendered)
		}
		if profile != nil && profile.BioSummary != "" {
			b.WriteString("\n\n[USER PROFILE]\n")
			b.WriteString(profile.BioSummary)
		}
		return b.String(), llm.TierAdvanced, interviewOpening
	}
}

// SendTurn submits one user message and returns the assistant reply. The
// transcript always grows by exactly two turns: on backend failure or an
// empty reply, a fallback assistant turn is recorded and the reply text is
// the fallback. Concurrent turns are rejected rather than queued.
func (s *Session) SendTurn(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &EmptyInputError{}
	}

	s.mu.Lock()
	if s.state == StateTerminated {
		s.mu.Unlock()
		return "", &InvalidStateError{Op: "send", Message: "session is terminated"}
	}
	if s.inFlight {
		s.mu.Unlock()
		return "", &InvalidStateError{Op: "send", Message: "another turn is in flight"}
	}
	s.inFlight = true
	s.mu.Unlock()

	reply, err := s.chat.Send(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.transcript = append(s.transcript, types.UserTurn(text))

	if err != nil {
		s.log.Warn("turn failed", zap.String("kind", string(s.kind)), zap.Error(err))
		s.transcript = append(s.transcript, types.AssistantTurn(TurnFallback))
		return TurnFallback, &BackendError{Cause: err}
	}
	if strings.TrimSpace(reply) == "" {
		reply = EmptyReplyFallback
	}

	s.transcript = append(s.transcript, types.AssistantTurn(reply))
	s.state = StateActive
	return reply, nil
}

// Terminate ends the session. Terminating twice is an error; the first
// call wins.
func (s *Session) Terminate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return &InvalidStateError{Op: "terminate", Message: "session already terminated"}
	}
	s.state = StateTerminated
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Kind returns the session kind.
func (s *Session) Kind() Kind {
	return s.kind
}

// SystemContext returns the frozen system instruction.
func (s *Session) SystemContext() string {
	return s.system
}

// Transcript returns a copy of the recorded exchange.
func (s *Session) Transcript() types.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Clone()
}

func toChatTurns(t types.Transcript) []llm.ChatTurn {
	turns := make([]llm.ChatTurn, 0, len(t))
	for _, turn := range t {
		turns = append(turns, llm.ChatTurn{Role: string(turn.Speaker), Text: turn.Text})
	}
	return turns
}
