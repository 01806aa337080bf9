package types

// Speaker identifies who produced a conversation turn. The values match
// the role names the generation backend expects for seeded chat history.
type Speaker string

// Speaker constants for the two sides of a conversation.
const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "model"
)

// ConversationTurn is a single utterance in a transcript.
type ConversationTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Transcript is an ordered, append-only sequence of conversation turns.
// A transcript is owned by exactly one session for that session's lifetime.
type Transcript []ConversationTurn

// Clone returns an independent copy of the transcript.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// UserTurn builds a user-side turn.
func UserTurn(text string) ConversationTurn {
	return ConversationTurn{Speaker: SpeakerUser, Text: text}
}

// AssistantTurn builds an assistant-side turn.
func AssistantTurn(text string) ConversationTurn {
	return ConversationTurn{Speaker: SpeakerAssistant, Text: text}
}
