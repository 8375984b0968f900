package core

import (
	"time"

	"github.com/google/uuid"
)

// SpeakerUser identifies the learner in message and session bookkeeping.
const SpeakerUser = "user"

// Message is one utterance in a session's history. After creation it should
// be treated as immutable; history is append-only.
type Message struct {
	ID        string    `json:"id"`
	Speaker   string    `json:"speaker"` // expert name or SpeakerUser
	Role      string    `json:"role"`    // "user" or "assistant"
	Content   string    `json:"content"`
	Terminal  bool      `json:"terminal"` // set when the termination detector flagged this message
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a learner-authored message.
func NewUserMessage(content string) Message {
	return Message{
		ID:        NewID(),
		Speaker:   SpeakerUser,
		Role:      "user",
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewExpertMessage creates an expert-authored message.
func NewExpertMessage(speaker, content string) Message {
	return Message{
		ID:        NewID(),
		Speaker:   speaker,
		Role:      "assistant",
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewID generates a new unique identifier for messages and sessions.
func NewID() string { return uuid.NewString() }
