package core

import "context"

// TurnRequest configures one bounded run of the conversational engine.
//
// MaxRounds is an explicit per-call ceiling; the engine must stop after that
// many expert messages regardless of its own notion of progress. IsTerminal
// is the per-recipient termination predicate the engine consults after every
// produced message. OnMessage is an observer hook; returning false stops the
// exchange after the current message.
type TurnRequest struct {
	SessionID      string
	Message        string
	InitialSpeaker string
	ClearHistory   bool
	MaxRounds      int
	Temperature    float64
	IsTerminal     func(Message) bool
	OnMessage      func(Message) bool
}

// Engine is the turn-taking collaborator contract. The dispatch layer
// configures and queries an Engine but never reimplements its mechanics.
//
// Run returns an opaque outcome value: implementations may return a plain
// string, or a structured value exposing Summary()/History() accessors. The
// result extractor normalizes all of these shapes.
type Engine interface {
	Run(ctx context.Context, req TurnRequest) (any, error)

	// LastSpeaker reports the engine's own bookkeeping of who spoke last in
	// the given session. Used on resume so the dispatcher does not re-route
	// mid-conversation.
	LastSpeaker(sessionID string) (string, bool)
}
