package core

import "errors"

// Sentinel errors shared across the dispatch and boundary layers. The server
// maps them to caller-facing responses; everything else stays server-side.
var (
	// ErrEmptyMessage is returned before any expert is invoked when the
	// inbound message is empty or whitespace-only.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrExpertNotFound is returned when a speaker name does not resolve
	// against the roster.
	ErrExpertNotFound = errors.New("expert not found")

	// ErrMissingAPIKey indicates a configuration problem the caller can fix
	// by supplying credentials, as opposed to the backend rejecting them.
	ErrMissingAPIKey = errors.New("missing backend API key")

	// ErrUnknownProvider is returned for a backend provider name with no
	// registered adapter.
	ErrUnknownProvider = errors.New("unknown model provider")

	// ErrSessionTerminated is returned when a request addresses a session
	// that already reached a terminal status.
	ErrSessionTerminated = errors.New("session already terminated")
)
