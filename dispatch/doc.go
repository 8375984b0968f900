// Package dispatch is the session orchestration layer: it validates learner
// requests, picks the first speaker, configures and runs the group chat
// engine under a round ceiling, commits history and status transitions to the
// session store, and normalizes whatever the engine returns into a clean,
// user-facing result string.
package dispatch
