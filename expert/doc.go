// Package expert provides the static catalog of subject-expert personas, the
// instruction templating that turns a catalog entry into a system prompt, and
// the roster that binds personas to a model backend.
//
// Instruction personalization is applied exactly once per roster build. The
// update path degrades through capability probing so that a persona without a
// structured update API still gets its instructions patched, or at worst logs
// and keeps its original prompt.
package expert
