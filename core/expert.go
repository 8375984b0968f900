package core

import "context"

// Capability describes a task-specific helper an expert advertises in its
// instructions (e.g. grammar correction, symbolic computation).
type Capability struct {
	Name        string
	Description string
}

// ExpertDef is the static declaration of one subject-expert persona.
// Definitions are immutable after roster construction; only the rendered
// instruction text receives a one-time personalization pass.
//
// Keywords intentionally mix English and Vietnamese terms for the same
// concept so routing works on either input language without a translation
// step. Declaration order is contractual: the router breaks score ties in
// favor of the first-declared expert.
type ExpertDef struct {
	Name         string
	Subject      string
	Keywords     []string
	Description  string
	Expertise    []string
	Extra        string // subject-specific instruction block appended to the template
	Capabilities []Capability
}

// Persona is the runtime persona contract the dispatcher drives. Concrete
// implementations come from the expert package; tests may substitute
// doubles. Optional capabilities (instruction updates, response generation)
// are discovered via interface probing.
type Persona interface {
	Name() string
	Description() string
	Instructions() string
}

// Responder produces one reply given the conversation so far. The group
// chat engine requires personas to implement it; the narrower Persona
// interface exists so roster listings and instruction updates do not.
type Responder interface {
	Respond(ctx context.Context, history []Message) (string, error)
}
