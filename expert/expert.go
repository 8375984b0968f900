package expert

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/model"
)

// Expert is a subject persona bound to a model backend. It implements
// core.Persona, core.Responder and the structured instruction-update
// capability.
type Expert struct {
	def core.ExpertDef
	llm model.Model

	mu           sync.RWMutex
	instructions string
	temperature  float64
}

// NewExpert builds an expert from a catalog definition. The base
// instructions are rendered once; later updates go through
// UpdateInstructions.
func NewExpert(def core.ExpertDef, llm model.Model, temperature float64) (*Expert, error) {
	instructions, err := BuildInstructions(def)
	if err != nil {
		return nil, err
	}
	return &Expert{
		def:          def,
		llm:          llm,
		instructions: instructions,
		temperature:  temperature,
	}, nil
}

// Name implements core.Persona.
func (e *Expert) Name() string { return e.def.Name }

// Description implements core.Persona.
func (e *Expert) Description() string { return e.def.Description }

// Definition returns a copy of the catalog entry backing this expert.
func (e *Expert) Definition() core.ExpertDef { return e.def }

// Instructions implements core.Persona.
func (e *Expert) Instructions() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.instructions
}

// UpdateInstructions implements the structured update capability: it
// replaces the instruction text wholesale.
func (e *Expert) UpdateInstructions(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("expert %s: empty instructions", e.def.Name)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instructions = text
	return nil
}

// Respond implements core.Responder by driving one completion against the
// bound model with the current instructions and the session history.
func (e *Expert) Respond(ctx context.Context, history []core.Message) (string, error) {
	e.mu.RLock()
	instructions := e.instructions
	temperature := e.temperature
	e.mu.RUnlock()

	resp, err := e.llm.Generate(ctx, model.Request{
		Instructions: instructions,
		Messages:     history,
		Temperature:  temperature,
	})
	if err != nil {
		return "", fmt.Errorf("expert %s: %w", e.def.Name, err)
	}
	return resp.Content, nil
}
