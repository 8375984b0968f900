package expert

import (
	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
)

// StructuredUpdater is the preferred instruction-update capability: the
// persona accepts replacement instruction text directly.
type StructuredUpdater interface {
	UpdateInstructions(text string) error
}

// InstructionUpdate wraps an instruction change for personas that take a
// structured envelope instead of plain text.
type InstructionUpdate struct {
	Content string
}

// WrappedUpdater is the second-preference capability.
type WrappedUpdater interface {
	ApplyInstructionUpdate(u InstructionUpdate) error
}

// InstructionSetter is the lowest-level capability: direct field-style
// assignment with no validation and no error reporting.
type InstructionSetter interface {
	SetInstructions(text string)
}

// updateStrategy records which capability a persona supports. Probing runs
// once at roster construction, not per update.
type updateStrategy int

const (
	updateNone updateStrategy = iota
	updateStructured
	updateWrapped
	updateSetter
)

// probeUpdateStrategy discovers the best available update capability.
func probeUpdateStrategy(p core.Persona) updateStrategy {
	switch p.(type) {
	case StructuredUpdater:
		return updateStructured
	case WrappedUpdater:
		return updateWrapped
	case InstructionSetter:
		return updateSetter
	default:
		return updateNone
	}
}

// applyInstructions pushes new instruction text to a persona through its
// probed capability. Failure is logged and absorbed: a persona that cannot
// be updated keeps serving with its previous instructions rather than
// aborting the session.
func applyInstructions(p core.Persona, strategy updateStrategy, text string, logger logging.Logger) {
	var err error
	switch strategy {
	case updateStructured:
		err = p.(StructuredUpdater).UpdateInstructions(text)
	case updateWrapped:
		err = p.(WrappedUpdater).ApplyInstructionUpdate(InstructionUpdate{Content: text})
	case updateSetter:
		p.(InstructionSetter).SetInstructions(text)
	case updateNone:
		logger.Warn("no instruction update capability; skipping", "expert", p.Name())
		return
	}
	if err != nil {
		logger.Warn("instruction update failed; keeping previous instructions",
			"expert", p.Name(), "error", err)
	}
}
