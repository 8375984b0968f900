package expert

import (
	"fmt"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/model"
)

// RosterOptions configure roster construction.
type RosterOptions struct {
	// Model is the backend shared by all experts. Required unless
	// ModelFactory is set.
	Model model.Model

	// ModelFactory builds a per-expert backend, overriding Model when set.
	ModelFactory func(def core.ExpertDef) (model.Model, error)

	// Context supplies learner personalization. Defaults to NewContext().
	Context *Context

	// Temperature is the default sampling temperature for all experts.
	Temperature float64

	// Logger defaults to the no-op logger.
	Logger logging.Logger
}

// entry pairs a persona with its probed update strategy.
type entry struct {
	persona  core.Persona
	strategy updateStrategy
}

// Roster is the ordered, immutable set of personas a dispatcher works with.
// Declaration order is preserved; the router depends on it for tie-breaking.
type Roster struct {
	order   []string
	entries map[string]entry
	defs    []core.ExpertDef
	ctx     *Context
	logger  logging.Logger

	// lastSuffix is the personalization block currently carried by the
	// personas, so a context change replaces it instead of stacking a
	// second contradictory block.
	lastSuffix string
}

// NewRoster builds the full catalog into live experts and applies the
// personalization suffix to each, exactly once. A persona whose update
// capability fails keeps its base instructions (the failure is logged, not
// returned).
func NewRoster(optFns ...func(o *RosterOptions)) (*Roster, error) {
	opts := RosterOptions{
		Context:     NewContext(),
		Temperature: 0.2,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Model == nil && opts.ModelFactory == nil {
		return nil, fmt.Errorf("roster requires a model or model factory")
	}
	if opts.Context == nil {
		opts.Context = NewContext()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	defs := Definitions()
	r := &Roster{
		entries: make(map[string]entry, len(defs)),
		defs:    defs,
		ctx:     opts.Context,
		logger:  opts.Logger,
	}

	for _, def := range defs {
		llm := opts.Model
		if opts.ModelFactory != nil {
			var err error
			llm, err = opts.ModelFactory(def)
			if err != nil {
				return nil, fmt.Errorf("model for %s: %w", def.Name, err)
			}
		}
		exp, err := NewExpert(def, llm, opts.Temperature)
		if err != nil {
			return nil, err
		}
		r.add(exp)
	}

	r.Personalize()
	return r, nil
}

// NewRosterFromPersonas builds a roster from pre-built personas, preserving
// argument order. Used by tests to install doubles.
func NewRosterFromPersonas(ctx *Context, logger logging.Logger, personas ...core.Persona) *Roster {
	if ctx == nil {
		ctx = NewContext()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	r := &Roster{
		entries: make(map[string]entry, len(personas)),
		ctx:     ctx,
		logger:  logger,
	}
	for _, p := range personas {
		r.add(p)
	}
	r.Personalize()
	return r
}

func (r *Roster) add(p core.Persona) {
	r.order = append(r.order, p.Name())
	r.entries[p.Name()] = entry{persona: p, strategy: probeUpdateStrategy(p)}
}

// Personalize injects the learner-context suffix into every persona's
// instructions. Idempotent: personas already carrying the current suffix are
// left untouched, and a changed context replaces the previously injected
// block so instructions never accumulate contradictory suffixes.
func (r *Roster) Personalize() {
	suffix := r.ctx.Suffix()
	for _, name := range r.order {
		ent := r.entries[name]
		current := ent.persona.Instructions()
		if strings.HasSuffix(current, suffix) {
			continue
		}
		if r.lastSuffix != "" && strings.HasSuffix(current, r.lastSuffix) {
			current = strings.TrimSpace(strings.TrimSuffix(current, r.lastSuffix))
		}
		updated := strings.TrimSpace(current + "\n\n" + suffix)
		applyInstructions(ent.persona, ent.strategy, updated, r.logger)
	}
	r.lastSuffix = suffix
}

// Find resolves a persona by name.
func (r *Roster) Find(name string) (core.Persona, bool) {
	ent, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return ent.persona, true
}

// Names returns persona names in declaration order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions returns the catalog entries backing this roster in order.
// Empty for rosters built from bare personas.
func (r *Roster) Definitions() []core.ExpertDef {
	out := make([]core.ExpertDef, len(r.defs))
	copy(out, r.defs)
	return out
}

// Context returns the shared learner context.
func (r *Roster) Context() *Context { return r.ctx }

// Len returns the number of personas.
func (r *Roster) Len() int { return len(r.order) }
