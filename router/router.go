// Package router implements keyword-overlap triage of incoming messages
// against the expert roster. It is the single canonical routing table; every
// call site that needs a subject decision goes through it.
//
// The router is a best-effort heuristic, not intent understanding. It only
// picks the first speaker of a session; once a conversation is underway the
// dispatcher resumes with the prior speaker instead of re-routing.
package router

import (
	"strings"

	"github.com/studymesh/studymesh/core"
)

// Decision is the outcome of routing one message.
type Decision struct {
	// Selected is the winning expert name, or "" when no keyword matched.
	Selected string

	// Scores holds the nonzero per-expert keyword counts.
	Scores map[string]int

	// TieBreak is set when more than one expert shared the top score and
	// declaration order decided.
	TieBreak bool
}

// profile is one expert's routing entry.
type profile struct {
	name     string
	keywords []string
}

// Router scores messages against keyword profiles in roster declaration
// order. Immutable after construction.
type Router struct {
	profiles []profile
}

// New builds a router from catalog definitions. Keywords are lowercased once
// here so Route only lowercases the message.
func New(defs []core.ExpertDef) *Router {
	profiles := make([]profile, 0, len(defs))
	for _, def := range defs {
		kws := make([]string, 0, len(def.Keywords))
		for _, kw := range def.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		profiles = append(profiles, profile{name: def.Name, keywords: kws})
	}
	return &Router{profiles: profiles}
}

// Route scores the message against every profile. Each keyword contained in
// the lowercased message contributes one point regardless of repetition. The
// strictly greatest nonzero score wins; on a tie the first-declared expert
// wins. A zero top score means no preference and Selected stays empty.
func (r *Router) Route(message string) Decision {
	lower := strings.ToLower(message)
	decision := Decision{Scores: make(map[string]int)}

	best := 0
	tied := false
	for _, p := range r.profiles {
		score := 0
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		decision.Scores[p.name] = score
		switch {
		case score > best:
			best = score
			decision.Selected = p.name
			tied = false
		case score == best:
			tied = true
		}
	}
	decision.TieBreak = tied && decision.Selected != ""
	return decision
}
