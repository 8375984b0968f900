// Package groupchat implements the turn-taking engine that lets roster
// personas collaborate on one learner query. Speaker hand-off between rounds
// uses the shared keyword router on the latest reply, with a cycling fallback
// so the same persona does not speak twice in a row by default.
package groupchat

import (
	"context"
	"fmt"
	"sync"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/expert"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/router"
)

// Options configure a Chat engine.
type Options struct {
	// Router picks the next speaker from a reply's content. Optional; the
	// engine falls back to pure cycling without it.
	Router *router.Router

	// Store persists per-session history used when a request resumes
	// without clearing. Optional.
	Store core.SessionStore

	// Logger defaults to the no-op logger.
	Logger logging.Logger
}

// Chat coordinates a bounded exchange between roster personas. It implements
// core.Engine.
type Chat struct {
	roster *expert.Roster
	opts   Options

	mu           sync.RWMutex
	lastSpeakers map[string]string
}

// New constructs a Chat over the given roster.
func New(roster *expert.Roster, optFns ...func(o *Options)) *Chat {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Chat{
		roster:       roster,
		opts:         opts,
		lastSpeakers: make(map[string]string),
	}
}

// Outcome is the structured result of one engine run.
type Outcome struct {
	summary string
	history []core.Message
}

// Summary returns the content of the last expert message of the run.
func (o *Outcome) Summary() string { return o.summary }

// History returns the messages produced during the run, oldest first.
func (o *Outcome) History() []core.Message {
	out := make([]core.Message, len(o.history))
	copy(out, o.history)
	return out
}

// Run implements core.Engine. It loops expert turns until the round ceiling,
// a terminal message, or the observer stops it. The returned value is always
// an *Outcome; errors from a persona abort the run with the partial history
// discarded (committed history lives in the caller's store, not here).
func (c *Chat) Run(ctx context.Context, req core.TurnRequest) (any, error) {
	speaker := req.InitialSpeaker
	if speaker == "" {
		names := c.roster.Names()
		if len(names) == 0 {
			return nil, fmt.Errorf("empty roster")
		}
		speaker = names[0]
	}

	history := c.priorHistory(req)
	history = append(history, core.NewUserMessage(req.Message))

	outcome := &Outcome{}
	for round := 0; round < req.MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		persona, ok := c.roster.Find(speaker)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrExpertNotFound, speaker)
		}
		responder, ok := persona.(core.Responder)
		if !ok {
			return nil, fmt.Errorf("persona %s cannot respond", speaker)
		}

		content, err := responder.Respond(ctx, history)
		if err != nil {
			return nil, err
		}

		msg := core.NewExpertMessage(speaker, content)
		if req.IsTerminal != nil && req.IsTerminal(msg) {
			msg.Terminal = true
		}

		history = append(history, msg)
		outcome.history = append(outcome.history, msg)
		outcome.summary = msg.Content
		c.recordSpeaker(req.SessionID, speaker)

		c.opts.Logger.Debug("expert turn complete",
			"session_id", req.SessionID, "speaker", speaker, "round", round+1,
			"terminal", msg.Terminal)

		if req.OnMessage != nil && !req.OnMessage(msg) {
			return outcome, nil
		}
		if msg.Terminal {
			return outcome, nil
		}

		speaker = c.nextSpeaker(speaker, msg.Content)
	}
	return outcome, nil
}

// LastSpeaker implements core.Engine.
func (c *Chat) LastSpeaker(sessionID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.lastSpeakers[sessionID]
	return name, ok
}

func (c *Chat) recordSpeaker(sessionID, name string) {
	if sessionID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSpeakers[sessionID] = name
}

// priorHistory loads committed session history when the request resumes an
// existing exchange.
func (c *Chat) priorHistory(req core.TurnRequest) []core.Message {
	if req.ClearHistory || c.opts.Store == nil || req.SessionID == "" {
		return nil
	}
	sess, err := c.opts.Store.Get(req.SessionID)
	if err != nil {
		c.opts.Logger.Warn("load session history failed",
			"session_id", req.SessionID, "error", err)
		return nil
	}
	return sess.History()
}

// nextSpeaker routes the latest reply's content; when routing yields the
// current speaker or no preference, it cycles to the next roster entry so
// conversations never stall on a single persona.
func (c *Chat) nextSpeaker(current, content string) string {
	if c.opts.Router != nil {
		if d := c.opts.Router.Route(content); d.Selected != "" && d.Selected != current {
			return d.Selected
		}
	}
	names := c.roster.Names()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
