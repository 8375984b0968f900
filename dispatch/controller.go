package dispatch

import (
	"context"
	"strings"
	"sync"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/expert"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/router"
	"github.com/studymesh/studymesh/termination"
)

// Request is one learner turn handed to the controller.
type Request struct {
	// SessionID resumes an existing session; empty starts a new one.
	SessionID string

	// Message is the learner's input. Must be non-empty after trimming.
	Message string

	// MaxRounds is the requested per-turn round limit. Zero means the
	// configured default. Values above the hard ceiling are clamped.
	MaxRounds int
}

// Result is the controller's answer for one turn.
type Result struct {
	SessionID string
	Answer    string
	Status    core.Status
	Rounds    int
	Speaker   string
}

// Options configure a Controller.
type Options struct {
	// HardCeiling bounds every turn's round count. Requested limits above
	// it are clamped, never honored.
	HardCeiling int

	// DefaultMaxRounds applies when a request does not set MaxRounds.
	DefaultMaxRounds int

	// DefaultExpert speaks first when the router reports no preference.
	DefaultExpert string

	// Detector defaults to termination.New().
	Detector *termination.Detector

	// Logger defaults to the no-op logger.
	Logger logging.Logger
}

// Controller coordinates one turn at a time per session: validation, first
// speaker selection, engine execution, store commits and status transitions.
type Controller struct {
	roster   *expert.Roster
	engine   core.Engine
	store    core.SessionStore
	router   *router.Router
	detector *termination.Detector
	opts     Options

	// One turn at a time per session; concurrent turns for the same
	// session would interleave history.
	sessionLocks sync.Map
}

// NewController wires the dispatch layer together.
func NewController(roster *expert.Roster, engine core.Engine, store core.SessionStore, rt *router.Router, optFns ...func(o *Options)) *Controller {
	opts := Options{
		HardCeiling:      10,
		DefaultMaxRounds: 8,
		DefaultExpert:    expert.InfoAgentName,
		Detector:         termination.New(),
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Detector == nil {
		opts.Detector = termination.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Controller{
		roster:   roster,
		engine:   engine,
		store:    store,
		router:   rt,
		detector: opts.Detector,
		opts:     opts,
	}
}

// effectiveMaxRounds clamps the requested limit against the hard ceiling.
func (c *Controller) effectiveMaxRounds(requested int) int {
	if requested <= 0 {
		requested = c.opts.DefaultMaxRounds
	}
	if requested > c.opts.HardCeiling {
		return c.opts.HardCeiling
	}
	return requested
}

// Run executes one learner turn. The empty-message check happens before any
// expert or store work. Engine failures surface as errors with the session
// marked ERROR and all previously committed history intact.
func (c *Controller) Run(ctx context.Context, req Request) (*Result, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, core.ErrEmptyMessage
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = core.NewID()
	}

	lock, _ := c.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	sess, err := c.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status.Terminal() {
		c.sessionLocks.Delete(sessionID)
		return nil, core.ErrSessionTerminated
	}

	effective := c.effectiveMaxRounds(req.MaxRounds)
	if err := c.store.SetCeiling(sessionID, effective); err != nil {
		return nil, err
	}

	resume := sess.Len() > 1
	speaker := c.pickSpeaker(sessionID, message, resume)

	userMsg := core.NewUserMessage(message)
	if err := c.store.Append(sessionID, userMsg); err != nil {
		return nil, err
	}
	if err := c.store.SetStatus(sessionID, core.StatusActive); err != nil {
		return nil, err
	}

	c.opts.Logger.Info("turn started",
		"session_id", sessionID, "speaker", speaker,
		"max_rounds", effective, "resume", resume)

	var (
		rounds      int
		terminal    bool
		lastSpeaker string
	)
	onMessage := func(msg core.Message) bool {
		n, err := c.store.IncrementRound(sessionID)
		if err != nil {
			c.opts.Logger.Error("round increment failed", "session_id", sessionID, "error", err)
			n = rounds + 1
		}
		rounds = n
		lastSpeaker = msg.Speaker
		if err := c.store.Append(sessionID, msg); err != nil {
			c.opts.Logger.Error("append message failed", "session_id", sessionID, "error", err)
		}
		if msg.Terminal {
			terminal = true
			return false
		}
		return rounds < effective
	}

	outcome, err := c.runEngine(ctx, core.TurnRequest{
		SessionID:      sessionID,
		Message:        message,
		InitialSpeaker: speaker,
		ClearHistory:   !resume,
		MaxRounds:      effective,
		IsTerminal:     func(m core.Message) bool { return c.detector.Terminal(m.Content) },
		OnMessage:      onMessage,
	})
	if err != nil {
		if serr := c.store.SetStatus(sessionID, core.StatusError); serr != nil {
			c.opts.Logger.Error("status update failed", "session_id", sessionID, "error", serr)
		}
		c.sessionLocks.Delete(sessionID)
		c.opts.Logger.Error("turn failed", "session_id", sessionID, "error", err)
		return nil, err
	}

	// A turn that ends without a termination signal and under the ceiling
	// (an engine can stop early, e.g. waiting for more user input) leaves
	// the session ACTIVE and resumable.
	status := core.StatusActive
	switch {
	case terminal:
		status = core.StatusTerminated
	case rounds >= effective:
		status = core.StatusMaxRoundsReached
	}
	if status != core.StatusActive {
		if err := c.store.SetStatus(sessionID, status); err != nil {
			c.opts.Logger.Error("status update failed", "session_id", sessionID, "error", err)
		}
		// A terminal session accepts no further turns, so its lock entry
		// can go; late arrivals re-create one and fail fast on the status
		// check.
		c.sessionLocks.Delete(sessionID)
	}

	answer := ExtractResult(outcome, c.detector)
	c.opts.Logger.Info("turn finished",
		"session_id", sessionID, "status", string(status),
		"rounds", rounds, "speaker", lastSpeaker)

	return &Result{
		SessionID: sessionID,
		Answer:    answer,
		Status:    status,
		Rounds:    rounds,
		Speaker:   lastSpeaker,
	}, nil
}

// pickSpeaker routes only the opening turn of a session. On resume the prior
// speaker continues so mid-conversation messages ("thanks, and why?") are not
// re-triaged away from the expert already engaged.
func (c *Controller) pickSpeaker(sessionID, message string, resume bool) string {
	if resume {
		if name, ok := c.engine.LastSpeaker(sessionID); ok {
			return name
		}
	}
	if c.router != nil {
		if d := c.router.Route(message); d.Selected != "" {
			return d.Selected
		}
	}
	return c.opts.DefaultExpert
}

// runEngine runs the engine on a worker goroutine so a stuck backend cannot
// outlive the request context.
func (c *Controller) runEngine(ctx context.Context, req core.TurnRequest) (any, error) {
	type engineResult struct {
		outcome any
		err     error
	}
	done := make(chan engineResult, 1)
	go func() {
		outcome, err := c.engine.Run(ctx, req)
		done <- engineResult{outcome: outcome, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.outcome, res.err
	}
}
