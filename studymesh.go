// Package studymesh provides a high-level façade over the expert roster,
// router, group chat engine and dispatch controller. Most applications
// interact with this package by:
//  1. Creating an App via New() (optionally overriding backend, stores, logger)
//  2. Asking questions via Ask() or serving the HTTP API with server.New(app)
//
// Defaults are safe for local development: in-memory session store, no-op
// logger, and a model backend built from configuration.
package studymesh

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/studymesh/studymesh/config"
	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/dispatch"
	"github.com/studymesh/studymesh/expert"
	"github.com/studymesh/studymesh/groupchat"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/model"
	anthropicmodel "github.com/studymesh/studymesh/model/anthropic"
	openaimodel "github.com/studymesh/studymesh/model/openai"
	"github.com/studymesh/studymesh/router"
	"github.com/studymesh/studymesh/server"
	"github.com/studymesh/studymesh/session"
	"github.com/studymesh/studymesh/termination"
)

// Options configures the App.
type Options struct {
	// Settings default to config defaults when nil.
	Settings *config.Settings

	// Model overrides the backend built from Settings. Useful for tests.
	Model model.Model

	// SessionStore defaults to an in-memory implementation.
	SessionStore core.SessionStore

	// Context seeds learner personalization for all sessions.
	Context map[string]string

	// Logger defaults to the no-op logger.
	Logger logging.Logger
}

// App is the assembled learning assistant.
type App struct {
	opts     Options
	settings *config.Settings
	logger   logging.Logger
	store    core.SessionStore
	detector *termination.Detector

	mu        sync.Mutex
	pipelines map[pipelineKey]*pipeline
}

// pipeline is one roster + engine + controller assembly bound to a specific
// backend model and temperature.
type pipeline struct {
	roster     *expert.Roster
	controller *dispatch.Controller
}

type pipelineKey struct {
	model       string
	temperature float64
	context     string
}

// contextKey canonicalizes a personalization overlay for cache keying.
func contextKey(ctx map[string]string) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(ctx[k])
		sb.WriteByte(';')
	}
	return sb.String()
}

// New creates an App with optional overrides.
func New(optFns ...func(o *Options)) (*App, error) {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Settings == nil {
		settings, err := config.Load("")
		if err != nil {
			return nil, err
		}
		opts.Settings = settings
	}
	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	app := &App{
		opts:      opts,
		settings:  opts.Settings,
		logger:    opts.Logger,
		store:     opts.SessionStore,
		detector:  termination.New(),
		pipelines: make(map[pipelineKey]*pipeline),
	}

	// Build the default pipeline eagerly so configuration problems surface
	// at startup, not on the first request.
	if _, err := app.pipelineFor("", 0, nil); err != nil {
		return nil, err
	}
	return app, nil
}

// Ask runs one learner turn against the default pipeline.
func (a *App) Ask(ctx context.Context, message string) (*dispatch.Result, error) {
	p, err := a.pipelineFor("", 0, nil)
	if err != nil {
		return nil, err
	}
	return p.controller.Run(ctx, dispatch.Request{Message: message})
}

// Chat implements server.ChatService.
func (a *App) Chat(ctx context.Context, req server.ChatRequest) (server.ChatResponse, error) {
	p, err := a.pipelineFor(req.Model, req.Temperature, req.Context)
	if err != nil {
		return server.ChatResponse{}, err
	}
	res, err := p.controller.Run(ctx, dispatch.Request{
		SessionID: req.SessionID,
		Message:   req.Message,
		MaxRounds: req.MaxRounds,
	})
	if err != nil {
		return server.ChatResponse{}, err
	}
	return server.ChatResponse{
		Result:    res.Answer,
		SessionID: res.SessionID,
		Status:    string(res.Status),
		Rounds:    res.Rounds,
	}, nil
}

// Agents implements server.ChatService.
func (a *App) Agents() []server.AgentInfo {
	defs := expert.Definitions()
	out := make([]server.AgentInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, server.AgentInfo{
			Name:        def.Name,
			Subject:     def.Subject,
			Description: def.Description,
		})
	}
	return out
}

// pipelineFor returns the cached pipeline for a model/temperature/context
// override, building it on first use. Empty model, zero temperature and nil
// context select the configured defaults. Requests carrying a
// personalization overlay get an isolated roster: personalization is
// injected once at roster construction and the shared pipelines are never
// mutated mid-request.
func (a *App) pipelineFor(modelName string, temperature float64, reqContext map[string]string) (*pipeline, error) {
	if temperature <= 0 {
		temperature = a.settings.Temperature
	}
	key := pipelineKey{model: modelName, temperature: temperature, context: contextKey(reqContext)}

	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.pipelines[key]; ok {
		return p, nil
	}

	backend := a.opts.Model
	if backend == nil {
		var err error
		backend, err = a.newBackend(modelName)
		if err != nil {
			return nil, err
		}
	}

	roster, err := expert.NewRoster(func(o *expert.RosterOptions) {
		o.Model = backend
		o.Temperature = temperature
		o.Logger = a.logger
		ctx := expert.NewContext()
		ctx.Merge(a.opts.Context)
		ctx.Merge(reqContext)
		o.Context = ctx
	})
	if err != nil {
		return nil, err
	}

	rt := router.New(roster.Definitions())
	engine := groupchat.New(roster, func(o *groupchat.Options) {
		o.Router = rt
		o.Store = a.store
		o.Logger = a.logger
	})
	controller := dispatch.NewController(roster, engine, a.store, rt, func(o *dispatch.Options) {
		o.HardCeiling = a.settings.MaxChatRounds
		o.DefaultMaxRounds = a.settings.DefaultMaxRounds
		o.Detector = a.detector
		o.Logger = a.logger
	})

	p := &pipeline{roster: roster, controller: controller}
	a.pipelines[key] = p
	return p, nil
}

// newBackend builds a model adapter from settings, honoring a per-request
// model name override.
func (a *App) newBackend(modelName string) (model.Model, error) {
	if modelName == "" {
		modelName = a.settings.DefaultModel
	}
	switch a.settings.Provider {
	case "openai":
		// A base URL override usually points at a keyless local gateway;
		// without one the hosted API always needs credentials.
		if a.settings.APIKey == "" && a.settings.BaseURL == "" {
			return nil, fmt.Errorf("openai provider: %w", core.ErrMissingAPIKey)
		}
		return openaimodel.NewModel(func(o *openaimodel.Options) {
			o.Model = modelName
			o.APIKey = a.settings.APIKey
			o.BaseURL = a.settings.BaseURL
		}), nil
	case "anthropic":
		if a.settings.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider: %w", core.ErrMissingAPIKey)
		}
		return anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			o.Model = anthropic.Model(modelName)
			o.APIKey = a.settings.APIKey
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownProvider, a.settings.Provider)
	}
}
