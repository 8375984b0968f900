// Package server exposes the chat dispatcher over HTTP. The surface is
// deliberately small: one chat endpoint, a roster listing, and a health
// probe. Backend failures are classified into caller-fixable (400/401) and
// generic upstream errors; internal detail is logged, never echoed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
)

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	Message     string            `json:"message"`
	SessionID   string            `json:"session_id,omitempty"`
	Model       string            `json:"model,omitempty"`
	MaxRounds   int               `json:"max_rounds,omitempty"`
	Temperature float64           `json:"temperature,omitempty"`
	Context     map[string]string `json:"context,omitempty"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Result    string `json:"result"`
	SessionID string `json:"session_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Rounds    int    `json:"rounds,omitempty"`
}

// AgentInfo describes one roster persona for GET /agents.
type AgentInfo struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// ChatService is what the server needs from the application layer.
type ChatService interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	Agents() []AgentInfo
}

// Options configure the HTTP server.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Logger          logging.Logger
}

// Server serves the chat API.
type Server struct {
	svc    ChatService
	opts   Options
	logger logging.Logger
	http   *http.Server
}

// New builds a Server around a ChatService.
func New(svc ChatService, optFns ...func(o *Options)) *Server {
	opts := Options{
		Addr:            ":8000",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Minute, // multi-round chats are slow
		ShutdownTimeout: 10 * time.Second,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	s := &Server{svc: svc, opts: opts, logger: opts.Logger}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the route mux, exported for httptest use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /agents", s.handleAgents)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// ListenAndServe blocks until the context is canceled or serving fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.opts.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.svc.Chat(r.Context(), req)
	if err != nil {
		status, msg := classifyError(err)
		s.logger.Error("chat request failed", "status", status, "error", err)
		s.writeError(w, status, msg)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"agents": s.svc.Agents()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// classifyError maps dispatch errors to HTTP statuses. Only caller-fixable
// problems get specific messages; everything else is generic so backend
// internals stay out of responses.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		return http.StatusBadRequest, "message must not be empty"
	case errors.Is(err, core.ErrSessionTerminated):
		return http.StatusConflict, "session already terminated"
	case errors.Is(err, core.ErrMissingAPIKey), errors.Is(err, core.ErrUnknownProvider):
		return http.StatusBadRequest, "backend configuration error"
	case isAuthError(err):
		return http.StatusUnauthorized, "backend authentication failed"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusBadGateway, "upstream model request failed"
	}
}

// isAuthError sniffs provider error strings for credential problems. The SDK
// error types differ per vendor, so this stays a string check.
func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, needle := range []string{"401", "unauthorized", "invalid api key", "authentication"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
