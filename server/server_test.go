package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studymesh/studymesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	resp ChatResponse
	err  error
	last ChatRequest
}

func (s *stubService) Chat(_ context.Context, req ChatRequest) (ChatResponse, error) {
	s.last = req
	return s.resp, s.err
}

func (s *stubService) Agents() []AgentInfo {
	return []AgentInfo{{Name: "Math_Expert", Subject: "Mathematics", Description: "solves math"}}
}

func doChat(t *testing.T, svc ChatService, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	New(svc).Handler().ServeHTTP(rec, req)
	return rec
}

func TestChatSuccess(t *testing.T) {
	svc := &stubService{resp: ChatResponse{Result: "x = 2", SessionID: "s1", Status: "TERMINATED", Rounds: 1}}

	rec := doChat(t, svc, ChatRequest{Message: "solve 2x=4", MaxRounds: 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var got ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "x = 2", got.Result)
	assert.Equal(t, "TERMINATED", got.Status)
	assert.Equal(t, 5, svc.last.MaxRounds)
}

func TestChatEmptyMessage(t *testing.T) {
	svc := &stubService{err: core.ErrEmptyMessage}
	rec := doChat(t, svc, ChatRequest{Message: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	New(&stubService{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatAuthErrorMapsTo401(t *testing.T) {
	svc := &stubService{err: errors.New("openai api error: 401 Unauthorized")}
	rec := doChat(t, svc, ChatRequest{Message: "q"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Backend detail stays out of the response body.
	assert.NotContains(t, rec.Body.String(), "openai")
}

func TestChatMissingAPIKeyMapsTo400(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("openai provider: %w", core.ErrMissingAPIKey)}
	rec := doChat(t, svc, ChatRequest{Message: "q"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "configuration")
}

func TestChatUpstreamErrorMapsTo502(t *testing.T) {
	svc := &stubService{err: errors.New("connection refused")}
	rec := doChat(t, svc, ChatRequest{Message: "q"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChatTerminatedSessionMapsTo409(t *testing.T) {
	svc := &stubService{err: core.ErrSessionTerminated}
	rec := doChat(t, svc, ChatRequest{Message: "q", SessionID: "s1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAgents(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	rec := httptest.NewRecorder()
	New(&stubService{}).Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Agents []AgentInfo `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Agents, 1)
	assert.Equal(t, "Math_Expert", got.Agents[0].Name)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	New(&stubService{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	New(&stubService{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
