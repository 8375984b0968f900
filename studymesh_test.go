package studymesh

import (
	"context"
	"strings"
	"testing"

	"github.com/studymesh/studymesh/config"
	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ server.ChatService = (*App)(nil)

func testSettings() *config.Settings {
	return &config.Settings{
		Provider:         "openai",
		DefaultModel:     "test-model",
		MaxChatRounds:    10,
		DefaultMaxRounds: 8,
		Temperature:      0.2,
		ListenAddr:       ":0",
	}
}

func newTestApp(t *testing.T, mock *model.MockModel) *App {
	t.Helper()
	app, err := New(func(o *Options) {
		o.Settings = testSettings()
		o.Model = mock
	})
	require.NoError(t, err)
	return app
}

func TestChatEndToEnd(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.QueueResponses("Nghiệm là x = 2 và x = -1/2. TERMINATE")
	app := newTestApp(t, mock)

	resp, err := app.Chat(context.Background(), server.ChatRequest{
		Message: "giải phương trình bậc hai 2x^2 - 3x - 2 = 0",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nghiệm là x = 2 và x = -1/2.", resp.Result)
	assert.Equal(t, "TERMINATED", resp.Status)
	assert.Equal(t, 1, resp.Rounds)
	assert.NotEmpty(t, resp.SessionID)
}

func TestChatMaxRoundsClamped(t *testing.T) {
	mock := model.NewMockModel("test")
	for i := 0; i < 12; i++ {
		mock.QueueResponses("still thinking about the equation")
	}
	app := newTestApp(t, mock)

	resp, err := app.Chat(context.Background(), server.ChatRequest{
		Message:   "solve this equation step by step",
		MaxRounds: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "MAX_ROUNDS_REACHED", resp.Status)
	assert.Equal(t, 10, resp.Rounds)
}

func TestChatEmptyMessage(t *testing.T) {
	app := newTestApp(t, model.NewMockModel("test"))

	_, err := app.Chat(context.Background(), server.ChatRequest{Message: "   "})
	assert.Error(t, err)
}

func TestAgentsListsRoster(t *testing.T) {
	app := newTestApp(t, model.NewMockModel("test"))

	agents := app.Agents()
	require.Len(t, agents, 8)
	assert.Equal(t, "Info_Agent", agents[0].Name)
}

func TestChatContextBuildsIsolatedPipeline(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.QueueResponses(
		"The derivative of x^2 is 2x. TERMINATE",
		"Đạo hàm của x^2 là 2x. TERMINATE",
	)
	app := newTestApp(t, mock)

	_, err := app.Chat(context.Background(), server.ChatRequest{Message: "derivative of x^2 in math"})
	require.NoError(t, err)
	_, err = app.Chat(context.Background(), server.ChatRequest{
		Message: "derivative of x^2 in math",
		Context: map[string]string{"language": "en"},
	})
	require.NoError(t, err)

	// The overlay gets its own pipeline; the default one is never touched.
	require.Len(t, app.pipelines, 2)

	defPipe, err := app.pipelineFor("", 0, nil)
	require.NoError(t, err)
	p, ok := defPipe.roster.Find("Math_Expert")
	require.True(t, ok)
	assert.Equal(t, 1, strings.Count(p.Instructions(), "Always respond in"))
	assert.Contains(t, p.Instructions(), "Always respond in vi.")

	enPipe, err := app.pipelineFor("", 0, map[string]string{"language": "en"})
	require.NoError(t, err)
	q, ok := enPipe.roster.Find("Math_Expert")
	require.True(t, ok)
	assert.Equal(t, 1, strings.Count(q.Instructions(), "Always respond in"))
	assert.Contains(t, q.Instructions(), "Always respond in en.")
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(func(o *Options) {
		o.Settings = testSettings()
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingAPIKey)
}

func TestNewKeylessGatewayAllowed(t *testing.T) {
	settings := testSettings()
	settings.BaseURL = "http://localhost:11434/v1"
	_, err := New(func(o *Options) {
		o.Settings = settings
	})
	require.NoError(t, err)
}

func TestAsk(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.QueueResponses("Photosynthesis converts light into chemical energy. TERMINATE")
	app := newTestApp(t, mock)

	res, err := app.Ask(context.Background(), "explain photosynthesis in a cell")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light into chemical energy.", res.Answer)
}
