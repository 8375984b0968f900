package groupchat

import (
	"context"
	"errors"
	"testing"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/expert"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/router"
	"github.com/studymesh/studymesh/session"
	"github.com/studymesh/studymesh/termination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.Engine = (*Chat)(nil)

func newTestChat(t *testing.T, mock *model.MockModel, optFns ...func(o *Options)) *Chat {
	t.Helper()
	roster, err := expert.NewRoster(func(o *expert.RosterOptions) { o.Model = mock })
	require.NoError(t, err)
	return New(roster, optFns...)
}

func terminalPredicate() func(core.Message) bool {
	det := termination.New()
	return func(m core.Message) bool { return det.Terminal(m.Content) }
}

func TestRunSingleTerminalTurn(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.QueueResponses("x = 2 TERMINATE")
	chat := newTestChat(t, mock)

	outcome, err := chat.Run(context.Background(), core.TurnRequest{
		SessionID:      "s1",
		Message:        "solve 2x = 4",
		InitialSpeaker: "Math_Expert",
		ClearHistory:   true,
		MaxRounds:      8,
		IsTerminal:     terminalPredicate(),
	})
	require.NoError(t, err)

	result, ok := outcome.(*Outcome)
	require.True(t, ok)
	assert.Equal(t, "x = 2 TERMINATE", result.Summary())
	require.Len(t, result.History(), 1)
	assert.True(t, result.History()[0].Terminal)
	assert.Equal(t, 1, mock.Calls())

	speaker, ok := chat.LastSpeaker("s1")
	require.True(t, ok)
	assert.Equal(t, "Math_Expert", speaker)
}

func TestRunStopsAtMaxRounds(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.QueueResponses("first", "second", "third", "fourth")
	chat := newTestChat(t, mock)

	outcome, err := chat.Run(context.Background(), core.TurnRequest{
		SessionID:      "s1",
		Message:        "keep going",
		InitialSpeaker: "Info_Agent",
		ClearHistory:   true,
		MaxRounds:      3,
		IsTerminal:     terminalPredicate(),
	})
	require.NoError(t, err)

	result := outcome.(*Outcome)
	assert.Len(t, result.History(), 3)
	assert.Equal(t, 3, mock.Calls())
}

func TestRunObserverStopsExchange(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.QueueResponses("first", "second")
	chat := newTestChat(t, mock)

	seen := 0
	outcome, err := chat.Run(context.Background(), core.TurnRequest{
		SessionID:      "s1",
		Message:        "question",
		InitialSpeaker: "Info_Agent",
		ClearHistory:   true,
		MaxRounds:      8,
		IsTerminal:     terminalPredicate(),
		OnMessage: func(core.Message) bool {
			seen++
			return false
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
	assert.Len(t, outcome.(*Outcome).History(), 1)
}

func TestRunRoutedHandOff(t *testing.T) {
	mock := model.NewMockModel("test")
	// The first reply mentions English keywords, so the router hands the
	// second round to the English expert.
	mock.QueueResponses(
		"This also needs english grammar review",
		"Corrected. TERMINATE",
	)
	roster, err := expert.NewRoster(func(o *expert.RosterOptions) { o.Model = mock })
	require.NoError(t, err)
	chat := New(roster, func(o *Options) {
		o.Router = router.New(roster.Definitions())
	})

	outcome, err := chat.Run(context.Background(), core.TurnRequest{
		SessionID:      "s1",
		Message:        "check my essay",
		InitialSpeaker: "Literature_Expert",
		ClearHistory:   true,
		MaxRounds:      8,
		IsTerminal:     terminalPredicate(),
	})
	require.NoError(t, err)

	history := outcome.(*Outcome).History()
	require.Len(t, history, 2)
	assert.Equal(t, "Literature_Expert", history[0].Speaker)
	assert.Equal(t, "English_Expert", history[1].Speaker)
}

func TestRunUnknownSpeaker(t *testing.T) {
	chat := newTestChat(t, model.NewMockModel("test"))

	_, err := chat.Run(context.Background(), core.TurnRequest{
		Message:        "q",
		InitialSpeaker: "Nobody",
		MaxRounds:      2,
	})
	assert.ErrorIs(t, err, core.ErrExpertNotFound)
}

func TestRunBackendError(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.FailWith(errors.New("backend down"))
	chat := newTestChat(t, mock)

	_, err := chat.Run(context.Background(), core.TurnRequest{
		Message:        "q",
		InitialSpeaker: "Math_Expert",
		MaxRounds:      2,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}

func TestRunResumeLoadsStoredHistory(t *testing.T) {
	store := session.NewInMemoryStore()
	require.NoError(t, store.Append("s1", core.NewUserMessage("original question")))
	require.NoError(t, store.Append("s1", core.NewExpertMessage("Math_Expert", "need more detail")))

	mock := model.NewMockModel("test")
	mock.QueueResponses("full answer TERMINATE")
	roster, err := expert.NewRoster(func(o *expert.RosterOptions) { o.Model = mock })
	require.NoError(t, err)
	chat := New(roster, func(o *Options) { o.Store = store })

	outcome, err := chat.Run(context.Background(), core.TurnRequest{
		SessionID:      "s1",
		Message:        "here is the detail",
		InitialSpeaker: "Math_Expert",
		ClearHistory:   false,
		MaxRounds:      8,
		IsTerminal:     terminalPredicate(),
	})
	require.NoError(t, err)
	assert.Equal(t, "full answer TERMINATE", outcome.(*Outcome).Summary())
}
