package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusInitializing.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusTerminated.Terminal())
	assert.True(t, StatusMaxRoundsReached.Terminal())
	assert.True(t, StatusError.Terminal())
}

func TestSessionStatusLatch(t *testing.T) {
	sess := NewSession("s1")
	sess.SetStatus(StatusActive)
	sess.SetStatus(StatusTerminated)
	require.Equal(t, StatusTerminated, sess.Status)

	// Terminal statuses never revert.
	sess.SetStatus(StatusActive)
	assert.Equal(t, StatusTerminated, sess.Status)
	sess.SetStatus(StatusMaxRoundsReached)
	assert.Equal(t, StatusTerminated, sess.Status)
}

func TestSessionHistoryDefensiveCopy(t *testing.T) {
	sess := NewSession("s1")
	sess.AddMessage(NewUserMessage("hello"))

	history := sess.History()
	require.Len(t, history, 1)
	history[0].Content = "mutated"

	assert.Equal(t, "hello", sess.History()[0].Content)
}

func TestSessionAddMessageTracksSpeaker(t *testing.T) {
	sess := NewSession("s1")
	sess.AddMessage(NewUserMessage("q"))
	assert.Equal(t, SpeakerUser, sess.CurrentSpeaker)

	sess.AddMessage(NewExpertMessage("Math_Expert", "a"))
	assert.Equal(t, "Math_Expert", sess.CurrentSpeaker)
	assert.Equal(t, 2, sess.Len())
}

func TestSessionClone(t *testing.T) {
	sess := NewSession("s1")
	sess.AddMessage(NewUserMessage("q"))
	sess.EffectiveMaxRounds = 5

	clone := sess.Clone()
	clone.AddMessage(NewExpertMessage("CS_Expert", "a"))

	assert.Equal(t, 1, sess.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, 5, clone.EffectiveMaxRounds)
}

func TestNextRound(t *testing.T) {
	sess := NewSession("s1")
	assert.Equal(t, 1, sess.NextRound())
	assert.Equal(t, 2, sess.NextRound())
	assert.Equal(t, 2, sess.RoundCount)
}
