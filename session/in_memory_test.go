package session

import (
	"testing"

	"github.com/studymesh/studymesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestGetCreatesLazily(t *testing.T) {
	store := NewInMemoryStore()

	sess, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, core.StatusInitializing, sess.Status)
}

func TestGetReturnsClone(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Append("s1", core.NewUserMessage("q")))

	sess, err := store.Get("s1")
	require.NoError(t, err)
	sess.AddMessage(core.NewExpertMessage("Math_Expert", "a"))

	again, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len(), "mutating a returned clone must not touch stored state")
}

func TestStatusLatchThroughStore(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.SetStatus("s1", core.StatusActive))
	require.NoError(t, store.SetStatus("s1", core.StatusTerminated))
	require.NoError(t, store.SetStatus("s1", core.StatusActive))

	sess, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, core.StatusTerminated, sess.Status)
}

func TestIncrementRound(t *testing.T) {
	store := NewInMemoryStore()

	n, err := store.IncrementRound("s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = store.IncrementRound("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSetCeiling(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.SetCeiling("s1", 6))

	sess, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 6, sess.EffectiveMaxRounds)
}
