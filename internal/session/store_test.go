package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenEmptyWhenNoneStored(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.Empty(t, s.Token())
}

func TestSetTokenRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.SetToken("tok-abc"))
	assert.Equal(t, "tok-abc", s.Token())
}

func TestTokenSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewStore(dir).SetToken("tok-abc"))

	// A fresh store over the same directory sees the token.
	assert.Equal(t, "tok-abc", NewStore(dir).Token())
}

func TestClear(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.SetToken("tok-abc"))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
}

func TestClearWithoutTokenIsNoop(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.NoError(t, s.Clear())
}

func TestTokenTrimsWhitespace(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.SetToken("tok-abc\n"))
	assert.Equal(t, "tok-abc", s.Token())
}
