package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaults(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.LastCollection())
	assert.Equal(t, DefaultTimerInterval, s.TimerInterval())
	assert.False(t, s.AutoAdvance())
	assert.False(t, s.Grayscale())
	assert.Equal(t, BackgroundBlack, s.BackgroundMode())
	assert.False(t, s.ShowHistoryPanel())
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetLastCollection("Holiday"))
	require.NoError(t, s.SetTimerInterval(300))
	require.NoError(t, s.SetAutoAdvance(true))
	require.NoError(t, s.SetGrayscale(true))
	require.NoError(t, s.SetBackgroundMode(BackgroundAdaptive))
	require.NoError(t, s.SetShowHistoryPanel(true))

	assert.Equal(t, "Holiday", s.LastCollection())
	assert.Equal(t, 300, s.TimerInterval())
	assert.True(t, s.AutoAdvance())
	assert.True(t, s.Grayscale())
	assert.Equal(t, BackgroundAdaptive, s.BackgroundMode())
	assert.True(t, s.ShowHistoryPanel())
}

func TestValuesPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetTimerInterval(30))
	require.NoError(t, s.SetAutoAdvance(true))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 30, s.TimerInterval())
	assert.True(t, s.AutoAdvance())
}

func TestBogusStoredValuesFallBack(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.put(keyTimerInterval, "banana"))
	require.NoError(t, s.put(keyBackground, "plaid"))
	require.NoError(t, s.put(keyAutoAdvance, "maybe"))

	assert.Equal(t, DefaultTimerInterval, s.TimerInterval())
	assert.Equal(t, BackgroundBlack, s.BackgroundMode())
	assert.False(t, s.AutoAdvance())
}
