package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingCycle(t *testing.T) {
	deck := NewDeck(true)

	require.True(t, deck.ToggleRecording())
	assert.True(t, deck.Recording())

	clip := deck.FinishRecording()
	assert.Equal(t, "New Recording", clip.Title)
	assert.Equal(t, "0:00", clip.Duration)
	assert.Len(t, deck.Clips(), 3)

	current, ok := deck.Current()
	require.True(t, ok)
	assert.Equal(t, clip.ID, current.ID)

	assert.False(t, deck.ToggleRecording())
	assert.False(t, deck.Recording())
}

func TestPlaybackProgress(t *testing.T) {
	deck := NewDeck(true)
	assert.Equal(t, Progress{Percent: 0, Elapsed: "0:00"}, deck.Progress())

	require.True(t, deck.TogglePlayback("2"))
	assert.True(t, deck.Playing())
	assert.Equal(t, Progress{Percent: 45, Elapsed: "0:45"}, deck.Progress())

	current, ok := deck.Current()
	require.True(t, ok)
	assert.Equal(t, "Meeting Recap", current.Title)

	// The playing flag is shared, so picking another clip pauses.
	require.True(t, deck.TogglePlayback("1"))
	assert.False(t, deck.Playing())
	current, _ = deck.Current()
	assert.Equal(t, "Project Summary", current.Title)
}

func TestTogglePlaybackUnknownClip(t *testing.T) {
	deck := NewDeck(false)
	assert.False(t, deck.TogglePlayback("nope"))
	assert.False(t, deck.Playing())
	_, ok := deck.Current()
	assert.False(t, ok)
}
