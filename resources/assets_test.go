package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconIsCached(t *testing.T) {
	first, err := Icon("tomato_active.svg")
	require.NoError(t, err)
	second := MustIcon("tomato_active.svg")

	assert.Same(t, first, second)
	assert.Contains(t, string(first.Content()), "<svg")
}

func TestIconMissing(t *testing.T) {
	_, err := Icon("missing.svg")
	require.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}

func TestAlertSoundIsWav(t *testing.T) {
	data := AlertSound()
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}
