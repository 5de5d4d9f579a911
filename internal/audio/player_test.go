package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/resources"
)

func TestDecodeEmbeddedAlert(t *testing.T) {
	buffer, err := decode(resources.AlertSound())
	require.NoError(t, err)

	assert.Positive(t, buffer.Len())
	assert.Equal(t, 1, buffer.Format().NumChannels)
	assert.EqualValues(t, 22050, buffer.Format().SampleRate)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode([]byte("not a wav file"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode alert sound")
}

func TestDisabledPlayerDoesNothing(t *testing.T) {
	player := NewPlayer(nil, Options{Enabled: false})
	player.PlayAlertSound()

	assert.Nil(t, player.buffer)
	assert.NoError(t, player.initErr)
}
