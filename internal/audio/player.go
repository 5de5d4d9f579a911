package audio

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Options controls alert playback.
type Options struct {
	Enabled bool
	// Volume is a base-2 gain applied with effects.Volume.
	Volume float64
	Logger *slog.Logger
}

// Player plays the session alert. It implements session.Notifier.
type Player struct {
	data    []byte
	options Options

	initOnce sync.Once
	initErr  error
	buffer   *beep.Buffer
}

// NewPlayer creates a player for WAV encoded data. The speaker is opened
// lazily on the first alert.
func NewPlayer(data []byte, options Options) *Player {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Player{data: data, options: options}
}

// PlayAlertSound starts playback in the background and returns at once.
// Failures are logged and otherwise ignored.
func (player *Player) PlayAlertSound() {
	if !player.options.Enabled {
		return
	}
	go player.play()
}

func (player *Player) play() {
	player.initOnce.Do(func() {
		player.initErr = player.init()
	})
	if player.initErr != nil {
		player.options.Logger.Warn("failed to play alert sound", "error", player.initErr)
		return
	}

	speaker.Play(player.streamer())
}

func (player *Player) streamer() beep.Streamer {
	return &effects.Volume{
		Streamer: player.buffer.Streamer(0, player.buffer.Len()),
		Base:     2,
		Volume:   player.options.Volume,
		Silent:   false,
	}
}

func (player *Player) init() error {
	buffer, err := decode(player.data)
	if err != nil {
		return err
	}
	format := buffer.Format()
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	player.buffer = buffer
	return nil
}

func decode(data []byte) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode alert sound: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read alert sound: %w", err)
	}
	return buffer, nil
}
