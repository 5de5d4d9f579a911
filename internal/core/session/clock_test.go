package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerClockTicksOnlyWhileArmed(t *testing.T) {
	clock := NewTickerClock(5 * time.Millisecond)
	t.Cleanup(clock.Close)

	var ticks atomic.Int64
	var lastGeneration atomic.Uint64
	clock.OnTick(func(generation uint64) {
		ticks.Add(1)
		lastGeneration.Store(generation)
	})

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, ticks.Load(), "a new clock is disarmed")

	generation := clock.Arm()
	assert.NotZero(t, generation)
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Equal(t, generation, lastGeneration.Load(), "ticks carry the generation of their arm")

	clock.Disarm()
	clock.Disarm()
	assert.False(t, clock.Armed())

	stopped := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, ticks.Load(), stopped+1)
}

func TestTickerClockCloseIsIdempotent(t *testing.T) {
	clock := NewTickerClock(time.Millisecond)
	clock.Arm()
	clock.Close()
	clock.Close()

	assert.Zero(t, clock.Arm())
	assert.False(t, clock.Armed(), "a closed clock cannot be re-armed")
}

func TestTickerClockGenerationsAdvance(t *testing.T) {
	clock := NewTickerClock(time.Hour)
	t.Cleanup(clock.Close)

	first := clock.Arm()
	clock.Disarm()
	second := clock.Arm()
	assert.Greater(t, second, first+1, "a disarm in between retires the first generation")
	assert.Equal(t, second+1, clock.Arm(), "re-arming while armed starts a new generation")
}

func TestEngineDrivesTickerClock(t *testing.T) {
	clock := NewTickerClock(time.Millisecond)
	t.Cleanup(clock.Close)

	durations := minutes(1, 1, 1)
	engine := New(durations, Config{Clock: clock})
	t.Cleanup(engine.Close)

	engine.Start()
	require.Eventually(t, func() bool {
		return engine.Snapshot().Mode == ModeShortBreak
	}, 5*time.Second, 5*time.Millisecond)

	snapshot := engine.Snapshot()
	assert.Equal(t, PhaseIdle, snapshot.Phase)
	assert.Equal(t, 1, snapshot.Counters.FocusCompleted)
	assert.False(t, clock.Armed())
}

func TestDescribeTimeout(t *testing.T) {
	assert.Equal(t, "2 minutes", describeTimeout(120*time.Second))
	assert.Equal(t, "1 minute", describeTimeout(time.Minute))
	assert.Equal(t, "90 seconds", describeTimeout(90*time.Second))
	assert.Equal(t, "1 second", describeTimeout(time.Second))
}
