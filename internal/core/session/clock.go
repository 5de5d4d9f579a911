package session

import (
	"sync"
	"time"
)

// Clock delivers one tick per elapsed interval while armed.
// Arm and Disarm must not block and may be called repeatedly.
//
// Every Arm starts a new generation and returns it. Ticks carry the
// generation they were read under, so a receiver can drop ticks that
// raced with a later Disarm or Arm.
type Clock interface {
	OnTick(callback func(generation uint64))
	Arm() uint64
	Disarm()
}

// TickerClock is a Clock backed by a single time.Ticker goroutine.
type TickerClock struct {
	mu       sync.Mutex
	interval time.Duration
	ticker   *time.Ticker
	callback func(generation uint64)
	armed    bool
	// generation changes on every Arm and Disarm.
	generation uint64
	closed   bool
	stopCh   chan struct{}
}

// NewTickerClock creates a disarmed clock firing every interval.
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	ticker.Stop()

	clock := &TickerClock{
		interval: interval,
		ticker:   ticker,
		stopCh:   make(chan struct{}),
	}
	go clock.run()
	return clock
}

// OnTick sets the callback invoked on every tick.
func (clock *TickerClock) OnTick(callback func(generation uint64)) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.callback = callback
}

// Arm (re)starts ticking; the first tick arrives one interval from now.
// A closed clock returns 0, which no tick ever carries.
func (clock *TickerClock) Arm() uint64 {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.closed {
		return 0
	}
	clock.ticker.Reset(clock.interval)
	clock.armed = true
	clock.generation++
	return clock.generation
}

// Disarm stops ticking.
func (clock *TickerClock) Disarm() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if !clock.armed {
		return
	}
	clock.ticker.Stop()
	clock.armed = false
	clock.generation++
}

// Armed reports whether the clock is currently ticking.
func (clock *TickerClock) Armed() bool {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.armed
}

// Close terminates the ticking goroutine.
func (clock *TickerClock) Close() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.closed {
		return
	}
	clock.closed = true
	clock.armed = false
	clock.ticker.Stop()
	close(clock.stopCh)
}

func (clock *TickerClock) run() {
	for {
		select {
		case <-clock.stopCh:
			return
		case <-clock.ticker.C:
			clock.mu.Lock()
			armed := clock.armed
			generation := clock.generation
			callback := clock.callback
			clock.mu.Unlock()

			if armed && callback != nil {
				callback(generation)
			}
		}
	}
}
