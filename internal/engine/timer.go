// ABOUTME: Session elapsed timer driven by the render clock, not wall time
// ABOUTME: Pause freezes the reading; Reset returns it to zero
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/Binaural-Lab/binaural-go/internal/synth"
)

// tickInterval is how often a running timer checks for a display change.
const tickInterval = 250 * time.Millisecond

// FormatElapsed renders elapsed seconds as MM:SS. Minutes are unbounded;
// an hour shows as 60:00 rather than rolling over.
func FormatElapsed(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// elapsedTimer derives the session readout from the render clock. Because
// the clock only advances while frames render, a suspended device shows a
// frozen reading instead of drifting on wall time.
type elapsedTimer struct {
	clock *synth.Clock

	mu         sync.Mutex
	startClock float64
	frozen     float64 // seconds shown while inactive
	active     bool
	stop       chan struct{}
	last       string
}

func newElapsedTimer(clock *synth.Clock) *elapsedTimer {
	return &elapsedTimer{clock: clock, last: FormatElapsed(0)}
}

// Start begins tracking from the given clock reading and calls onTick
// whenever the display string changes. Starting an active timer is a no-op.
func (t *elapsedTimer) Start(startClock float64, onTick func(display string)) {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return
	}
	t.startClock = startClock
	t.active = true
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				next := t.Display()
				t.mu.Lock()
				changed := next != t.last
				if changed {
					t.last = next
				}
				t.mu.Unlock()
				if changed && onTick != nil {
					onTick(next)
				}
			}
		}
	}()
}

// Pause freezes the reading at its current value and stops the ticker.
func (t *elapsedTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	t.frozen = t.secondsLocked()
	t.active = false
	close(t.stop)
}

// Reset stops the timer and returns the reading to zero.
func (t *elapsedTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.active = false
		close(t.stop)
	}
	t.frozen = 0
	t.last = FormatElapsed(0)
}

// Seconds returns the elapsed seconds behind the current display.
func (t *elapsedTimer) Seconds() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.secondsLocked()
}

// Display returns the current MM:SS reading.
func (t *elapsedTimer) Display() string {
	return FormatElapsed(t.Seconds())
}

func (t *elapsedTimer) secondsLocked() float64 {
	if !t.active {
		return t.frozen
	}
	s := t.clock.Now() - t.startClock
	if s < 0 {
		return 0
	}
	return s
}
