// ABOUTME: Tests for the audio-frame clock
// ABOUTME: Verifies frame accounting and concurrent advancement
package synth

import (
	"sync"
	"testing"
)

func TestClockStartsAtZero(t *testing.T) {
	c := NewClock(48000)
	if c.Now() != 0 {
		t.Errorf("expected 0, got %v", c.Now())
	}
	if c.Frames() != 0 {
		t.Errorf("expected 0 frames, got %d", c.Frames())
	}
}

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		frames   int
		expected float64
	}{
		{"one second", 48000, 48000, 1.0},
		{"twenty ms", 48000, 960, 0.02},
		{"three seconds", 44100, 132300, 3.0},
		{"half second", 8000, 4000, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(tt.rate)
			c.Advance(tt.frames)
			if got := c.Now(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestClockOnlyMovesWhenAdvanced(t *testing.T) {
	// The clock tracks rendered audio, not wall time: with no renders it
	// must hold still no matter how much real time passes.
	c := NewClock(48000)
	c.Advance(4800)
	before := c.Now()
	if got := c.Now(); got != before {
		t.Errorf("expected clock frozen at %v, got %v", before, got)
	}
}

func TestClockConcurrentAdvance(t *testing.T) {
	c := NewClock(48000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Advance(10)
			}
		}()
	}
	wg.Wait()

	if c.Frames() != 80000 {
		t.Errorf("expected 80000 frames, got %d", c.Frames())
	}
}
