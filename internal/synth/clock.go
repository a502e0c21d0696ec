// ABOUTME: Audio-frame clock shared across playback sessions
// ABOUTME: Advances only when frames render, so it stalls with the device
package synth

import "sync/atomic"

// Clock counts rendered stereo frames and converts them to seconds.
// Unlike a wall clock it only moves while audio is actually being
// rendered: a suspended output device freezes it, which is exactly the
// behavior the elapsed readout needs. One Clock lives for the whole
// engine lifetime; sessions record their start reading against it.
type Clock struct {
	frames atomic.Int64
	rate   int
}

// NewClock creates a clock for the given sample rate.
func NewClock(sampleRate int) *Clock {
	return &Clock{rate: sampleRate}
}

// Advance adds rendered frames. Called from the render path only.
func (c *Clock) Advance(frames int) {
	c.frames.Add(int64(frames))
}

// Frames returns the total frames rendered so far.
func (c *Clock) Frames() int64 {
	return c.frames.Load()
}

// Now returns the clock reading in seconds.
func (c *Clock) Now() float64 {
	return float64(c.frames.Load()) / float64(c.rate)
}

// Rate returns the sample rate the clock counts against.
func (c *Clock) Rate() int {
	return c.rate
}
