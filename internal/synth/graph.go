// ABOUTME: Live stereo tone graph: two oscillators, gains, hard L/R routing
// ABOUTME: Renders interleaved float32 and advances the shared clock
package synth

import (
	"sync"

	"github.com/Binaural-Lab/binaural-go/internal/metrics"
)

const (
	// Channels is the output channel count; the graph is inherently stereo.
	Channels = 2

	// DefaultRampMs is the transition length for live parameter changes.
	DefaultRampMs = 15
)

// TapFunc observes rendered frames, e.g. to feed a monitor stream. It is
// called on the render path and must not block.
type TapFunc func(frames []float32)

// GraphConfig configures a new tone graph.
type GraphConfig struct {
	SampleRate int
	RampMs     int     // 0 means DefaultRampMs
	LeftHz     float64 // initial left channel frequency
	RightHz    float64 // initial right channel frequency
	MasterGain float64 // 0..1
	Clock      *Clock  // shared engine clock, advanced by Render
	Tap        TapFunc // optional
}

// Graph is the live audio graph for one playback session. The left
// oscillator feeds only the left output samples and the right oscillator
// only the right ones (hard pan); each passes through its own channel
// gain, then the shared master gain. All parameter changes go through
// ramps so the rendered signal never jumps.
type Graph struct {
	mu sync.Mutex

	left      *Oscillator
	right     *Oscillator
	leftGain  *Ramp
	rightGain *Ramp
	master    *Ramp

	clock *Clock
	tap   TapFunc
}

// NewGraph builds a fully connected graph from the config. The returned
// graph is complete: every node exists and is wired before any caller can
// render from it, so a half-built graph is never observable.
func NewGraph(cfg GraphConfig) *Graph {
	rampMs := cfg.RampMs
	if rampMs <= 0 {
		rampMs = DefaultRampMs
	}
	rampLen := cfg.SampleRate * rampMs / 1000

	return &Graph{
		left:      NewOscillator(cfg.LeftHz, cfg.SampleRate, rampLen),
		right:     NewOscillator(cfg.RightHz, cfg.SampleRate, rampLen),
		leftGain:  NewRamp(1.0, rampLen),
		rightGain: NewRamp(1.0, rampLen),
		master:    NewRamp(cfg.MasterGain, rampLen),
		clock:     cfg.Clock,
		tap:       cfg.Tap,
	}
}

// Render fills out with interleaved stereo samples and advances the
// shared clock by the frame count. Called from the device pull loop.
func (g *Graph) Render(out []float32) {
	g.mu.Lock()

	frames := len(out) / Channels
	for i := 0; i < frames; i++ {
		m := g.master.Next()
		ls := g.left.Next() * g.leftGain.Next() * m
		rs := g.right.Next() * g.rightGain.Next() * m
		out[i*2] = clampUnit(float32(ls))
		out[i*2+1] = clampUnit(float32(rs))
	}

	tap := g.tap
	g.mu.Unlock()

	if g.clock != nil {
		g.clock.Advance(frames)
	}
	metrics.FramesRenderedTotal.Add(float64(frames))
	if tap != nil && frames > 0 {
		tap(out[:frames*Channels])
	}
}

// SetFrequencies retunes both channels with a glide.
func (g *Graph) SetFrequencies(leftHz, rightHz float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.left.SetFrequency(leftHz)
	g.right.SetFrequency(rightHz)
}

// Frequencies returns the tuned left/right frequencies.
func (g *Graph) Frequencies() (leftHz, rightHz float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.left.Frequency(), g.right.Frequency()
}

// SetMasterGain schedules a master gain change. gain is 0..1.
func (g *Graph) SetMasterGain(gain float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.master.Set(gain)
}

// MasterGain returns the target master gain.
func (g *Graph) MasterGain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.master.Target()
}

// SetChannelGains adjusts the per-channel gains. Both default to 1.
func (g *Graph) SetChannelGains(left, right float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.leftGain.Set(left)
	g.rightGain.Set(right)
}

func clampUnit(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
