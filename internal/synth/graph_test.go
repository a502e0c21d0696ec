// ABOUTME: Tests for the stereo tone graph
// ABOUTME: Covers routing, gain, clock advancement and the render tap
package synth

import (
	"math"
	"testing"
)

func testGraph(clock *Clock) *Graph {
	return NewGraph(GraphConfig{
		SampleRate: 48000,
		RampMs:     15,
		LeftHz:     395,
		RightHz:    405,
		MasterGain: 0.5,
		Clock:      clock,
	})
}

func TestGraphRenderAdvancesClock(t *testing.T) {
	clock := NewClock(48000)
	g := testGraph(clock)

	buf := make([]float32, 960*Channels) // 20ms
	g.Render(buf)

	if clock.Frames() != 960 {
		t.Errorf("expected 960 frames on clock, got %d", clock.Frames())
	}
	if got := clock.Now(); math.Abs(got-0.02) > 1e-9 {
		t.Errorf("expected clock at 0.02s, got %v", got)
	}

	// Three simulated seconds total.
	for i := 0; i < 149; i++ {
		g.Render(buf)
	}
	if got := clock.Now(); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("expected clock at 3.0s, got %v", got)
	}
}

func TestGraphHardPan(t *testing.T) {
	clock := NewClock(48000)
	g := testGraph(clock)
	g.SetChannelGains(1, 0)

	// Render past the gain ramp, then inspect steady state.
	buf := make([]float32, 4096*Channels)
	g.Render(buf)
	g.Render(buf)

	var leftEnergy, rightEnergy float64
	for i := 0; i < len(buf); i += 2 {
		leftEnergy += float64(buf[i]) * float64(buf[i])
		rightEnergy += float64(buf[i+1]) * float64(buf[i+1])
	}

	if leftEnergy == 0 {
		t.Error("expected signal on the left channel")
	}
	if rightEnergy != 0 {
		t.Errorf("expected silent right channel after gain ramp, got energy %v", rightEnergy)
	}
}

func TestGraphMasterGainSilence(t *testing.T) {
	clock := NewClock(48000)
	g := testGraph(clock)
	g.SetMasterGain(0)

	buf := make([]float32, 4096*Channels)
	g.Render(buf) // ramp down
	g.Render(buf) // steady state

	for i, s := range buf {
		if s != 0 {
			t.Fatalf("expected silence at sample %d, got %v", i, s)
		}
	}
}

func TestGraphSetFrequenciesReportedImmediately(t *testing.T) {
	clock := NewClock(48000)
	g := testGraph(clock)

	g.SetFrequencies(220, 260)
	left, right := g.Frequencies()
	if left != 220 || right != 260 {
		t.Errorf("expected 220/260, got %v/%v", left, right)
	}
}

func TestGraphTapReceivesFrames(t *testing.T) {
	clock := NewClock(48000)
	var tapped int
	g := NewGraph(GraphConfig{
		SampleRate: 48000,
		LeftHz:     395,
		RightHz:    405,
		MasterGain: 0.5,
		Clock:      clock,
		Tap: func(frames []float32) {
			tapped += len(frames) / Channels
		},
	})

	buf := make([]float32, 960*Channels)
	g.Render(buf)
	g.Render(buf)

	if tapped != 1920 {
		t.Errorf("expected tap to see 1920 frames, got %d", tapped)
	}
}

func TestGraphOutputWithinRange(t *testing.T) {
	clock := NewClock(48000)
	g := testGraph(clock)
	g.SetMasterGain(1)

	buf := make([]float32, 8192*Channels)
	g.Render(buf)
	for i, s := range buf {
		if s < -1 || s > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestGraphRenderOddLengthIgnoresTrailingSample(t *testing.T) {
	clock := NewClock(48000)
	g := testGraph(clock)

	buf := make([]float32, 7) // 3 full frames plus a dangling sample
	g.Render(buf)

	if clock.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", clock.Frames())
	}
}
