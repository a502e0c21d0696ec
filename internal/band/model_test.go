// ABOUTME: Tests for channel derivation and parameter clamping
// ABOUTME: Covers the carrier/beat split identities and the low-frequency floor
package band

import (
	"math"
	"testing"
)

func TestDeriveChannels(t *testing.T) {
	tests := []struct {
		name          string
		carrierHz     float64
		beatHz        float64
		expectedLeft  float64
		expectedRight float64
	}{
		{"alpha on baseline", 400, 10, 395, 405},
		{"zero beat", 400, 0, 400, 400},
		{"theta", 400, 6, 397, 403},
		{"wide gamma", 250, 40, 230, 270},
		{"fractional beat", 200, 2.5, 198.75, 201.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := DeriveChannels(tt.carrierHz, tt.beatHz)
			if left != tt.expectedLeft {
				t.Errorf("expected left %v, got %v", tt.expectedLeft, left)
			}
			if right != tt.expectedRight {
				t.Errorf("expected right %v, got %v", tt.expectedRight, right)
			}
		})
	}
}

func TestDeriveChannelsIdentities(t *testing.T) {
	// While the left channel stays above the clamp floor:
	// left+right == 2*carrier and right-left == beat.
	cases := []struct {
		carrierHz float64
		beatHz    float64
	}{
		{400, 10},
		{400, 0},
		{100, 199},
		{40, 40},
		{1000, 0.5},
		{0.2, 0.3},
	}

	for _, c := range cases {
		left, right := DeriveChannels(c.carrierHz, c.beatHz)
		if sum := left + right; math.Abs(sum-2*c.carrierHz) > 1e-9 {
			t.Errorf("carrier %v beat %v: expected sum %v, got %v",
				c.carrierHz, c.beatHz, 2*c.carrierHz, sum)
		}
		if diff := right - left; math.Abs(diff-c.beatHz) > 1e-9 {
			t.Errorf("carrier %v beat %v: expected diff %v, got %v",
				c.carrierHz, c.beatHz, c.beatHz, diff)
		}
	}
}

func TestDeriveChannelsClampsLeftFloor(t *testing.T) {
	// A beat wider than twice the carrier would push the left channel
	// negative; it must be clamped to the audible floor instead.
	left, right := DeriveChannels(10, 40)
	if left != MinFrequencyHz {
		t.Errorf("expected left clamped to %v, got %v", MinFrequencyHz, left)
	}
	if right != 30 {
		t.Errorf("expected right 30, got %v", right)
	}

	left, _ = DeriveChannels(5, 10) // left exactly zero
	if left != MinFrequencyHz {
		t.Errorf("expected zero left clamped to %v, got %v", MinFrequencyHz, left)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    Parameters
		expected Parameters
	}{
		{
			"in range untouched",
			Parameters{CarrierHz: 400, BeatHz: 10, VolumePercent: 50},
			Parameters{CarrierHz: 400, BeatHz: 10, VolumePercent: 50},
		},
		{
			"negative carrier floored",
			Parameters{CarrierHz: -5, BeatHz: 10, VolumePercent: 50},
			Parameters{CarrierHz: MinFrequencyHz, BeatHz: 10, VolumePercent: 50},
		},
		{
			"negative beat floored",
			Parameters{CarrierHz: 400, BeatHz: -1, VolumePercent: 50},
			Parameters{CarrierHz: 400, BeatHz: 0, VolumePercent: 50},
		},
		{
			"volume above range",
			Parameters{CarrierHz: 400, BeatHz: 10, VolumePercent: 140},
			Parameters{CarrierHz: 400, BeatHz: 10, VolumePercent: 100},
		},
		{
			"volume below range",
			Parameters{CarrierHz: 400, BeatHz: 10, VolumePercent: -3},
			Parameters{CarrierHz: 400, BeatHz: 10, VolumePercent: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.input)
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.CarrierHz != DefaultCarrierHz {
		t.Errorf("expected carrier %v, got %v", DefaultCarrierHz, d.CarrierHz)
	}
	if d.BeatHz != 10 {
		t.Errorf("expected beat 10, got %v", d.BeatHz)
	}
	if d.VolumePercent != 50 {
		t.Errorf("expected volume 50, got %v", d.VolumePercent)
	}
}
