// ABOUTME: Phase-continuous sine oscillator
// ABOUTME: Frequency changes ramp in without resetting the phase
package synth

import "math"

const twoPi = 2 * math.Pi

// Oscillator generates a sine wave from an accumulated phase. Frequency
// changes adjust the per-sample phase increment through a ramp; the phase
// itself is never reset, so retunes stay click-free.
type Oscillator struct {
	phase float64
	freq  *Ramp
	rate  float64
}

// NewOscillator creates an oscillator at the given frequency. rampLength
// is in samples and applies to every subsequent frequency change.
func NewOscillator(freqHz float64, sampleRate, rampLength int) *Oscillator {
	return &Oscillator{
		freq: NewRamp(freqHz, rampLength),
		rate: float64(sampleRate),
	}
}

// SetFrequency schedules a glide to a new frequency.
func (o *Oscillator) SetFrequency(hz float64) {
	o.freq.Set(hz)
}

// Frequency returns the frequency the oscillator is tuned to (the ramp
// target, which equals the audible frequency once the glide settles).
func (o *Oscillator) Frequency() float64 {
	return o.freq.Target()
}

// Next produces one sample and advances the phase.
func (o *Oscillator) Next() float64 {
	s := math.Sin(o.phase)
	o.phase += twoPi * o.freq.Next() / o.rate
	if o.phase >= twoPi {
		o.phase -= twoPi
	}
	return s
}
