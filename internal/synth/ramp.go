// ABOUTME: Per-sample linear parameter ramp
// ABOUTME: Scheduled value changes that never jump, avoiding audible pops
package synth

// Ramp moves a value linearly toward a target over a fixed number of
// samples. Setting a new target re-anchors the ramp at the current value,
// so a change arriving mid-ramp still produces a continuous curve. This
// is the schedule-at-current-instant semantics a live retune needs.
type Ramp struct {
	current   float64
	target    float64
	step      float64
	remaining int
	length    int
}

// NewRamp creates a ramp holding an initial value. length is the number
// of samples a full transition takes; zero or negative means immediate
// jumps.
func NewRamp(initial float64, length int) *Ramp {
	return &Ramp{current: initial, target: initial, length: length}
}

// Set schedules a transition from the current value to target.
func (r *Ramp) Set(target float64) {
	r.target = target
	if r.length <= 0 || r.current == target {
		r.current = target
		r.remaining = 0
		return
	}
	r.step = (target - r.current) / float64(r.length)
	r.remaining = r.length
}

// Next advances one sample and returns the new value.
func (r *Ramp) Next() float64 {
	if r.remaining > 0 {
		r.current += r.step
		r.remaining--
		if r.remaining == 0 {
			r.current = r.target
		}
	}
	return r.current
}

// Value returns the current value without advancing.
func (r *Ramp) Value() float64 {
	return r.current
}

// Target returns the value the ramp is heading to.
func (r *Ramp) Target() float64 {
	return r.target
}

// Settled reports whether the ramp has reached its target.
func (r *Ramp) Settled() bool {
	return r.remaining == 0
}
