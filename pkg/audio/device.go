// ABOUTME: Output device abstraction the engine renders into
// ABOUTME: Pull model: a Line reads interleaved float32 frames on demand
package audio

// RenderFunc fills out with interleaved stereo float32 samples in [-1,1].
// It is called from the device's pull loop and must not block.
type RenderFunc func(out []float32)

// Device is an audio output sink. Start opens a new output line pulling
// samples from render; a device can be suspended and resumed as a whole,
// mirroring platform power-management behavior. Implementations decide
// when the underlying context is created, so creation failures surface
// from Start.
type Device interface {
	// Start opens a line that continuously pulls from render.
	Start(render RenderFunc) (Line, error)

	// Suspend halts the device's pull loop without destroying lines.
	Suspend() error

	// Resume restarts a suspended device.
	Resume() error

	// Close releases the device. Lines opened from it become dead.
	Close() error
}

// Line is one active output stream. A closed line cannot be restarted;
// callers open a fresh line from the Device instead.
type Line interface {
	// Running reports whether the line is still alive. It turns false
	// once the line is closed or the platform tears the stream down.
	Running() bool

	// Close stops the line permanently.
	Close() error
}
