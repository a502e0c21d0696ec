// ABOUTME: Manually pumped fake output device for tests
// ABOUTME: Simulates start failures, suspension and platform line teardown
package device

import (
	"errors"
	"sync"

	"github.com/Binaural-Lab/binaural-go/pkg/audio"
)

// Fake is an output device whose pull loop is driven by the test through
// Pump, making rendered time fully deterministic. Failure injection
// covers the paths a real platform can take: context creation failure,
// resume failure and asynchronous line teardown.
type Fake struct {
	mu sync.Mutex

	// Failure injection
	StartErr  error // returned by Start when set
	ResumeErr error // returned by Resume when set

	suspended bool
	closed    bool
	starts    int
	line      *FakeLine
}

// NewFake creates an idle fake device.
func NewFake() *Fake {
	return &Fake{}
}

// Start opens a fake line. Only one live line is tracked; opening a new
// one replaces it, mirroring how the engine uses a single session line.
func (d *Fake) Start(render audio.RenderFunc) (audio.Line, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.StartErr != nil {
		return nil, d.StartErr
	}
	if d.closed {
		return nil, errors.New("device closed")
	}

	d.starts++
	d.line = &FakeLine{render: render, device: d}
	return d.line, nil
}

// Suspend marks the device suspended; Pump refuses to advance until
// Resume is called.
func (d *Fake) Suspend() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suspended = true
	return nil
}

// Resume clears suspension, or fails when ResumeErr is set.
func (d *Fake) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ResumeErr != nil {
		return d.ResumeErr
	}
	d.suspended = false
	return nil
}

// Close marks the device unusable.
func (d *Fake) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Suspended reports the suspension state.
func (d *Fake) Suspended() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.suspended
}

// Starts returns how many lines have been opened.
func (d *Fake) Starts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts
}

// Line returns the most recently opened line, or nil.
func (d *Fake) Line() *FakeLine {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.line
}

// Pump renders the given number of stereo frames through the live line,
// as the platform pull loop would. Nothing happens while the device is
// suspended or the line is dead.
func (d *Fake) Pump(frames int) {
	d.mu.Lock()
	line := d.line
	suspended := d.suspended
	d.mu.Unlock()

	if suspended || line == nil || !line.Running() {
		return
	}
	buf := make([]float32, frames*audio.Channels)
	line.render(buf)
}

// FakeLine is the line counterpart of Fake.
type FakeLine struct {
	mu     sync.Mutex
	render audio.RenderFunc
	device *Fake
	dead   bool
}

func (l *FakeLine) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.dead
}

func (l *FakeLine) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dead = true
	return nil
}

// Kill simulates the platform tearing the line down behind the
// application's back, as mobile backgrounding does.
func (l *FakeLine) Kill() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dead = true
}
