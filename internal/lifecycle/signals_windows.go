//go:build windows

// ABOUTME: Windows build of the signal source; USR signals do not exist there
// ABOUTME: The source compiles everywhere but never emits a transition
package lifecycle

// SignalSource is inert on Windows: there are no SIGUSR signals to map.
// Headless lifecycle control is only available on unix-like systems.
type SignalSource struct {
	src *ChanSource
}

// NewSignalSource returns a source that never fires.
func NewSignalSource() *SignalSource {
	return &SignalSource{src: NewChanSource()}
}

// Changes returns the transition channel.
func (s *SignalSource) Changes() <-chan Visibility {
	return s.src.Changes()
}

// Close is a no-op.
func (s *SignalSource) Close() {}
