//go:build !windows

// ABOUTME: Signal-driven visibility source for headless runs
// ABOUTME: SIGUSR1 means background, SIGUSR2 means foreground
package lifecycle

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalSource maps process signals to visibility transitions so a
// detached or scripted run can exercise the same lifecycle the TUI does:
// SIGUSR1 backgrounds, SIGUSR2 foregrounds.
type SignalSource struct {
	src  *ChanSource
	sigs chan os.Signal
	stop chan struct{}
	once sync.Once
}

// NewSignalSource starts listening immediately.
func NewSignalSource() *SignalSource {
	s := &SignalSource{
		src:  NewChanSource(),
		sigs: make(chan os.Signal, 4),
		stop: make(chan struct{}),
	}
	signal.Notify(s.sigs, syscall.SIGUSR1, syscall.SIGUSR2)
	go s.loop()
	return s
}

func (s *SignalSource) loop() {
	for {
		select {
		case <-s.stop:
			return
		case sig := <-s.sigs:
			if sig == syscall.SIGUSR1 {
				s.src.Push(Background)
			} else {
				s.src.Push(Foreground)
			}
		}
	}
}

// Changes returns the transition channel.
func (s *SignalSource) Changes() <-chan Visibility {
	return s.src.Changes()
}

// Close stops signal delivery. Safe to call more than once.
func (s *SignalSource) Close() {
	s.once.Do(func() {
		signal.Stop(s.sigs)
		close(s.stop)
	})
}
