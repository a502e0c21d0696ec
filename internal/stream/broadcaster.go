// ABOUTME: Fans out rendered PCM frames to live monitor listeners
// ABOUTME: Slow listeners drop frames; the render path never blocks
package stream

import (
	"sync"

	"github.com/Binaural-Lab/binaural-go/internal/metrics"
)

// listenerBuffer is ~3 seconds at 20ms per published frame.
const listenerBuffer = 150

// Broadcaster fans out PCM frames from the synthesis tap to N listeners.
// Publish is called from the audio render path, so it must never block:
// a listener whose buffer is full loses frames instead.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[*Listener]struct{}
}

// Listener receives PCM frames from the broadcaster.
type Listener struct {
	C    chan []int16
	done chan struct{}
}

// Done is closed when the listener is unsubscribed.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// NewBroadcaster creates a broadcaster with no listeners.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		listeners: make(map[*Listener]struct{}),
	}
}

// Subscribe registers a new listener.
func (b *Broadcaster) Subscribe() *Listener {
	l := &Listener{
		C:    make(chan []int16, listenerBuffer),
		done: make(chan struct{}),
	}
	b.mu.Lock()
	b.listeners[l] = struct{}{}
	count := len(b.listeners)
	b.mu.Unlock()

	metrics.MonitorListeners.Set(float64(count))
	return l
}

// Unsubscribe removes a listener and signals it to stop.
func (b *Broadcaster) Unsubscribe(l *Listener) {
	b.mu.Lock()
	if _, ok := b.listeners[l]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.listeners, l)
	count := len(b.listeners)
	b.mu.Unlock()

	metrics.MonitorListeners.Set(float64(count))
	close(l.done)
}

// ListenerCount returns the number of active listeners.
func (b *Broadcaster) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Publish fans one frame out to all listeners. The frame is shared, not
// copied; callers must hand over ownership and allocate fresh frames.
func (b *Broadcaster) Publish(frame []int16) {
	b.mu.RLock()
	for l := range b.listeners {
		select {
		case l.C <- frame:
		default:
			// listener too slow, drop frame to keep the render path moving
		}
	}
	b.mu.RUnlock()
}
