// ABOUTME: Manually fed visibility source, used by the TUI focus events
// ABOUTME: Push is latest-wins: stale transitions are dropped, never block
package lifecycle

// ChanSource is a visibility source fed by explicit Push calls.
type ChanSource struct {
	ch chan Visibility
}

// NewChanSource creates an empty source.
func NewChanSource() *ChanSource {
	return &ChanSource{ch: make(chan Visibility, 4)}
}

// Changes returns the transition channel.
func (c *ChanSource) Changes() <-chan Visibility {
	return c.ch
}

// Push queues a transition. Visibility is state, not a stream: when the
// buffer is full the oldest queued transition is discarded so the newest
// always gets through.
func (c *ChanSource) Push(v Visibility) {
	for {
		select {
		case c.ch <- v:
			return
		default:
			select {
			case <-c.ch:
			default:
			}
		}
	}
}

// Close ends the source; a running monitor drains and returns.
func (c *ChanSource) Close() {
	close(c.ch)
}
