// ABOUTME: Engine event fan-out to TUI, websocket and facade subscribers
// ABOUTME: Non-blocking publish; slow subscribers lose events, never stall audio
package engine

import (
	"sync"

	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/metrics"
)

// EventKind discriminates the event payload.
type EventKind int

const (
	// EventState reports a transition between Idle and Running.
	EventState EventKind = iota
	// EventParams reports a parameter change with derived channels.
	EventParams
	// EventElapsed reports a new elapsed-time display value.
	EventElapsed
	// EventNotice carries a transient user-facing message.
	EventNotice
)

func (k EventKind) String() string {
	switch k {
	case EventState:
		return "state"
	case EventParams:
		return "params"
	case EventElapsed:
		return "elapsed"
	case EventNotice:
		return "notice"
	default:
		return "unknown"
	}
}

// NoticeLevel grades user-facing notices.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one engine notification. State and parameter events carry the
// full current readings so consumers never need a follow-up query.
type Event struct {
	Kind    EventKind
	State   State
	Params  band.Parameters
	LeftHz  float64
	RightHz float64
	Elapsed string
	Notice  string
	Level   NoticeLevel
}

// subscriptionBuffer absorbs bursts; overflow is dropped per subscriber.
const subscriptionBuffer = 32

// Subscription receives engine events on C until unsubscribed.
type Subscription struct {
	C    chan Event
	done chan struct{}
}

// Done is closed when the subscription is removed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

type events struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func newEvents() *events {
	return &events{subs: make(map[*Subscription]struct{})}
}

func (e *events) subscribe() *Subscription {
	s := &Subscription{
		C:    make(chan Event, subscriptionBuffer),
		done: make(chan struct{}),
	}
	e.mu.Lock()
	e.subs[s] = struct{}{}
	e.mu.Unlock()
	return s
}

func (e *events) unsubscribe(s *Subscription) {
	e.mu.Lock()
	if _, ok := e.subs[s]; !ok {
		e.mu.Unlock()
		return
	}
	delete(e.subs, s)
	e.mu.Unlock()
	close(s.done)
}

func (e *events) publish(ev Event) {
	e.mu.RLock()
	for s := range e.subs {
		select {
		case s.C <- ev:
		default:
			metrics.EventsDroppedTotal.Inc()
		}
	}
	e.mu.RUnlock()
}
