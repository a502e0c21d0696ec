// ABOUTME: WebSocket client for the live engine event stream
// ABOUTME: Handles connection, frame decoding and channel delivery
package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// EventStream consumes /v1/events frames over a websocket. The first
// frame after Connect is always a full state snapshot.
type EventStream struct {
	addr string
	conn *websocket.Conn
	mu   sync.Mutex

	// Events delivers decoded frames until the stream ends. The channel
	// is never closed; select on Done to detect the end.
	Events chan Event

	connected bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewEventStream creates a stream for the engine at addr (host:port).
func NewEventStream(addr string) *EventStream {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventStream{
		addr:   addr,
		Events: make(chan Event, 32),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Connect establishes the websocket and starts the reader.
func (s *EventStream) Connect() error {
	u := url.URL{Scheme: "ws", Host: s.addr, Path: "/v1/events"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.mu.Unlock()

	go s.readMessages()
	return nil
}

// readMessages decodes frames and delivers them until the connection ends.
func (s *EventStream) readMessages() {
	defer s.Close()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			return
		}

		select {
		case s.Events <- ev:
		case <-s.ctx.Done():
			return
		}
	}
}

// Done is closed once the stream has ended.
func (s *EventStream) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Close tears the connection down. Safe to call more than once.
func (s *EventStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		s.connected = false
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.cancel()
		s.conn.Close()
	}
}

// IsConnected reports whether the stream is live.
func (s *EventStream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
