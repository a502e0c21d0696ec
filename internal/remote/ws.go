// ABOUTME: Event websocket: pushes engine events as JSON frames
// ABOUTME: One-way stream with pings; inbound frames are drained and ignored
package remote

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/metrics"
)

const (
	wsPingInterval  = 30 * time.Second
	wsWriteDeadline = 10 * time.Second
)

// handleEvents upgrades the connection and streams engine events until the
// client leaves or the server shuts down. The first frame is always a full
// state snapshot so the client can paint immediately.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.EventClients.Inc()
	defer metrics.EventClients.Dec()

	sub := s.engine.Subscribe()
	defer s.engine.Unsubscribe(sub)

	s.logger.Info("event stream connected", zap.String("remote", r.RemoteAddr))
	defer s.logger.Info("event stream disconnected", zap.String("remote", r.RemoteAddr))

	conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
	if err := conn.WriteJSON(snapshotMessage(s.engine.Snapshot())); err != nil {
		return
	}

	// The reader only detects disconnects; this stream carries no commands.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			deadline := time.Now().Add(wsWriteDeadline)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				deadline)
			return
		case <-readDone:
			return
		case ev := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteJSON(eventMessage(ev)); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(wsWriteDeadline)); err != nil {
				return
			}
		}
	}
}
