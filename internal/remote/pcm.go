// ABOUTME: Live WAV monitor stream of whatever the engine is rendering
// ABOUTME: Gaps are padded with silence so players keep a continuous stream
package remote

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/pkg/audio"
)

// silenceInterval is how long the stream may starve before silence is
// injected. Idle engines and suspended devices produce no frames at all.
const silenceInterval = 100 * time.Millisecond

// handleMonitor streams the engine output as a WAV of unbounded length.
// Anything that plays WAV over HTTP can be pointed at it.
func (s *Server) handleMonitor(w http.ResponseWriter, r *http.Request) {
	if s.caster == nil {
		respondError(w, http.StatusNotFound, "monitor stream disabled")
		return
	}

	format := audio.Format{
		SampleRate: s.engine.SampleRate(),
		Channels:   audio.Channels,
		BitDepth:   audio.BitDepth,
	}

	// Subscribe before the first byte goes out: a client that has seen
	// the header must not miss frames rendered right after.
	l := s.caster.Subscribe()
	defer s.caster.Unsubscribe(l)

	s.logger.Info("monitor stream connected", zap.String("remote", r.RemoteAddr))
	defer s.logger.Info("monitor stream disconnected", zap.String("remote", r.RemoteAddr))

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-store")
	if err := audio.WriteWAVHeader(w, format); err != nil {
		return
	}
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	// One silence block per starvation interval.
	silence := make([]int16, format.SampleRate/10*audio.Channels)
	ticker := time.NewTicker(silenceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-r.Context().Done():
			return
		case frame := <-l.C:
			if err := audio.WriteFrames(w, frame); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
			ticker.Reset(silenceInterval)
		case <-ticker.C:
			if err := audio.WriteFrames(w, silence); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
