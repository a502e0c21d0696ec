// ABOUTME: REST handlers mapping engine operations to HTTP semantics
// ABOUTME: Already-running is 409, no audio device is 503, unknown band 404
package remote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/engine"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondEngineError maps engine sentinels onto HTTP statuses.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrAlreadyRunning):
		respondError(w, http.StatusConflict, "playback already running")
	case errors.Is(err, engine.ErrAudioUnavailable):
		respondError(w, http.StatusServiceUnavailable, "audio device unavailable")
	case errors.Is(err, engine.ErrInvalidParameter):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Start(); err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.engine.Stop()
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.engine.Pause()
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.TogglePlayback(); err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	var req paramsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := s.engine.Parameters()
	if req.CarrierHz != nil {
		p.CarrierHz = *req.CarrierHz
	}
	if req.BeatHz != nil {
		p.BeatHz = *req.BeatHz
	}
	if req.VolumePercent != nil {
		p.VolumePercent = *req.VolumePercent
	}
	s.engine.SetParameters(p)
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleCarrier(w http.ResponseWriter, r *http.Request) {
	var req hzRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.engine.SetCarrier(req.Hz)
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleBeat(w http.ResponseWriter, r *http.Request) {
	var req hzRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.engine.SetBeat(req.Hz)
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.engine.SetVolume(req.Percent)
	respondJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleBands(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, bandsResponse{Bands: band.Bands})
}

// handleBand applies a named band. Bands are a fixed vocabulary, so an
// unknown name is a caller error.
func (s *Server) handleBand(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.engine.SetBand(name) {
		respondError(w, http.StatusNotFound, "unknown band: "+name)
		return
	}
	respondJSON(w, http.StatusOK, applyResponse{Applied: true, Snapshot: s.engine.Snapshot()})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, presetsResponse{Presets: s.engine.Presets()})
}

// handlePreset applies a named preset. Presets are user-extensible, so an
// unknown name is not an error: the engine treats it as a no-op and the
// response says so.
func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	applied := s.engine.SetPreset(name)
	respondJSON(w, http.StatusOK, applyResponse{Applied: applied, Snapshot: s.engine.Snapshot()})
}
