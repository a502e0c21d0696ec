// ABOUTME: Wire types for the control API and the event websocket
// ABOUTME: Events mirror engine events; requests use pointer fields for merges
package remote

import (
	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/engine"
)

// EventMessage is one websocket event frame. Type is the engine event kind;
// only the fields relevant to that kind are populated.
type EventMessage struct {
	Type    string           `json:"type"`
	State   string           `json:"state,omitempty"`
	Params  *band.Parameters `json:"parameters,omitempty"`
	LeftHz  float64          `json:"leftHz,omitempty"`
	RightHz float64          `json:"rightHz,omitempty"`
	Elapsed string           `json:"elapsed,omitempty"`
	Notice  string           `json:"notice,omitempty"`
	Level   string           `json:"level,omitempty"`
}

// eventMessage converts an engine event to its wire form.
func eventMessage(ev engine.Event) EventMessage {
	msg := EventMessage{Type: ev.Kind.String()}
	switch ev.Kind {
	case engine.EventState:
		msg.State = ev.State.String()
		p := ev.Params
		msg.Params = &p
		msg.LeftHz = ev.LeftHz
		msg.RightHz = ev.RightHz
		msg.Elapsed = ev.Elapsed
	case engine.EventParams:
		msg.State = ev.State.String()
		p := ev.Params
		msg.Params = &p
		msg.LeftHz = ev.LeftHz
		msg.RightHz = ev.RightHz
	case engine.EventElapsed:
		msg.Elapsed = ev.Elapsed
	case engine.EventNotice:
		msg.Notice = ev.Notice
		msg.Level = ev.Level.String()
	}
	return msg
}

// snapshotMessage renders a full snapshot as a state event, sent first on
// every new websocket so clients can paint without a separate query.
func snapshotMessage(snap engine.Snapshot) EventMessage {
	p := snap.Params
	return EventMessage{
		Type:    engine.EventState.String(),
		State:   snap.State,
		Params:  &p,
		LeftHz:  snap.LeftHz,
		RightHz: snap.RightHz,
		Elapsed: snap.Elapsed,
	}
}

// paramsRequest is a partial parameter update; nil fields keep their value.
type paramsRequest struct {
	CarrierHz     *float64 `json:"carrierHz"`
	BeatHz        *float64 `json:"beatHz"`
	VolumePercent *float64 `json:"volumePercent"`
}

// hzRequest carries a single frequency value.
type hzRequest struct {
	Hz float64 `json:"hz"`
}

// volumeRequest carries a volume percentage.
type volumeRequest struct {
	Percent float64 `json:"percent"`
}

// applyResponse reports whether a named band/preset existed, plus the
// resulting state either way.
type applyResponse struct {
	Applied  bool            `json:"applied"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// bandsResponse lists the supported bands.
type bandsResponse struct {
	Bands []band.Band `json:"bands"`
}

// presetsResponse lists the catalog contents.
type presetsResponse struct {
	Presets []band.Preset `json:"presets"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}
