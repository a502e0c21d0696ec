// ABOUTME: Wire types for the control API's JSON responses and event frames
// ABOUTME: Field names mirror the remote package's marshaling exactly
package client

// Parameters is the tunable parameter set.
type Parameters struct {
	CarrierHz     float64 `json:"carrierHz"`
	BeatHz        float64 `json:"beatHz"`
	VolumePercent float64 `json:"volumePercent"`
}

// Snapshot is the engine's full externally visible state.
type Snapshot struct {
	State          string     `json:"state"`
	Params         Parameters `json:"parameters"`
	LeftHz         float64    `json:"leftHz"`
	RightHz        float64    `json:"rightHz"`
	Elapsed        string     `json:"elapsed"`
	ElapsedSeconds float64    `json:"elapsedSeconds"`
	SessionID      string     `json:"sessionId"`
}

// ApplyResult reports whether a band or preset was applied.
type ApplyResult struct {
	Applied  bool     `json:"applied"`
	Snapshot Snapshot `json:"snapshot"`
}

// Band is one brainwave band with its beat range.
type Band struct {
	Name          string  `json:"name"`
	MinHz         float64 `json:"minHz"`
	MaxHz         float64 `json:"maxHz"`
	DefaultBeatHz float64 `json:"defaultBeatHz"`
}

// Preset is a named parameter combination.
type Preset struct {
	Name          string  `json:"name"`
	CarrierHz     float64 `json:"carrierHz"`
	BeatHz        float64 `json:"beatHz"`
	VolumePercent float64 `json:"volumePercent"`
}

// Event is one frame from the live event stream. Type is "state",
// "params", "elapsed" or "notice"; the other fields are populated
// per type.
type Event struct {
	Type    string      `json:"type"`
	State   string      `json:"state,omitempty"`
	Params  *Parameters `json:"parameters,omitempty"`
	LeftHz  float64     `json:"leftHz,omitempty"`
	RightHz float64     `json:"rightHz,omitempty"`
	Elapsed string      `json:"elapsed,omitempty"`
	Notice  string      `json:"notice,omitempty"`
	Level   string      `json:"level,omitempty"`
}
