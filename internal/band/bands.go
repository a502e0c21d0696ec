// ABOUTME: Named brainwave band definitions
// ABOUTME: Five fixed ranges with their default beat frequencies
package band

import "strings"

// Band is a named brainwave-frequency range. Ranges follow the common
// EEG convention and overlap slightly at the edges (beta's upper bound
// meets gamma's lower bound).
type Band struct {
	Name          string  `json:"name"`
	MinHz         float64 `json:"minHz"`
	MaxHz         float64 `json:"maxHz"`
	DefaultBeatHz float64 `json:"defaultBeatHz"`
}

// Bands lists the five supported bands in ascending frequency order.
// The slice is fixed at process start and must not be mutated.
var Bands = []Band{
	{Name: "delta", MinHz: 0.5, MaxHz: 4, DefaultBeatHz: 2},
	{Name: "theta", MinHz: 4, MaxHz: 8, DefaultBeatHz: 6},
	{Name: "alpha", MinHz: 8, MaxHz: 12, DefaultBeatHz: 10},
	{Name: "beta", MinHz: 12, MaxHz: 30, DefaultBeatHz: 20},
	{Name: "gamma", MinHz: 30, MaxHz: 100, DefaultBeatHz: 40},
}

// Lookup finds a band by name, case-insensitively.
func Lookup(name string) (Band, bool) {
	name = strings.ToLower(name)
	for _, b := range Bands {
		if b.Name == name {
			return b, true
		}
	}
	return Band{}, false
}

// Names returns the band names in definition order.
func Names() []string {
	names := make([]string, len(Bands))
	for i, b := range Bands {
		names[i] = b.Name
	}
	return names
}

// Apply returns the parameters that selecting this band produces: the
// band's default beat on the baseline carrier. Selecting a band always
// resets the carrier, regardless of its prior value. Volume is preserved
// from the current parameters.
func (b Band) Apply(current Parameters) Parameters {
	return Parameters{
		CarrierHz:     DefaultCarrierHz,
		BeatHz:        b.DefaultBeatHz,
		VolumePercent: current.VolumePercent,
	}
}

// Contains reports whether a beat frequency falls within the band range.
func (b Band) Contains(beatHz float64) bool {
	return beatHz >= b.MinHz && beatHz <= b.MaxHz
}

// For returns the band a beat frequency falls in, preferring the
// lower-frequency band where ranges touch.
func For(beatHz float64) (Band, bool) {
	for _, b := range Bands {
		if b.Contains(beatHz) {
			return b, true
		}
	}
	return Band{}, false
}
