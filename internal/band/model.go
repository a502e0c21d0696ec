// ABOUTME: Pure frequency model for binaural tone generation
// ABOUTME: Derives per-channel frequencies and clamps raw parameters
package band

const (
	// DefaultCarrierHz is the baseline carrier every band selection resets to.
	DefaultCarrierHz = 400.0

	// MinFrequencyHz is the floor applied to any derived or supplied
	// frequency so a channel never goes non-positive.
	MinFrequencyHz = 0.1

	// MaxVolumePercent bounds the master volume.
	MaxVolumePercent = 100.0
)

// Parameters is the full tunable state of the generator.
type Parameters struct {
	CarrierHz     float64 `json:"carrierHz" yaml:"carrier_hz"`
	BeatHz        float64 `json:"beatHz" yaml:"beat_hz"`
	VolumePercent float64 `json:"volumePercent" yaml:"volume_percent"`
}

// Default returns the initial parameter set: alpha-band beat on the
// baseline carrier at half volume.
func Default() Parameters {
	return Parameters{CarrierHz: DefaultCarrierHz, BeatHz: 10, VolumePercent: 50}
}

// DeriveChannels splits carrier and beat into left/right channel
// frequencies. The beat is centered on the carrier: left = carrier - beat/2,
// right = carrier + beat/2. If the left channel would fall to zero or below
// it is clamped to MinFrequencyHz rather than producing a non-positive
// frequency.
func DeriveChannels(carrierHz, beatHz float64) (leftHz, rightHz float64) {
	leftHz = carrierHz - beatHz/2
	rightHz = carrierHz + beatHz/2
	if leftHz <= 0 {
		leftHz = MinFrequencyHz
	}
	if rightHz <= 0 {
		rightHz = MinFrequencyHz
	}
	return leftHz, rightHz
}

// Clamp normalizes raw parameters at the model boundary: carrier stays
// positive, beat stays non-negative, volume stays within [0,100].
func Clamp(p Parameters) Parameters {
	if p.CarrierHz < MinFrequencyHz {
		p.CarrierHz = MinFrequencyHz
	}
	if p.BeatHz < 0 {
		p.BeatHz = 0
	}
	if p.VolumePercent < 0 {
		p.VolumePercent = 0
	}
	if p.VolumePercent > MaxVolumePercent {
		p.VolumePercent = MaxVolumePercent
	}
	return p
}

// Channels is a convenience wrapper deriving both frequencies from a
// parameter set after clamping.
func (p Parameters) Channels() (leftHz, rightHz float64) {
	c := Clamp(p)
	return DeriveChannels(c.CarrierHz, c.BeatHz)
}
