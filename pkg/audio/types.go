// ABOUTME: Audio type definitions and sample conversion
// ABOUTME: float32 render format on one side, 16-bit PCM consumers on the other
package audio

const (
	// DefaultSampleRate is the engine's native output rate.
	DefaultSampleRate = 48000

	// Channels is the output channel count; the engine is inherently stereo.
	Channels = 2

	// BitDepth is the PCM depth used by streaming consumers.
	BitDepth = 16
)

// Format describes a PCM stream.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat returns the engine's native streaming format.
func DefaultFormat() Format {
	return Format{SampleRate: DefaultSampleRate, Channels: Channels, BitDepth: BitDepth}
}

// BytesPerFrame returns the byte size of one interleaved frame.
func (f Format) BytesPerFrame() int {
	return f.Channels * f.BitDepth / 8
}

// SampleToInt16 converts a float32 sample in [-1,1] to 16-bit PCM,
// clipping values outside the unit range.
func SampleToInt16(s float32) int16 {
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}

// SampleFromInt16 converts a 16-bit PCM sample to float32 in [-1,1].
func SampleFromInt16(s int16) float32 {
	return float32(s) / 32767
}

// ToInt16 converts an interleaved float32 buffer into dst. The shorter
// of the two buffers bounds the conversion; the converted count is
// returned.
func ToInt16(dst []int16, src []float32) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = SampleToInt16(src[i])
	}
	return n
}
