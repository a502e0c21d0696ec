// ABOUTME: RIFF/WAVE header writer for live PCM streams
// ABOUTME: Uses a maximal data size so open-ended streams stay playable
package audio

import (
	"encoding/binary"
	"io"
)

// wavHeaderSize is the fixed PCM header length preceding the data chunk.
const wavHeaderSize = 44

// WriteWAVHeader writes a PCM WAVE header for a stream of unknown length.
// The RIFF and data sizes are set to the maximum value, which players
// treat as "read until the connection closes", the usual convention for
// live WAV streams.
func WriteWAVHeader(w io.Writer, f Format) error {
	var buf [wavHeaderSize]byte

	byteRate := f.SampleRate * f.Channels * f.BitDepth / 8
	blockAlign := f.Channels * f.BitDepth / 8

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 0xFFFFFFFF)
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(buf[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(f.BitDepth))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], 0xFFFFFFFF)

	_, err := w.Write(buf[:])
	return err
}

// WriteFrames writes interleaved int16 samples as little-endian PCM.
func WriteFrames(w io.Writer, samples []int16) error {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	_, err := w.Write(buf)
	return err
}
