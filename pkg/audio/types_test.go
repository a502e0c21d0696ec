// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion and the WAV stream header
package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"positive full scale", 1, 32767},
		{"negative full scale", -1, -32767},
		{"half", 0.5, 16383},
		{"clipped high", 2.5, 32767},
		{"clipped low", -3, -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected float32
	}{
		{"zero", 0, 0},
		{"full scale", 32767, 1},
		{"negative full scale", -32767, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestToInt16(t *testing.T) {
	src := []float32{0, 1, -1, 0.5}
	dst := make([]int16, 4)

	n := ToInt16(dst, src)
	if n != 4 {
		t.Errorf("expected 4 converted, got %d", n)
	}
	expected := []int16{0, 32767, -32767, 16383}
	for i, want := range expected {
		if dst[i] != want {
			t.Errorf("expected dst[%d] = %d, got %d", i, want, dst[i])
		}
	}
}

func TestToInt16ShortDst(t *testing.T) {
	src := []float32{1, 1, 1}
	dst := make([]int16, 2)
	if n := ToInt16(dst, src); n != 2 {
		t.Errorf("expected 2 converted, got %d", n)
	}
}

func TestFormatBytesPerFrame(t *testing.T) {
	f := DefaultFormat()
	if f.BytesPerFrame() != 4 {
		t.Errorf("expected 4 bytes per stereo 16-bit frame, got %d", f.BytesPerFrame())
	}
}

func TestWriteWAVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWAVHeader(&buf, DefaultFormat()); err != nil {
		t.Fatalf("WriteWAVHeader failed: %v", err)
	}

	b := buf.Bytes()
	if len(b) != 44 {
		t.Fatalf("expected 44-byte header, got %d", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Error("expected RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint32(b[24:28]); got != 48000 {
		t.Errorf("expected sample rate 48000, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(b[22:24]); got != 2 {
		t.Errorf("expected 2 channels, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(b[28:32]); got != 192000 {
		t.Errorf("expected byte rate 192000, got %d", got)
	}
	if string(b[36:40]) != "data" {
		t.Error("expected data chunk marker")
	}
}

func TestWriteFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrames(&buf, []int16{1, -1, 256}); err != nil {
		t.Fatalf("WriteFrames failed: %v", err)
	}

	b := buf.Bytes()
	if len(b) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(b))
	}
	if int16(binary.LittleEndian.Uint16(b[0:2])) != 1 {
		t.Error("expected first sample 1")
	}
	if int16(binary.LittleEndian.Uint16(b[2:4])) != -1 {
		t.Error("expected second sample -1")
	}
	if int16(binary.LittleEndian.Uint16(b[4:6])) != 256 {
		t.Error("expected third sample 256")
	}
}
