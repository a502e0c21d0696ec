// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, the output Device abstraction and sample conversion
// Package audio provides fundamental audio types and utilities for the
// binaural engine.
//
// This package defines the types shared between the synthesis core and its
// consumers:
//   - Format: Describes a PCM stream (sample rate, channels, bit depth)
//   - Device/Line: The pull-model output sink the engine renders into;
//     implementations can be real hardware or test doubles
//
// It also provides utilities for converting between sample formats:
//   - float32 [-1,1] ↔ int16 PCM with clipping
//   - interleaved buffer conversion for streaming consumers
//   - a RIFF/WAVE header writer for live PCM streams
//
// Example:
//
//	format := audio.Format{
//	    SampleRate: 48000,
//	    Channels:   2,
//	    BitDepth:   16,
//	}
//
//	// Convert a rendered float32 frame for a 16-bit consumer
//	pcm := make([]int16, len(frame))
//	audio.ToInt16(pcm, frame)
package audio
