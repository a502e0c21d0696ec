// ABOUTME: High-level binaural beat generation API
// ABOUTME: Provides a simple Generator facade over the playback engine
// Package binaural provides a high-level API for binaural beat playback.
//
// A Generator renders one pure sine tone per stereo channel, split around
// a carrier frequency by a beat offset. Parameters can be retuned while
// playing, snapped to a brainwave band, or loaded from a named preset.
//
// Example:
//
//	gen, err := binaural.New(binaural.Config{
//	    OnStatus: func(s binaural.Status) { fmt.Println(s.State, s.Elapsed) },
//	})
//	err = gen.Start()
//	gen.SetBeat(6) // theta
//	gen.SetPreset("meditation")
//	gen.Stop()
//	gen.Close()
//
// For custom output devices, implement audio.Device from the audio package
// and pass it in Config.Device.
package binaural
