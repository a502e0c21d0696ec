// ABOUTME: High-level Generator API for binaural beat playback
// ABOUTME: Wraps the engine with defaults, callbacks and simple controls
package binaural

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/device"
	"github.com/Binaural-Lab/binaural-go/internal/engine"
	"github.com/Binaural-Lab/binaural-go/pkg/audio"
)

// Config holds generator configuration. The zero value plays through the
// system speakers at 48 kHz with the built-in presets.
type Config struct {
	// SampleRate is the output sample rate in Hz (default: 48000).
	SampleRate int

	// BufferMs is the device buffer depth in milliseconds (default: 50).
	// Smaller buffers retune faster; larger ones survive scheduling hiccups.
	BufferMs int

	// Device overrides the audio output. Leave nil for the system speakers.
	Device audio.Device

	// PresetFile names a YAML file of extra presets merged over the
	// built-in catalog.
	PresetFile string

	// Logger receives engine diagnostics (default: discard).
	Logger *zap.Logger

	// OnStatus is called after every state, parameter or elapsed change.
	OnStatus func(Status)

	// OnNotice is called for transient user-facing messages.
	OnNotice func(Notice)
}

// Status describes the generator at one instant.
type Status struct {
	State         string // "idle" or "running"
	CarrierHz     float64
	BeatHz        float64
	VolumePercent float64
	LeftHz        float64
	RightHz       float64
	Elapsed       string // MM:SS of the current session
}

// Notice is a transient user-facing message.
type Notice struct {
	Level string // "info", "warning" or "error"
	Text  string
}

// Errors returned by Generator operations.
var (
	// ErrAlreadyRunning is returned by Start while audio is playing.
	ErrAlreadyRunning = engine.ErrAlreadyRunning
	// ErrAudioUnavailable is returned when the output device cannot open.
	ErrAudioUnavailable = engine.ErrAudioUnavailable
)

// Generator provides high-level binaural beat playback.
type Generator struct {
	config Config
	engine *engine.Engine
	sub    *engine.Subscription
	done   chan struct{}
}

// New creates an idle generator with the given configuration.
func New(config Config) (*Generator, error) {
	if config.SampleRate <= 0 {
		config.SampleRate = audio.DefaultSampleRate
	}
	if config.BufferMs <= 0 {
		config.BufferMs = 50
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Device == nil {
		config.Device = device.NewOto(config.SampleRate, config.BufferMs, config.Logger)
	}

	catalog := band.BuiltinCatalog()
	if config.PresetFile != "" {
		if err := catalog.LoadFile(config.PresetFile); err != nil {
			return nil, fmt.Errorf("load presets: %w", err)
		}
	}

	g := &Generator{
		config: config,
		engine: engine.New(engine.Config{
			SampleRate: config.SampleRate,
			Device:     config.Device,
			Catalog:    catalog,
			Logger:     config.Logger,
		}),
		done: make(chan struct{}),
	}

	if config.OnStatus != nil || config.OnNotice != nil {
		g.sub = g.engine.Subscribe()
		go g.pump()
	}

	return g, nil
}

// Start begins playback with the current parameters.
func (g *Generator) Start() error {
	return g.engine.Start()
}

// Stop ends playback and resets the elapsed display.
func (g *Generator) Stop() {
	g.engine.Stop()
}

// Pause ends playback but keeps the elapsed display.
func (g *Generator) Pause() {
	g.engine.Pause()
}

// Toggle starts playback when idle and pauses it when running.
func (g *Generator) Toggle() error {
	return g.engine.TogglePlayback()
}

// SetCarrier retunes the carrier frequency in Hz.
func (g *Generator) SetCarrier(hz float64) {
	g.engine.SetCarrier(hz)
}

// SetBeat retunes the beat frequency in Hz.
func (g *Generator) SetBeat(hz float64) {
	g.engine.SetBeat(hz)
}

// SetVolume sets the output volume (0-100).
func (g *Generator) SetVolume(percent float64) {
	g.engine.SetVolume(percent)
}

// SetBand snaps the beat to a brainwave band's default frequency. It
// reports whether the named band exists.
func (g *Generator) SetBand(name string) bool {
	return g.engine.SetBand(name)
}

// SetPreset applies a named preset. It reports whether the preset exists;
// parameters are untouched when it does not.
func (g *Generator) SetPreset(name string) bool {
	return g.engine.SetPreset(name)
}

// Bands lists the supported band names in ascending frequency order.
func (g *Generator) Bands() []string {
	return band.Names()
}

// Presets lists the available preset names.
func (g *Generator) Presets() []string {
	presets := g.engine.Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// Status returns the current generator state.
func (g *Generator) Status() Status {
	return statusFromSnapshot(g.engine.Snapshot())
}

// IsRunning reports whether audio is playing.
func (g *Generator) IsRunning() bool {
	return g.engine.IsRunning()
}

// Elapsed returns the MM:SS display for the current session.
func (g *Generator) Elapsed() string {
	return g.engine.Elapsed()
}

// Close stops playback and releases the output device. Callbacks receive
// the final idle status before Close returns.
func (g *Generator) Close() error {
	err := g.engine.Close()
	if g.sub != nil {
		g.engine.Unsubscribe(g.sub)
		<-g.done
	}
	return err
}

// pump forwards engine events to the configured callbacks. Parameter and
// elapsed events carry partial readings, so the last full status is kept
// and patched rather than rebuilt per event.
func (g *Generator) pump() {
	defer close(g.done)

	status := statusFromSnapshot(g.engine.Snapshot())
	for {
		select {
		case <-g.sub.Done():
			// Events published before the unsubscribe may still be
			// queued; deliver them so Close's final idle status lands.
			for {
				select {
				case ev := <-g.sub.C:
					g.dispatch(ev, &status)
				default:
					return
				}
			}

		case ev := <-g.sub.C:
			g.dispatch(ev, &status)
		}
	}
}

func (g *Generator) dispatch(ev engine.Event, status *Status) {
	switch ev.Kind {
	case engine.EventNotice:
		if g.config.OnNotice != nil {
			g.config.OnNotice(Notice{Level: ev.Level.String(), Text: ev.Notice})
		}
		return

	case engine.EventElapsed:
		status.Elapsed = ev.Elapsed

	default:
		status.State = ev.State.String()
		status.CarrierHz = ev.Params.CarrierHz
		status.BeatHz = ev.Params.BeatHz
		status.VolumePercent = ev.Params.VolumePercent
		status.LeftHz = ev.LeftHz
		status.RightHz = ev.RightHz
		if ev.Elapsed != "" {
			status.Elapsed = ev.Elapsed
		}
	}

	if g.config.OnStatus != nil {
		g.config.OnStatus(*status)
	}
}

func statusFromSnapshot(snap engine.Snapshot) Status {
	return Status{
		State:         snap.State,
		CarrierHz:     snap.Params.CarrierHz,
		BeatHz:        snap.Params.BeatHz,
		VolumePercent: snap.Params.VolumePercent,
		LeftHz:        snap.LeftHz,
		RightHz:       snap.RightHz,
		Elapsed:       snap.Elapsed,
	}
}
