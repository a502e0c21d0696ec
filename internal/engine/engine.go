// ABOUTME: Playback state machine: Idle/Running, sessions, live retuning
// ABOUTME: Every transition is serialized; audio rendering never is
package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/metrics"
	"github.com/Binaural-Lab/binaural-go/internal/stream"
	"github.com/Binaural-Lab/binaural-go/internal/synth"
	"github.com/Binaural-Lab/binaural-go/internal/wakelock"
	"github.com/Binaural-Lab/binaural-go/pkg/audio"
)

// State is the engine's playback state. There are exactly two: a session
// either exists and renders, or it does not. Suspension is a device-level
// condition, not a third state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Config assembles an engine. Zero fields fall back to defaults; Device
// has no default and Start fails with ErrAudioUnavailable while it is nil.
type Config struct {
	SampleRate  int
	RampMs      int
	Device      audio.Device
	Locker      wakelock.Locker
	Catalog     *band.Catalog
	Logger      *zap.Logger
	Broadcaster *stream.Broadcaster
}

// session is one playback run: a freshly built graph with its output line.
// Sessions are never reused; stopping discards the whole thing and the
// next start builds a new one.
type session struct {
	id         uuid.UUID
	graph      *synth.Graph
	line       audio.Line
	startClock float64
}

// Engine owns playback. All state transitions and parameter changes are
// serialized under one mutex; the audio render path runs outside it and
// communicates only through the graph's own locking and the clock.
type Engine struct {
	logger *zap.Logger

	device  audio.Device
	locker  wakelock.Locker
	catalog *band.Catalog
	caster  *stream.Broadcaster

	sampleRate int
	rampMs     int

	clock  *synth.Clock
	timer  *elapsedTimer
	events *events

	mu      sync.Mutex
	state   State
	params  band.Parameters
	session *session
}

// New creates an idle engine with default parameters.
func New(cfg Config) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = audio.DefaultSampleRate
	}
	if cfg.RampMs <= 0 {
		cfg.RampMs = synth.DefaultRampMs
	}
	if cfg.Locker == nil {
		cfg.Locker = wakelock.Noop{}
	}
	if cfg.Catalog == nil {
		cfg.Catalog = band.BuiltinCatalog()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	clock := synth.NewClock(cfg.SampleRate)
	e := &Engine{
		logger:     cfg.Logger,
		device:     cfg.Device,
		locker:     cfg.Locker,
		catalog:    cfg.Catalog,
		caster:     cfg.Broadcaster,
		sampleRate: cfg.SampleRate,
		rampMs:     cfg.RampMs,
		clock:      clock,
		timer:      newElapsedTimer(clock),
		events:     newEvents(),
		state:      StateIdle,
		params:     band.Default(),
	}
	metrics.CarrierHz.Set(e.params.CarrierHz)
	metrics.BeatHz.Set(e.params.BeatHz)
	metrics.VolumePercent.Set(e.params.VolumePercent)
	return e
}

// Start builds a new session and begins rendering. A second Start while
// running fails with ErrAlreadyRunning and leaves the live session alone.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked()
}

func (e *Engine) startLocked() error {
	if e.state == StateRunning {
		return ErrAlreadyRunning
	}
	if e.device == nil {
		return ErrAudioUnavailable
	}

	left, right := e.params.Channels()
	var tap synth.TapFunc
	if e.caster != nil {
		tap = e.publishTap
	}
	graph := synth.NewGraph(synth.GraphConfig{
		SampleRate: e.sampleRate,
		RampMs:     e.rampMs,
		LeftHz:     left,
		RightHz:    right,
		MasterGain: e.params.VolumePercent / 100,
		Clock:      e.clock,
		Tap:        tap,
	})

	// Read the clock before the line opens: the device may start pulling
	// frames the moment Start returns.
	startClock := e.clock.Now()
	line, err := e.device.Start(graph.Render)
	if err != nil {
		e.logger.Error("audio device start failed", zap.Error(err))
		e.notifyLocked(NoticeError, "audio device unavailable")
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}

	e.session = &session{
		id:         uuid.New(),
		graph:      graph,
		line:       line,
		startClock: startClock,
	}
	e.state = StateRunning

	if err := e.locker.Acquire(); err != nil {
		metrics.WakeLockFailuresTotal.Inc()
		e.logger.Warn("wake lock unavailable", zap.Error(err))
		e.notifyLocked(NoticeWarning, "system may sleep during playback")
	}
	e.timer.Start(startClock, e.onElapsed)

	metrics.PlaybackRunning.Set(1)
	metrics.SessionsTotal.Inc()
	e.logger.Info("playback started",
		zap.String("session", e.session.id.String()),
		zap.Float64("carrier_hz", e.params.CarrierHz),
		zap.Float64("beat_hz", e.params.BeatHz),
		zap.Float64("left_hz", left),
		zap.Float64("right_hz", right),
		zap.Float64("volume", e.params.VolumePercent),
	)
	e.publishStateLocked()
	return nil
}

// Stop ends playback and resets the elapsed readout to zero. Stopping an
// idle engine only resets the readout.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(true)
}

// Pause ends playback but keeps the elapsed readout where it was, so the
// listener can see how far the session got. There is no held session
// underneath: resuming is a fresh Start.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(false)
}

// TogglePlayback pauses a running engine or starts an idle one.
func (e *Engine) TogglePlayback() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning {
		e.stopLocked(false)
		return nil
	}
	return e.startLocked()
}

func (e *Engine) stopLocked(reset bool) {
	wasRunning := e.state == StateRunning

	if e.session != nil {
		if err := e.session.line.Close(); err != nil {
			e.logger.Warn("audio line close failed", zap.Error(err))
		}
		e.session = nil
	}
	e.state = StateIdle

	if wasRunning {
		if err := e.locker.Release(); err != nil {
			e.logger.Debug("wake lock release failed", zap.Error(err))
		}
	}
	if reset {
		e.timer.Reset()
	} else {
		e.timer.Pause()
	}

	metrics.PlaybackRunning.Set(0)
	if wasRunning {
		e.logger.Info("playback stopped", zap.Bool("reset", reset))
		e.publishStateLocked()
	}
	if reset {
		e.publishElapsedLocked()
	}
}

// SetCarrier updates the carrier frequency, retuning live if running.
func (e *Engine) SetCarrier(hz float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.params
	p.CarrierHz = hz
	e.applyLocked(p)
}

// SetBeat updates the beat frequency, retuning live if running.
func (e *Engine) SetBeat(hz float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.params
	p.BeatHz = hz
	e.applyLocked(p)
}

// SetVolume updates the master volume percentage, clamped to [0,100].
func (e *Engine) SetVolume(percent float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.params
	p.VolumePercent = percent
	e.applyLocked(p)
}

// SetParameters replaces the whole parameter set at once.
func (e *Engine) SetParameters(p band.Parameters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyLocked(p)
}

// SetBand applies a named brainwave band: its default beat on the baseline
// carrier, current volume preserved. Returns false for unknown names.
func (e *Engine) SetBand(name string) bool {
	b, ok := band.Lookup(name)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyLocked(b.Apply(e.params))
	return true
}

// SetPreset applies a named preset from the catalog. Unknown names leave
// playback and parameters completely untouched and return false.
func (e *Engine) SetPreset(name string) bool {
	p, ok := e.catalog.Get(name)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyLocked(p.Parameters())
	return true
}

// applyLocked stores clamped parameters and pushes them into the live
// graph. The graph glides to the new values; no session restart happens.
func (e *Engine) applyLocked(p band.Parameters) {
	p = band.Clamp(p)
	e.params = p
	left, right := p.Channels()

	if e.state == StateRunning && e.session != nil {
		e.session.graph.SetFrequencies(left, right)
		e.session.graph.SetMasterGain(p.VolumePercent / 100)
		metrics.RetunesTotal.Inc()
	}

	metrics.CarrierHz.Set(p.CarrierHz)
	metrics.BeatHz.Set(p.BeatHz)
	metrics.VolumePercent.Set(p.VolumePercent)
	e.events.publish(Event{Kind: EventParams, State: e.state, Params: p, LeftHz: left, RightHz: right})
}

// SuspendOutput halts the device without ending the session. The render
// clock stalls with it, so the elapsed readout freezes too.
func (e *Engine) SuspendOutput() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning || e.device == nil {
		return
	}
	if err := e.device.Suspend(); err != nil {
		e.logger.Warn("device suspend failed", zap.Error(err))
		return
	}
	e.logger.Info("audio output suspended")
}

// ResumeOutput restarts a suspended device. When the platform refuses, the
// engine demotes itself to Idle and says so instead of pretending to play.
func (e *Engine) ResumeOutput() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning || e.device == nil {
		return
	}
	if err := e.device.Resume(); err != nil {
		metrics.ResumeFailuresTotal.Inc()
		e.logger.Error("device resume failed", zap.Error(err))
		e.stopLocked(false)
		e.notifyLocked(NoticeError, "audio resume failed; playback stopped")
		return
	}
	e.logger.Info("audio output resumed")
}

// Reconcile checks the running flag against the actual output line and
// demotes to Idle when the line died underneath us. Platforms tear audio
// down in the background without telling the process, so the flag alone
// cannot be trusted after a return to the foreground.
func (e *Engine) Reconcile() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning || e.session == nil {
		return
	}
	if e.session.line.Running() {
		return
	}
	metrics.ReconcileDemotionsTotal.Inc()
	e.logger.Warn("audio line dead on reconcile, demoting to idle",
		zap.String("session", e.session.id.String()))
	e.stopLocked(false)
	e.notifyLocked(NoticeWarning, "audio was shut down in the background")
}

// Notify publishes a user-facing notice through the event stream.
func (e *Engine) Notify(level NoticeLevel, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifyLocked(level, message)
}

// Subscribe registers an event listener.
func (e *Engine) Subscribe() *Subscription {
	return e.events.subscribe()
}

// Unsubscribe removes an event listener.
func (e *Engine) Unsubscribe(s *Subscription) {
	e.events.unsubscribe(s)
}

// State returns the current playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsRunning reports whether a session is live.
func (e *Engine) IsRunning() bool {
	return e.State() == StateRunning
}

// Parameters returns the current parameter set.
func (e *Engine) Parameters() band.Parameters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Channels returns the derived left/right channel frequencies.
func (e *Engine) Channels() (leftHz, rightHz float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params.Channels()
}

// Presets lists the preset catalog in order.
func (e *Engine) Presets() []band.Preset {
	return e.catalog.List()
}

// Elapsed returns the MM:SS session readout.
func (e *Engine) Elapsed() string {
	return e.timer.Display()
}

// ElapsedSeconds returns the session readout in seconds.
func (e *Engine) ElapsedSeconds() float64 {
	return e.timer.Seconds()
}

// Clock returns the cumulative rendered-audio time in seconds. It spans
// sessions and never rewinds; it stalls while the device is suspended.
func (e *Engine) Clock() float64 {
	return e.clock.Now()
}

// SampleRate returns the engine's fixed sample rate.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// SessionID returns the live session's id, or "" when idle.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ""
	}
	return e.session.id.String()
}

// Snapshot captures the full externally visible state in one read.
type Snapshot struct {
	State          string          `json:"state"`
	Params         band.Parameters `json:"parameters"`
	LeftHz         float64         `json:"leftHz"`
	RightHz        float64         `json:"rightHz"`
	Elapsed        string          `json:"elapsed"`
	ElapsedSeconds float64         `json:"elapsedSeconds"`
	ClockSeconds   float64         `json:"clockSeconds"`
	SessionID      string          `json:"sessionId,omitempty"`
}

// Snapshot returns a consistent view of state, parameters and timing.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	left, right := e.params.Channels()
	snap := Snapshot{
		State:          e.state.String(),
		Params:         e.params,
		LeftHz:         left,
		RightHz:        right,
		Elapsed:        e.timer.Display(),
		ElapsedSeconds: e.timer.Seconds(),
		ClockSeconds:   e.clock.Now(),
	}
	if e.session != nil {
		snap.SessionID = e.session.id.String()
	}
	return snap
}

// Close stops playback and releases the output device.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.stopLocked(true)
	e.mu.Unlock()
	if e.device == nil {
		return nil
	}
	return e.device.Close()
}

// publishTap converts rendered float32 frames to int16 PCM and hands them
// to the monitor broadcaster. Runs on the render path; the broadcaster
// never blocks, and each frame is a fresh allocation because listeners
// take ownership.
func (e *Engine) publishTap(samples []float32) {
	frame := make([]int16, len(samples))
	audio.ToInt16(frame, samples)
	e.caster.Publish(frame)
}

func (e *Engine) onElapsed(display string) {
	e.events.publish(Event{Kind: EventElapsed, Elapsed: display})
}

func (e *Engine) publishStateLocked() {
	left, right := e.params.Channels()
	e.events.publish(Event{
		Kind:    EventState,
		State:   e.state,
		Params:  e.params,
		LeftHz:  left,
		RightHz: right,
		Elapsed: e.timer.Display(),
	})
}

func (e *Engine) publishElapsedLocked() {
	e.events.publish(Event{Kind: EventElapsed, Elapsed: e.timer.Display()})
}

func (e *Engine) notifyLocked(level NoticeLevel, message string) {
	e.events.publish(Event{Kind: EventNotice, Notice: message, Level: level})
}
