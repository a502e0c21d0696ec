// ABOUTME: Integration tests for the Generator API
// ABOUTME: Tests creation, defaults, playback control and callbacks
package binaural

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Binaural-Lab/binaural-go/internal/device"
	"github.com/Binaural-Lab/binaural-go/pkg/audio"
)

const testRate = 8000

func newTestGenerator(t *testing.T, config Config) (*Generator, *device.Fake) {
	t.Helper()

	fake := device.NewFake()
	if config.Device == nil {
		config.Device = fake
	}
	if config.SampleRate == 0 {
		config.SampleRate = testRate
	}

	gen, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	t.Cleanup(func() { gen.Close() })
	return gen, fake
}

func waitStatus(t *testing.T, ch <-chan Status, state string) Status {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-ch:
			if s.State == state {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q status", state)
		}
	}
}

func TestNewGenerator(t *testing.T) {
	gen, _ := newTestGenerator(t, Config{})

	status := gen.Status()
	if status.State != "idle" {
		t.Errorf("Expected initial state='idle', got '%s'", status.State)
	}
	if status.CarrierHz != 400 {
		t.Errorf("Expected carrier=400, got %v", status.CarrierHz)
	}
	if status.BeatHz != 10 {
		t.Errorf("Expected beat=10, got %v", status.BeatHz)
	}
	if status.VolumePercent != 50 {
		t.Errorf("Expected volume=50, got %v", status.VolumePercent)
	}
	if status.Elapsed != "00:00" {
		t.Errorf("Expected elapsed=00:00, got %q", status.Elapsed)
	}
	if gen.IsRunning() {
		t.Error("Expected generator to be idle initially")
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	gen, _ := newTestGenerator(t, Config{SampleRate: -1})

	if gen.config.SampleRate != audio.DefaultSampleRate {
		t.Errorf("Expected default SampleRate=%d, got %d", audio.DefaultSampleRate, gen.config.SampleRate)
	}
	if gen.config.BufferMs != 50 {
		t.Errorf("Expected default BufferMs=50, got %d", gen.config.BufferMs)
	}
	if gen.config.Logger == nil {
		t.Error("Expected default Logger to be set")
	}
}

func TestGeneratorPlaybackLifecycle(t *testing.T) {
	gen, fake := newTestGenerator(t, Config{})

	if err := gen.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !gen.IsRunning() {
		t.Error("Expected generator to be running after Start")
	}

	err := gen.Start()
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning on second start, got %v", err)
	}

	fake.Pump(2 * testRate)
	if got := gen.Elapsed(); got != "00:02" {
		t.Errorf("Expected elapsed=00:02 after two seconds, got %q", got)
	}

	gen.Pause()
	if gen.IsRunning() {
		t.Error("Expected generator to be idle after Pause")
	}
	if got := gen.Elapsed(); got != "00:02" {
		t.Errorf("Expected pause to keep elapsed=00:02, got %q", got)
	}

	gen.Stop()
	if got := gen.Elapsed(); got != "00:00" {
		t.Errorf("Expected stop to reset elapsed, got %q", got)
	}

	if err := gen.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !gen.IsRunning() {
		t.Error("Expected toggle to start playback")
	}
	if err := gen.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if gen.IsRunning() {
		t.Error("Expected toggle to pause playback")
	}
}

func TestGeneratorStartWithoutDevice(t *testing.T) {
	fake := device.NewFake()
	fake.StartErr = errors.New("no output")

	gen, _ := newTestGenerator(t, Config{Device: fake})

	err := gen.Start()
	if !errors.Is(err, ErrAudioUnavailable) {
		t.Errorf("Expected ErrAudioUnavailable, got %v", err)
	}
	if gen.IsRunning() {
		t.Error("Expected generator to stay idle after failed start")
	}
}

func TestGeneratorSetVolume(t *testing.T) {
	gen, _ := newTestGenerator(t, Config{})

	gen.SetVolume(80)
	if got := gen.Status().VolumePercent; got != 80 {
		t.Errorf("Expected volume=80, got %v", got)
	}

	// Clamping - too high
	gen.SetVolume(150)
	if got := gen.Status().VolumePercent; got != 100 {
		t.Errorf("Expected volume clamped to 100, got %v", got)
	}

	// Clamping - too low
	gen.SetVolume(-10)
	if got := gen.Status().VolumePercent; got != 0 {
		t.Errorf("Expected volume clamped to 0, got %v", got)
	}
}

func TestGeneratorRetune(t *testing.T) {
	gen, _ := newTestGenerator(t, Config{})

	gen.SetCarrier(300)
	gen.SetBeat(8)

	status := gen.Status()
	if status.CarrierHz != 300 || status.BeatHz != 8 {
		t.Errorf("Expected carrier=300 beat=8, got %v/%v", status.CarrierHz, status.BeatHz)
	}
	if status.LeftHz != 296 || status.RightHz != 304 {
		t.Errorf("Expected channels 296/304, got %v/%v", status.LeftHz, status.RightHz)
	}
}

func TestGeneratorBands(t *testing.T) {
	gen, _ := newTestGenerator(t, Config{})

	bands := gen.Bands()
	if len(bands) != 5 {
		t.Fatalf("Expected 5 bands, got %d", len(bands))
	}
	if bands[0] != "delta" || bands[4] != "gamma" {
		t.Errorf("Expected delta..gamma ordering, got %v", bands)
	}

	if !gen.SetBand("theta") {
		t.Fatal("Expected theta band to apply")
	}
	status := gen.Status()
	if status.BeatHz != 6 {
		t.Errorf("Expected theta default beat=6, got %v", status.BeatHz)
	}
	if status.CarrierHz != 400 {
		t.Errorf("Expected band change to reset carrier to 400, got %v", status.CarrierHz)
	}

	if gen.SetBand("epsilon") {
		t.Error("Expected unknown band to be rejected")
	}
}

func TestGeneratorPresets(t *testing.T) {
	gen, _ := newTestGenerator(t, Config{})

	presets := gen.Presets()
	if len(presets) != 4 {
		t.Fatalf("Expected 4 built-in presets, got %d", len(presets))
	}

	if !gen.SetPreset("focus") {
		t.Fatal("Expected focus preset to apply")
	}
	status := gen.Status()
	if status.CarrierHz != 440 || status.BeatHz != 15 || status.VolumePercent != 50 {
		t.Errorf("Expected focus 440/15/50, got %v/%v/%v",
			status.CarrierHz, status.BeatHz, status.VolumePercent)
	}

	if gen.SetPreset("zen") {
		t.Error("Expected unknown preset to be rejected")
	}
	after := gen.Status()
	if after.CarrierHz != 440 || after.BeatHz != 15 {
		t.Errorf("Expected unknown preset to leave parameters untouched, got %v/%v",
			after.CarrierHz, after.BeatHz)
	}
}

func TestGeneratorPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := "presets:\n  - name: deepwork\n    carrier_hz: 430\n    beat_hz: 18\n    volume_percent: 60\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write preset file: %v", err)
	}

	gen, _ := newTestGenerator(t, Config{PresetFile: path})

	presets := gen.Presets()
	if len(presets) != 5 {
		t.Fatalf("Expected 5 presets with file merged, got %d", len(presets))
	}

	if !gen.SetPreset("deepwork") {
		t.Fatal("Expected file preset to apply")
	}
	status := gen.Status()
	if status.CarrierHz != 430 || status.BeatHz != 18 || status.VolumePercent != 60 {
		t.Errorf("Expected deepwork 430/18/60, got %v/%v/%v",
			status.CarrierHz, status.BeatHz, status.VolumePercent)
	}
}

func TestGeneratorPresetFileMissing(t *testing.T) {
	_, err := New(Config{
		Device:     device.NewFake(),
		PresetFile: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	if err == nil {
		t.Fatal("Expected error for missing preset file")
	}
}

func TestGeneratorStatusCallback(t *testing.T) {
	statuses := make(chan Status, 32)
	gen, _ := newTestGenerator(t, Config{
		OnStatus: func(s Status) { statuses <- s },
	})

	if err := gen.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	status := waitStatus(t, statuses, "running")
	if status.LeftHz != 395 || status.RightHz != 405 {
		t.Errorf("Expected running status channels 395/405, got %v/%v", status.LeftHz, status.RightHz)
	}

	gen.SetBeat(6)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-statuses:
			if s.BeatHz == 6 {
				if s.State != "running" {
					t.Errorf("Expected retune status to keep running state, got %q", s.State)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for retune status")
		}
	}
}

func TestGeneratorNoticeCallback(t *testing.T) {
	fake := device.NewFake()
	fake.StartErr = errors.New("no output")

	notices := make(chan Notice, 8)
	gen, _ := newTestGenerator(t, Config{
		Device:   fake,
		OnNotice: func(n Notice) { notices <- n },
	})

	gen.Start()

	select {
	case n := <-notices:
		if n.Level != "error" {
			t.Errorf("Expected error notice, got level %q", n.Level)
		}
		if n.Text == "" {
			t.Error("Expected notice text to be set")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notice")
	}
}

func TestGeneratorCloseStopsPlayback(t *testing.T) {
	fake := device.NewFake()
	gen, err := New(Config{SampleRate: testRate, Device: fake})
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	if err := gen.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := gen.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if gen.IsRunning() {
		t.Error("Expected Close to stop playback")
	}
	if fake.Line().Running() {
		t.Error("Expected Close to shut the output line")
	}
}
