// ABOUTME: Tests for environment-based configuration
// ABOUTME: Covers defaults, overrides and malformed values
package config

import (
	"os"
	"testing"
)

var configEnvVars = []string{
	"BINAURAL_SAMPLE_RATE", "BINAURAL_BUFFER_MS", "BINAURAL_RAMP_MS",
	"BINAURAL_HTTP_ADDR", "BINAURAL_MDNS", "BINAURAL_NAME",
	"BINAURAL_BACKGROUND_MODE", "BINAURAL_WAKELOCK", "BINAURAL_PRESETS",
	"BINAURAL_LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvVars {
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.SampleRate)
	}
	if cfg.BufferMs != 50 {
		t.Errorf("BufferMs = %d, want 50", cfg.BufferMs)
	}
	if cfg.RampMs != 15 {
		t.Errorf("RampMs = %d, want 15", cfg.RampMs)
	}
	if cfg.HTTPAddr != ":8090" {
		t.Errorf("HTTPAddr = %q, want :8090", cfg.HTTPAddr)
	}
	if !cfg.Advertise {
		t.Error("Advertise should default to true")
	}
	if cfg.Name != "Binaural Engine" {
		t.Errorf("Name = %q, want 'Binaural Engine'", cfg.Name)
	}
	if !cfg.BackgroundMode {
		t.Error("BackgroundMode should default to true")
	}
	if !cfg.WakeLock {
		t.Error("WakeLock should default to true")
	}
	if cfg.PresetFile != "" {
		t.Errorf("PresetFile = %q, want empty default", cfg.PresetFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BINAURAL_SAMPLE_RATE", "44100")
	t.Setenv("BINAURAL_HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("BINAURAL_BACKGROUND_MODE", "false")
	t.Setenv("BINAURAL_PRESETS", "/etc/binaural/presets.yaml")

	cfg := Load()

	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Errorf("HTTPAddr = %q, want 127.0.0.1:9999", cfg.HTTPAddr)
	}
	if cfg.BackgroundMode {
		t.Error("BackgroundMode should be false after override")
	}
	if cfg.PresetFile != "/etc/binaural/presets.yaml" {
		t.Errorf("PresetFile = %q, want /etc/binaural/presets.yaml", cfg.PresetFile)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("BINAURAL_SAMPLE_RATE", "not-a-number")
	t.Setenv("BINAURAL_WAKELOCK", "maybe")

	cfg := Load()

	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want default 48000 on parse failure", cfg.SampleRate)
	}
	if !cfg.WakeLock {
		t.Error("WakeLock should keep its default on parse failure")
	}
}
