// ABOUTME: Runtime configuration loaded from environment variables
// ABOUTME: Command-line flags in main override these values
package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Audio output
	SampleRate int // output sample rate in Hz
	BufferMs   int // device buffer depth in milliseconds
	RampMs     int // parameter ramp length in milliseconds

	// Control server
	HTTPAddr  string // listen address, empty disables the server
	Advertise bool   // announce the control server over mDNS
	Name      string // instance name for discovery and the TUI header

	// Behavior
	BackgroundMode bool   // keep playing when the terminal loses focus
	WakeLock       bool   // hold a display/idle inhibitor while running
	PresetFile     string // optional YAML preset catalog

	// Logging
	LogFile string // log destination when the TUI owns the terminal
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		SampleRate: envInt("BINAURAL_SAMPLE_RATE", 48000),
		BufferMs:   envInt("BINAURAL_BUFFER_MS", 50),
		RampMs:     envInt("BINAURAL_RAMP_MS", 15),

		HTTPAddr:  envStr("BINAURAL_HTTP_ADDR", ":8090"),
		Advertise: envBool("BINAURAL_MDNS", true),
		Name:      envStr("BINAURAL_NAME", "Binaural Engine"),

		BackgroundMode: envBool("BINAURAL_BACKGROUND_MODE", true),
		WakeLock:       envBool("BINAURAL_WAKELOCK", true),
		PresetFile:     envStr("BINAURAL_PRESETS", ""),

		LogFile: envStr("BINAURAL_LOG_FILE", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
