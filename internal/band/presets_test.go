// ABOUTME: Tests for the preset catalog
// ABOUTME: Covers built-ins, lookup misses and YAML merging
package band

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCatalog(t *testing.T) {
	c := BuiltinCatalog()

	tests := []struct {
		name            string
		expectedCarrier float64
		expectedBeat    float64
		expectedVolume  float64
	}{
		{"meditation", 400, 6, 40},
		{"focus", 440, 15, 50},
		{"sleep", 360, 3, 35},
		{"creativity", 420, 8, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := c.Get(tt.name)
			if !ok {
				t.Fatalf("preset %s not found", tt.name)
			}
			if p.CarrierHz != tt.expectedCarrier {
				t.Errorf("expected carrier %v, got %v", tt.expectedCarrier, p.CarrierHz)
			}
			if p.BeatHz != tt.expectedBeat {
				t.Errorf("expected beat %v, got %v", tt.expectedBeat, p.BeatHz)
			}
			if p.VolumePercent != tt.expectedVolume {
				t.Errorf("expected volume %v, got %v", tt.expectedVolume, p.VolumePercent)
			}
		})
	}
}

func TestCatalogGetUnknown(t *testing.T) {
	c := BuiltinCatalog()
	if _, ok := c.Get("xyz"); ok {
		t.Error("expected unknown preset to report not found")
	}
}

func TestCatalogGetCaseInsensitive(t *testing.T) {
	c := BuiltinCatalog()
	if _, ok := c.Get("Meditation"); !ok {
		t.Error("expected Get to be case-insensitive")
	}
}

func TestCatalogNamesOrder(t *testing.T) {
	c := BuiltinCatalog()
	names := c.Names()
	expected := []string{"meditation", "focus", "sleep", "creativity"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d presets, got %d", len(expected), len(names))
	}
	for i, n := range expected {
		if names[i] != n {
			t.Errorf("expected names[%d] = %s, got %s", i, n, names[i])
		}
	}
}

func TestCatalogLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	content := `presets:
  - name: meditation
    carrier_hz: 432
    beat_hz: 7
    volume_percent: 33
  - name: deepwork
    carrier_hz: 410
    beat_hz: 18
    volume_percent: 60
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write preset file: %v", err)
	}

	c := BuiltinCatalog()
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	// Override replaces the built-in in place.
	p, ok := c.Get("meditation")
	if !ok {
		t.Fatal("meditation missing after merge")
	}
	if p.CarrierHz != 432 || p.BeatHz != 7 || p.VolumePercent != 33 {
		t.Errorf("expected overridden meditation {432 7 33}, got {%v %v %v}",
			p.CarrierHz, p.BeatHz, p.VolumePercent)
	}

	// New entry appends after the built-ins.
	if _, ok := c.Get("deepwork"); !ok {
		t.Error("deepwork missing after merge")
	}
	names := c.Names()
	if names[len(names)-1] != "deepwork" {
		t.Errorf("expected deepwork appended last, got order %v", names)
	}
	if c.Len() != 5 {
		t.Errorf("expected 5 presets after merge, got %d", c.Len())
	}
}

func TestCatalogLoadFileErrors(t *testing.T) {
	c := BuiltinCatalog()

	if err := c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("presets: {not a list"), 0o644)
	if err := c.LoadFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	unnamed := filepath.Join(t.TempDir(), "unnamed.yaml")
	os.WriteFile(unnamed, []byte("presets:\n  - carrier_hz: 100\n"), 0o644)
	if err := c.LoadFile(unnamed); err == nil {
		t.Error("expected error for preset without a name")
	}
}

func TestPresetParametersClamped(t *testing.T) {
	p := Preset{Name: "loud", CarrierHz: 400, BeatHz: 10, VolumePercent: 250}
	params := p.Parameters()
	if params.VolumePercent != 100 {
		t.Errorf("expected volume clamped to 100, got %v", params.VolumePercent)
	}
}
