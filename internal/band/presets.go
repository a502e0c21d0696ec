// ABOUTME: Preset catalog with built-in entries and YAML overrides
// ABOUTME: Lookup is by name; unknown names are reported, never fatal
package band

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a named parameter combination.
type Preset struct {
	Name          string  `json:"name" yaml:"name"`
	CarrierHz     float64 `json:"carrierHz" yaml:"carrier_hz"`
	BeatHz        float64 `json:"beatHz" yaml:"beat_hz"`
	VolumePercent float64 `json:"volumePercent" yaml:"volume_percent"`
}

// Parameters converts the preset into a clamped parameter set.
func (p Preset) Parameters() Parameters {
	return Clamp(Parameters{
		CarrierHz:     p.CarrierHz,
		BeatHz:        p.BeatHz,
		VolumePercent: p.VolumePercent,
	})
}

// Catalog is an ordered preset collection. It is built once at startup
// and read-only afterwards.
type Catalog struct {
	presets map[string]Preset
	order   []string
}

// BuiltinCatalog returns the fixed preset catalog shipped with the engine.
func BuiltinCatalog() *Catalog {
	c := &Catalog{presets: make(map[string]Preset)}
	for _, p := range []Preset{
		{Name: "meditation", CarrierHz: 400, BeatHz: 6, VolumePercent: 40},
		{Name: "focus", CarrierHz: 440, BeatHz: 15, VolumePercent: 50},
		{Name: "sleep", CarrierHz: 360, BeatHz: 3, VolumePercent: 35},
		{Name: "creativity", CarrierHz: 420, BeatHz: 8, VolumePercent: 45},
	} {
		c.put(p)
	}
	return c
}

func (c *Catalog) put(p Preset) {
	key := strings.ToLower(p.Name)
	if _, exists := c.presets[key]; !exists {
		c.order = append(c.order, key)
	}
	p.Name = key
	c.presets[key] = p
}

// Get looks up a preset by name, case-insensitively.
func (c *Catalog) Get(name string) (Preset, bool) {
	p, ok := c.presets[strings.ToLower(name)]
	return p, ok
}

// Names returns preset names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// List returns all presets in catalog order.
func (c *Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.presets[key])
	}
	return out
}

// Len returns the number of presets in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile merges a YAML preset file into the catalog. Entries override
// built-ins of the same name; new names append in file order. Entries
// without a name are rejected.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read preset file: %w", err)
	}

	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("failed to parse preset file: %w", err)
	}

	for i, p := range pf.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("preset %d in %s has no name", i, path)
		}
		c.put(p)
	}
	return nil
}
