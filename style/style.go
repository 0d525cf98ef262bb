// Package style supplies feature colors to the engine. A style map is the
// treatment-status side of the contract: a total lookup from feature id to
// hex color, loadable from a YAML style sheet.
package style

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/godeepar/mapengine/colors"
)

// Map is an explicit id → hex color table with a default for misses. The
// zero value is usable and answers colors.DefaultHex for everything.
type Map struct {
	Default  string            `yaml:"default"`
	Features map[string]string `yaml:"features"`
}

// ColorFor returns the color for the feature id, the map default on a
// miss, and the package default when neither is set. Never fails.
func (m *Map) ColorFor(id string) string {
	if m != nil {
		if hex, ok := m.Features[id]; ok && hex != "" {
			return hex
		}
		if m.Default != "" {
			return m.Default
		}
	}
	return colors.DefaultHex
}

// Set records the color for a feature id.
func (m *Map) Set(id, hex string) {
	if m.Features == nil {
		m.Features = make(map[string]string)
	}
	m.Features[id] = hex
}

// Static colors every feature the same. Handy for single-status overlays
// like pending markers.
type Static string

func (s Static) ColorFor(string) string { return string(s) }

// LoadYAML reads a style sheet of the form:
//
//	default: "#cccccc"
//	features:
//	  field-12: "#ff0000"
func LoadYAML(r io.Reader) (*Map, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("[LoadYAML] in pkg [style] encountered: %v", err)
	}

	var m Map
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("[LoadYAML] in pkg [style] encountered: %v", err)
	}
	return &m, nil
}
